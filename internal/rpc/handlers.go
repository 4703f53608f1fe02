package rpc

import (
	"encoding/hex"
	"fmt"

	"github.com/mrv777/ardor-keykit/internal/wallet"
	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/mnemonic"
)

func (s *Server) handleGetInfo(_ *Request) (interface{}, *Error) {
	return &InfoResult{
		Version: Version,
		Network: string(s.network),
		Methods: append([]string(nil), s.methodsNames...),
	}, nil
}

func (s *Server) handleDeriveFromSeed(req *Request) (interface{}, *Error) {
	var p DeriveFromSeedParam
	if err := parseParams(req, &p); err != nil {
		return nil, err
	}
	d, err := wallet.DeriveFromSeed(p.Mnemonic, p.Passphrase, p.Path)
	if err != nil {
		return nil, toRPCError(err)
	}
	s.logger.Debug().Str("path", d.Path).Str("pubkey", d.PublicKey.String()).Msg("Derived from seed")
	return d, nil
}

func (s *Server) handleDeriveChildPublicKey(req *Request) (interface{}, *Error) {
	var p ChildPublicKeyParam
	if err := parseParams(req, &p); err != nil {
		return nil, err
	}
	pub, err := wallet.DeriveChildPublicKey(p.SerializedMasterPublicKey, p.ChildIndex)
	if err != nil {
		return nil, toRPCError(err)
	}
	return &ChildPublicKeyResult{PublicKey: pub}, nil
}

func (s *Server) handleDeriveChildPrivateKey(req *Request) (interface{}, *Error) {
	var p ChildPrivateKeyParam
	if err := parseParams(req, &p); err != nil {
		return nil, err
	}
	parent, err := hdkey.FromPrivateKey(p.PrivateKey, p.ChainCode)
	if err != nil {
		return nil, toRPCError(err)
	}
	child, err := wallet.DeriveChildPrivateKey(parent, p.ChildIndex, p.Hardened)
	if err != nil {
		return nil, toRPCError(err)
	}
	priv, _ := child.PrivateKey()
	fp := child.ParentFingerprint()
	return &NodeResult{
		PrivateKey:                priv,
		PublicKey:                 child.PublicKey(),
		ChainCode:                 child.ChainCode(),
		SerializedMasterPublicKey: child.SerializeMasterPublicKey(),
		Depth:                     child.Depth(),
		ParentFingerprint:         fp[:],
		ChildIndex:                child.ChildIndex(),
	}, nil
}

func (s *Server) handleToCurve25519(req *Request) (interface{}, *Error) {
	var p PublicKeyParam
	if err := parseParams(req, &p); err != nil {
		return nil, err
	}
	u, err := wallet.Ed25519ToCurve25519(p.PublicKey)
	if err != nil {
		return nil, toRPCError(err)
	}
	return &CurveResult{Curve25519: u}, nil
}

func (s *Server) handleSplit(req *Request) (interface{}, *Error) {
	var p SplitParam
	if err := parseParams(req, &p); err != nil {
		return nil, err
	}
	kind, err := wallet.ParseSecretKind(p.Kind)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	secret, rpcErr := decodeSecret(kind, p.Secret)
	if rpcErr != nil {
		return nil, rpcErr
	}
	shares, err := wallet.SplitSecret(kind, secret, p.Shares, p.Threshold)
	if err != nil {
		return nil, toRPCError(err)
	}
	s.logger.Debug().Str("kind", kind.String()).Int("shares", p.Shares).Int("threshold", p.Threshold).Msg("Split secret")
	return &SplitResult{Shares: shares}, nil
}

func (s *Server) handleCombine(req *Request) (interface{}, *Error) {
	var p CombineParam
	if err := parseParams(req, &p); err != nil {
		return nil, err
	}
	kind, err := wallet.ParseSecretKind(p.Kind)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	secret, err := wallet.CombineSecret(p.Shares)
	if err != nil {
		return nil, toRPCError(err)
	}
	return &CombineResult{Secret: encodeSecret(kind, secret)}, nil
}

// decodeSecret turns the wire form of a secret into bytes: mnemonics
// travel as text, private keys as hex.
func decodeSecret(kind wallet.SecretKind, s string) ([]byte, *Error) {
	if kind == wallet.SecretMnemonic {
		return []byte(mnemonic.Normalize(s)), nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: fmt.Sprintf("invalid hex secret: %v", err)}
	}
	return b, nil
}

func encodeSecret(kind wallet.SecretKind, secret []byte) string {
	if kind == wallet.SecretMnemonic {
		return string(secret)
	}
	return hex.EncodeToString(secret)
}
