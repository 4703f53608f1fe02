package rpcclient

import (
	"context"
	"time"

	"github.com/mrv777/ardor-keykit/internal/rpc"
	"github.com/mrv777/ardor-keykit/internal/wallet"
	"github.com/mrv777/ardor-keykit/pkg/sss"
	"github.com/mrv777/ardor-keykit/pkg/types"
)

// Peer wraps a Client with typed calls for every derivation peer method.
// It satisfies wallet.RemotePeer.
type Peer struct {
	*Client
}

var _ wallet.RemotePeer = (*Peer)(nil)

// NewPeer returns a Peer for the endpoint.
func NewPeer(endpoint string, timeout time.Duration) *Peer {
	return &Peer{Client: NewWithTimeout(endpoint, timeout)}
}

// Info returns the peer's version, network and method list.
func (p *Peer) Info(ctx context.Context) (*rpc.InfoResult, error) {
	var res rpc.InfoResult
	if err := p.Call(ctx, rpc.MethodGetInfo, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeriveFromSeed asks the peer to derive (mnemonic, passphrase) at path.
func (p *Peer) DeriveFromSeed(ctx context.Context, mnemonic, passphrase, path string) (*wallet.Derivation, error) {
	var d wallet.Derivation
	err := p.Call(ctx, rpc.MethodDeriveFromSeed, rpc.DeriveFromSeedParam{
		Mnemonic:   mnemonic,
		Passphrase: passphrase,
		Path:       path,
	}, &d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DeriveChildPublicKey asks the peer for a non-hardened child public key.
func (p *Peer) DeriveChildPublicKey(ctx context.Context, serialized types.ExtendedKey, index uint32) (types.Key, error) {
	var res rpc.ChildPublicKeyResult
	err := p.Call(ctx, rpc.MethodDeriveChildPublicKey, rpc.ChildPublicKeyParam{
		SerializedMasterPublicKey: serialized,
		ChildIndex:                index,
	}, &res)
	if err != nil {
		return types.Key{}, err
	}
	return res.PublicKey, nil
}

// DeriveChildPrivateKey asks the peer for the child of a private node.
func (p *Peer) DeriveChildPrivateKey(ctx context.Context, priv, chainCode types.Key, index uint32, hardened bool) (*rpc.NodeResult, error) {
	var res rpc.NodeResult
	err := p.Call(ctx, rpc.MethodDeriveChildPrivate, rpc.ChildPrivateKeyParam{
		PrivateKey: priv,
		ChainCode:  chainCode,
		ChildIndex: index,
		Hardened:   hardened,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ToCurve25519 asks the peer to convert an ed25519 public key.
func (p *Peer) ToCurve25519(ctx context.Context, pub types.Key) (types.Key, error) {
	var res rpc.CurveResult
	if err := p.Call(ctx, rpc.MethodToCurve25519, rpc.PublicKeyParam{PublicKey: pub}, &res); err != nil {
		return types.Key{}, err
	}
	return res.Curve25519, nil
}

// Split asks the peer to split a secret. Mnemonics are sent as text,
// private keys as hex.
func (p *Peer) Split(ctx context.Context, kind wallet.SecretKind, secret string, n, m int) ([]sss.Share, error) {
	var res rpc.SplitResult
	err := p.Call(ctx, rpc.MethodSplit, rpc.SplitParam{
		Kind:      kind.String(),
		Secret:    secret,
		Shares:    n,
		Threshold: m,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.Shares, nil
}

// Combine asks the peer to reconstruct a secret from shares.
func (p *Peer) Combine(ctx context.Context, kind wallet.SecretKind, shares []sss.Share) (string, error) {
	var res rpc.CombineResult
	err := p.Call(ctx, rpc.MethodCombine, rpc.CombineParam{Kind: kind.String(), Shares: shares}, &res)
	if err != nil {
		return "", err
	}
	return res.Secret, nil
}
