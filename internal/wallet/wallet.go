// Package wallet exposes the key-derivation and secret-sharing core to the
// request layers (CLI, RPC peer, cross-validation) as plain function
// contracts over hex-marshalled byte arrays.
package wallet

import (
	"errors"
	"fmt"

	"github.com/mrv777/ardor-keykit/pkg/curve"
	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/mnemonic"
	"github.com/mrv777/ardor-keykit/pkg/types"
)

// ErrPublicOnly is returned when an operation needs a private node.
var ErrPublicOnly = errors.New("wallet: node has no private key")

// Derivation is the key material at one path of a seed's tree.
type Derivation struct {
	Path                      string            `json:"path"`
	Seed                      types.HexBytes    `json:"seed,omitempty"`
	PrivateKey                types.Key         `json:"privateKey"`
	PublicKey                 types.Key         `json:"publicKey"`
	ChainCode                 types.Key         `json:"chainCode"`
	SerializedMasterPublicKey types.ExtendedKey `json:"serializedMasterPublicKey"`
}

// HasPrivateKey reports whether the derivation carries a private key.
// Hardware device derivations never do.
func (d *Derivation) HasPrivateKey() bool {
	return !d.PrivateKey.IsZero()
}

// Node rebuilds the private HD node described by d. The node's depth and
// parent fingerprint are not carried across and read as zero.
func (d *Derivation) Node() (*hdkey.Node, error) {
	if !d.HasPrivateKey() {
		return nil, ErrPublicOnly
	}
	return hdkey.FromPrivateKey(d.PrivateKey, d.ChainCode)
}

// ValidateMnemonic checks the mnemonic against the wordlist it is written in.
func ValidateMnemonic(phrase string) error {
	wl, err := mnemonic.DetectWordlist(phrase)
	if err != nil {
		return fmt.Errorf("invalid mnemonic: %w", err)
	}
	if err := mnemonic.Validate(phrase, wl); err != nil {
		return fmt.Errorf("invalid mnemonic: %w", err)
	}
	return nil
}

// SeedFromMnemonic validates the mnemonic and returns its 64-byte seed.
func SeedFromMnemonic(phrase, passphrase string) ([]byte, error) {
	if err := ValidateMnemonic(phrase); err != nil {
		return nil, err
	}
	return mnemonic.MnemonicToSeed(phrase, passphrase), nil
}

// DeriveFromSeed derives the node at path from (mnemonic, passphrase).
// SerializedMasterPublicKey is the extended public key of that node, so a
// third party can derive its non-hardened children.
func DeriveFromSeed(phrase, passphrase, path string) (*Derivation, error) {
	p, err := hdkey.ParsePath(path)
	if err != nil {
		return nil, err
	}
	seed, err := SeedFromMnemonic(phrase, passphrase)
	if err != nil {
		return nil, err
	}
	master, err := hdkey.NewMaster(seed)
	if err != nil {
		return nil, fmt.Errorf("master key: %w", err)
	}
	node, err := master.DerivePath(p)
	if err != nil {
		return nil, err
	}
	d := derivationFromNode(node)
	d.Path = p.String()
	d.Seed = seed
	return d, nil
}

func derivationFromNode(node *hdkey.Node) *Derivation {
	d := &Derivation{
		PublicKey:                 node.PublicKey(),
		ChainCode:                 node.ChainCode(),
		SerializedMasterPublicKey: node.SerializeMasterPublicKey(),
	}
	if priv, ok := node.PrivateKey(); ok {
		d.PrivateKey = priv
	}
	return d
}

// DeriveChildPublicKey derives the non-hardened child public key at index
// from a serialized extended public key.
func DeriveChildPublicKey(serialized types.ExtendedKey, index uint32) (types.Key, error) {
	parent, err := hdkey.ParseMasterPublicKey(serialized[:])
	if err != nil {
		return types.Key{}, err
	}
	child, err := parent.Child(index, false)
	if err != nil {
		return types.Key{}, err
	}
	return child.PublicKey(), nil
}

// DeriveChildPrivateKey derives the child of a private node.
func DeriveChildPrivateKey(node *hdkey.Node, index uint32, hardened bool) (*hdkey.Node, error) {
	if !node.IsPrivate() {
		return nil, ErrPublicOnly
	}
	return node.Child(index, hardened)
}

// Ed25519ToCurve25519 converts an ed25519 public key to its X25519 form.
func Ed25519ToCurve25519(pub types.Key) (types.Key, error) {
	return curve.Ed25519PublicKeyToCurve25519(pub)
}
