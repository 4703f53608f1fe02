// Package hdkey implements hierarchical deterministic key derivation for
// ed25519 in the BIP-32 style.
//
// Private keys are scalars modulo the group order ℓ. A child scalar is the
// parent scalar plus an HMAC-derived tweak, so non-hardened children can
// also be derived from the parent public key alone:
//
//	I        = HMAC-SHA512(chainCode, data)
//	z        = I[:32] mod ℓ
//	k_child  = k_parent + z          (mod ℓ)
//	A_child  = A_parent + z·B
//	chain    = I[32:]
//
// where data is 0x00 || k_parent || ser32(index + 2^31) for hardened
// children and A_parent || ser32(index) otherwise.
package hdkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mrv777/ardor-keykit/pkg/crypto"
	"github.com/mrv777/ardor-keykit/pkg/types"
)

// MasterKey is the HMAC key that separates master derivation for this curve.
const MasterKey = "ed25519 seed"

// Seed length bounds in bytes.
const (
	MinSeedSize = 16
	MaxSeedSize = 64
)

// Node is one key in the derivation tree. Nodes are immutable; derivation
// returns new nodes.
type Node struct {
	priv       *edwards25519.Scalar // nil for public-only nodes
	pub        types.Key
	chainCode  types.Key
	depth      uint8
	parentFP   crypto.Fingerprint
	childIndex uint32
}

// NewMaster derives the master node from a seed.
func NewMaster(seed []byte) (*Node, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSeedLength, len(seed))
	}
	z, chain := hmacStep([]byte(MasterKey), seed)
	if z.Equal(edwards25519.NewScalar()) == 1 {
		return nil, ErrInvalidChildKey
	}
	return newPrivate(z, chain, 0, crypto.Fingerprint{}, 0), nil
}

// FromPrivateKey builds a private node from a little-endian scalar and a
// chain code, e.g. one returned by a remote peer.
func FromPrivateKey(priv, chainCode types.Key) (*Node, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(priv[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	if s.Equal(edwards25519.NewScalar()) == 1 {
		return nil, ErrInvalidPrivateKey
	}
	return newPrivate(s, chainCode, 0, crypto.Fingerprint{}, 0), nil
}

// ParseMasterPublicKey restores a public-only node from the 64-byte
// serialization produced by SerializeMasterPublicKey.
func ParseMasterPublicKey(b []byte) (*Node, error) {
	if len(b) != types.ExtendedKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyLength, len(b), types.ExtendedKeySize)
	}
	var ext types.ExtendedKey
	copy(ext[:], b)
	pub := ext.PublicKey()
	if _, err := new(edwards25519.Point).SetBytes(pub[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return &Node{pub: pub, chainCode: ext.ChainCode()}, nil
}

func newPrivate(s *edwards25519.Scalar, chain types.Key, depth uint8, fp crypto.Fingerprint, index uint32) *Node {
	var pub types.Key
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(s).Bytes())
	return &Node{
		priv:       s,
		pub:        pub,
		chainCode:  chain,
		depth:      depth,
		parentFP:   fp,
		childIndex: index,
	}
}

// Child derives the child at index. index must be below 2^31; hardened
// adds the offset. Hardened children need a private node.
func (n *Node) Child(index uint32, hardened bool) (*Node, error) {
	if index >= HardenedOffset {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if hardened && n.priv == nil {
		return nil, ErrHardenedPublic
	}
	if n.depth == 255 {
		return nil, ErrMaxDepth
	}

	var data []byte
	if hardened {
		index += HardenedOffset
		data = make([]byte, 0, 1+types.KeySize+4)
		data = append(data, 0x00)
		data = append(data, n.priv.Bytes()...)
	} else {
		data = make([]byte, 0, types.KeySize+4)
		data = append(data, n.pub[:]...)
	}
	data = binary.BigEndian.AppendUint32(data, index)

	z, chain := hmacStep(n.chainCode[:], data)
	if z.Equal(edwards25519.NewScalar()) == 1 {
		return nil, ErrInvalidChildKey
	}
	fp := n.Fingerprint()

	if n.priv != nil {
		s := edwards25519.NewScalar().Add(n.priv, z)
		if s.Equal(edwards25519.NewScalar()) == 1 {
			return nil, ErrInvalidChildKey
		}
		return newPrivate(s, chain, n.depth+1, fp, index), nil
	}

	parent, err := new(edwards25519.Point).SetBytes(n.pub[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	p := new(edwards25519.Point).Add(parent, new(edwards25519.Point).ScalarBaseMult(z))
	if p.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, ErrInvalidChildKey
	}
	child := &Node{
		chainCode:  chain,
		depth:      n.depth + 1,
		parentFP:   fp,
		childIndex: index,
	}
	copy(child.pub[:], p.Bytes())
	return child, nil
}

// ChildSkipInvalid derives the first valid child at or after index and
// returns it with the index actually used.
func (n *Node) ChildSkipInvalid(index uint32, hardened bool) (*Node, uint32, error) {
	for ; index < HardenedOffset; index++ {
		child, err := n.Child(index, hardened)
		if errors.Is(err, ErrInvalidChildKey) {
			continue
		}
		return child, index, err
	}
	return nil, 0, ErrIndexOutOfRange
}

// DerivePath walks path from n.
func (n *Node) DerivePath(path Path) (*Node, error) {
	current := n
	for i, idx := range path {
		hardened := idx >= HardenedOffset
		if hardened {
			idx -= HardenedOffset
		}
		child, err := current.Child(idx, hardened)
		if err != nil {
			return nil, fmt.Errorf("derive %s at depth %d: %w", path[:i+1], i+1, err)
		}
		current = child
	}
	return current, nil
}

// Neuter returns a public-only copy (for watch-only use).
func (n *Node) Neuter() *Node {
	c := *n
	c.priv = nil
	return &c
}

// SerializeMasterPublicKey returns chainCode || publicKey, the portable
// extended public key a third party uses for non-hardened derivation.
func (n *Node) SerializeMasterPublicKey() types.ExtendedKey {
	var ext types.ExtendedKey
	copy(ext[:types.KeySize], n.chainCode[:])
	copy(ext[types.KeySize:], n.pub[:])
	return ext
}

// IsPrivate returns true if this node holds a private scalar.
func (n *Node) IsPrivate() bool {
	return n.priv != nil
}

// PrivateKey returns the 32-byte little-endian scalar.
// The boolean is false for public-only nodes.
func (n *Node) PrivateKey() (types.Key, bool) {
	if n.priv == nil {
		return types.Key{}, false
	}
	var k types.Key
	copy(k[:], n.priv.Bytes())
	return k, true
}

// Scalar returns a copy of the private scalar, or nil for public-only nodes.
func (n *Node) Scalar() *edwards25519.Scalar {
	if n.priv == nil {
		return nil
	}
	return edwards25519.NewScalar().Set(n.priv)
}

// PublicKey returns the compressed ed25519 public key.
func (n *Node) PublicKey() types.Key {
	return n.pub
}

// ChainCode returns the chain code.
func (n *Node) ChainCode() types.Key {
	return n.chainCode
}

// Depth returns the derivation depth (0 for master).
func (n *Node) Depth() uint8 {
	return n.depth
}

// ParentFingerprint returns the parent's fingerprint (zero for master).
func (n *Node) ParentFingerprint() crypto.Fingerprint {
	return n.parentFP
}

// ChildIndex returns the index this node was derived at, including the
// hardened offset.
func (n *Node) ChildIndex() uint32 {
	return n.childIndex
}

// Fingerprint returns this node's fingerprint.
func (n *Node) Fingerprint() crypto.Fingerprint {
	return crypto.KeyFingerprint(n.pub[:])
}

// hmacStep computes HMAC-SHA512(key, data) and splits it into the scalar
// tweak (left half reduced mod ℓ) and the new chain code (right half).
func hmacStep(key, data []byte) (*edwards25519.Scalar, types.Key) {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	sum := mac.Sum(nil)

	var wide [64]byte
	copy(wide[:32], sum[:32])
	z, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		// SetUniformBytes only fails on a length other than 64.
		panic(err)
	}

	var chain types.Key
	copy(chain[:], sum[32:])
	return z, chain
}
