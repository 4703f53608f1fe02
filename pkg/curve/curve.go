// Package curve maps ed25519 keys onto their birationally equivalent
// Curve25519 (X25519) form so a signing key pair can also serve for
// Diffie-Hellman key agreement.
package curve

import (
	"crypto/sha512"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mrv777/ardor-keykit/pkg/types"
)

// Ed25519SeedSize is the length of an RFC 8032 private key seed.
const Ed25519SeedSize = 32

var (
	// ErrInvalidPoint indicates bytes that do not decode to an ed25519 point.
	ErrInvalidPoint = errors.New("curve: invalid ed25519 point")

	// ErrLowOrderPoint indicates a peer key in the small-order subgroup.
	ErrLowOrderPoint = errors.New("curve: low-order point")

	// ErrInvalidSeed indicates an ed25519 seed of the wrong length.
	ErrInvalidSeed = errors.New("curve: ed25519 seed must be 32 bytes")
)

// Ed25519PublicKeyToCurve25519 converts a compressed ed25519 public key to
// the little-endian Montgomery u-coordinate u = (1+y)/(1-y) mod p.
func Ed25519PublicKeyToCurve25519(pub types.Key) (types.Key, error) {
	p, err := new(edwards25519.Point).SetBytes(pub[:])
	if err != nil {
		return types.Key{}, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	var u types.Key
	copy(u[:], p.BytesMontgomery())
	return u, nil
}

// SharedSecret returns the X25519 shared secret between priv and the peer's
// ed25519 public key: the u-coordinate of priv·peer.
//
// The multiplication runs on the Edwards model with the scalar as given,
// so unclamped scalars produced by HD derivation agree with their public
// keys. curve25519.X25519 would clamp them first and disagree.
func SharedSecret(priv *edwards25519.Scalar, peer types.Key) (types.Key, error) {
	p, err := new(edwards25519.Point).SetBytes(peer[:])
	if err != nil {
		return types.Key{}, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if new(edwards25519.Point).MultByCofactor(p).Equal(edwards25519.NewIdentityPoint()) == 1 {
		return types.Key{}, ErrLowOrderPoint
	}
	s := new(edwards25519.Point).ScalarMult(priv, p)
	var out types.Key
	copy(out[:], s.BytesMontgomery())
	return out, nil
}

// Ed25519SeedToCurve25519 returns the clamped Curve25519 private key that
// corresponds to an RFC 8032 seed: the first half of SHA-512(seed), clamped.
// The result works with curve25519.X25519.
func Ed25519SeedToCurve25519(seed []byte) (types.Key, error) {
	if len(seed) != Ed25519SeedSize {
		return types.Key{}, ErrInvalidSeed
	}
	h := sha512.Sum512(seed)
	var k types.Key
	copy(k[:], h[:32])
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
	return k, nil
}

// PublicKey returns priv·B in compressed ed25519 form.
func PublicKey(priv *edwards25519.Scalar) types.Key {
	var pub types.Key
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(priv).Bytes())
	return pub
}
