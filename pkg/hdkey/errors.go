package hdkey

import (
	"errors"

	"github.com/mrv777/ardor-keykit/pkg/curve"
)

var (
	// ErrInvalidPath indicates a derivation path that does not parse.
	ErrInvalidPath = errors.New("hdkey: invalid derivation path")

	// ErrIndexOutOfRange indicates a child index >= 2^31 before the hardened offset.
	ErrIndexOutOfRange = errors.New("hdkey: child index exceeds 2^31-1")

	// ErrInvalidChildKey indicates a degenerate derived key. The caller
	// should retry with the next index.
	ErrInvalidChildKey = errors.New("hdkey: derived key is invalid, use the next index")

	// ErrHardenedPublic indicates hardened derivation from a public-only node.
	ErrHardenedPublic = errors.New("hdkey: cannot derive hardened child from public key")

	// ErrInvalidSeedLength indicates a seed outside 16-64 bytes.
	ErrInvalidSeedLength = errors.New("hdkey: seed must be 16-64 bytes")

	// ErrInvalidKeyLength indicates a serialized key of the wrong size.
	ErrInvalidKeyLength = errors.New("hdkey: invalid serialized key length")

	// ErrInvalidPoint indicates public key bytes that are not a curve point.
	// It is the same sentinel the curve package returns.
	ErrInvalidPoint = curve.ErrInvalidPoint

	// ErrInvalidPrivateKey indicates a non-canonical or zero private scalar.
	ErrInvalidPrivateKey = errors.New("hdkey: invalid private key scalar")

	// ErrMaxDepth indicates derivation below depth 255.
	ErrMaxDepth = errors.New("hdkey: maximum depth reached")
)
