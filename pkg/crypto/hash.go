// Package crypto provides the hash primitives keykit uses outside the
// derivation arithmetic itself.
package crypto

import (
	"github.com/mrv777/ardor-keykit/pkg/types"
	"github.com/zeebo/blake3"
)

// FingerprintSize is the length of a key fingerprint in bytes.
const FingerprintSize = 4

// Fingerprint identifies a parent key inside an HD tree.
type Fingerprint [FingerprintSize]byte

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Key {
	return blake3.Sum256(data)
}

// KeyFingerprint returns the fingerprint of a public key.
// Fingerprint = BLAKE3(pubkey)[:4].
func KeyFingerprint(pubKey []byte) Fingerprint {
	h := Hash(pubKey)
	var fp Fingerprint
	copy(fp[:], h[:FingerprintSize])
	return fp
}

// IsZero returns true for the all-zero fingerprint carried by master keys.
func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}
