// Package types defines the fixed-size byte values exchanged at the keykit
// boundary. Every type marshals to lowercase hex in JSON and text form.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// KeySize is the length of a key, scalar or chain code in bytes.
const KeySize = 32

// ExtendedKeySize is the length of a serialized extended public key
// (chain code followed by public key).
const ExtendedKeySize = 2 * KeySize

// Key is a 32-byte value: an ed25519 public key, a Curve25519 u-coordinate,
// a little-endian private scalar or a chain code.
type Key [KeySize]byte

// ExtendedKey is a serialized extended public key: chainCode || publicKey.
type ExtendedKey [ExtendedKeySize]byte

// HexBytes is a variable-length byte slice that marshals as hex.
type HexBytes []byte

// IsZero returns true if the key is all zeros.
func (k Key) IsZero() bool {
	return k == Key{}
}

// String returns the hex-encoded key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Bytes returns a copy of the key as a byte slice.
func (k Key) Bytes() []byte {
	b := make([]byte, KeySize)
	copy(b, k[:])
	return b
}

// MarshalJSON encodes the key as a hex string.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a hex string into a key.
func (k *Key) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*k = Key{}
		return nil
	}
	decoded, err := HexToKey(s)
	if err != nil {
		return err
	}
	*k = decoded
	return nil
}

// HexToKey converts a hex string to a Key.
// Returns an error if the string is not exactly 64 hex characters.
func HexToKey(s string) (Key, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Key{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != KeySize {
		return Key{}, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(b))
	}
	var k Key
	copy(k[:], b)
	return k, nil
}

// ChainCode returns the chain code half of the extended key.
func (e ExtendedKey) ChainCode() Key {
	var k Key
	copy(k[:], e[:KeySize])
	return k
}

// PublicKey returns the public key half of the extended key.
func (e ExtendedKey) PublicKey() Key {
	var k Key
	copy(k[:], e[KeySize:])
	return k
}

// String returns the hex-encoded extended key.
func (e ExtendedKey) String() string {
	return hex.EncodeToString(e[:])
}

// MarshalJSON encodes the extended key as a hex string.
func (e ExtendedKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// UnmarshalJSON decodes a hex string into an extended key.
func (e *ExtendedKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := HexToExtendedKey(s)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

// HexToExtendedKey converts a 128-character hex string to an ExtendedKey.
func HexToExtendedKey(s string) (ExtendedKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ExtendedKey{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != ExtendedKeySize {
		return ExtendedKey{}, fmt.Errorf("extended key must be %d bytes, got %d", ExtendedKeySize, len(b))
	}
	var e ExtendedKey
	copy(e[:], b)
	return e, nil
}

// String returns the hex encoding.
func (h HexBytes) String() string {
	return hex.EncodeToString(h)
}

// MarshalJSON encodes the bytes as a hex string.
func (h HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string.
func (h *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	*h = b
	return nil
}
