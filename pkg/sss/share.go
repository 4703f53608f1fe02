package sss

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Share is one evaluation point of a split secret.
type Share struct {
	Index byte
	Value []byte
}

// String encodes the share as two hex digits of index followed by the
// hex payload.
func (s Share) String() string {
	return fmt.Sprintf("%02x%s", s.Index, hex.EncodeToString(s.Value))
}

// ParseShare decodes the text form produced by Share.String.
func ParseShare(text string) (Share, error) {
	b, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return Share{}, fmt.Errorf("%w: %v", ErrInvalidShare, err)
	}
	if len(b) < 2 {
		return Share{}, fmt.Errorf("%w: too short", ErrInvalidShare)
	}
	if b[0] == 0 {
		return Share{}, fmt.Errorf("%w: share index 0", ErrInvalidShare)
	}
	return Share{Index: b[0], Value: b[1:]}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Share) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Share) UnmarshalText(text []byte) error {
	parsed, err := ParseShare(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
