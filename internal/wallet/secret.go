package wallet

import (
	"errors"
	"fmt"

	"github.com/mrv777/ardor-keykit/pkg/mnemonic"
	"github.com/mrv777/ardor-keykit/pkg/sss"
	"github.com/mrv777/ardor-keykit/pkg/types"
)

// SecretKind names what a split secret is. The sharing engine does not
// care; the kind only selects input validation.
type SecretKind int

const (
	SecretMnemonic SecretKind = iota
	SecretPrivateKey
)

// ErrInvalidSecret is returned when a secret does not match its kind.
var ErrInvalidSecret = errors.New("wallet: secret does not match its kind")

// String returns the kind's name.
func (k SecretKind) String() string {
	switch k {
	case SecretMnemonic:
		return "mnemonic"
	case SecretPrivateKey:
		return "privateKey"
	default:
		return fmt.Sprintf("SecretKind(%d)", int(k))
	}
}

// ParseSecretKind accepts "mnemonic" or "privateKey" ("private-key" too).
func ParseSecretKind(s string) (SecretKind, error) {
	switch s {
	case "mnemonic", "":
		return SecretMnemonic, nil
	case "privateKey", "private-key", "privkey":
		return SecretPrivateKey, nil
	default:
		return 0, fmt.Errorf("unknown secret kind %q", s)
	}
}

// SplitSecret validates secret as kind and splits it into n shares with
// threshold m. Mnemonics are split as their normalized text bytes.
func SplitSecret(kind SecretKind, secret []byte, n, m int) ([]sss.Share, error) {
	switch kind {
	case SecretMnemonic:
		phrase := mnemonic.Normalize(string(secret))
		if err := ValidateMnemonic(phrase); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
		}
		secret = []byte(phrase)
	case SecretPrivateKey:
		if len(secret) != types.KeySize {
			return nil, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrInvalidSecret, types.KeySize, len(secret))
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidSecret, kind)
	}
	return sss.Split(secret, n, m)
}

// CombineSecret reconstructs a secret from shares.
func CombineSecret(shares []sss.Share) ([]byte, error) {
	return sss.Combine(shares)
}
