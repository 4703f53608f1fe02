package commands

import (
	"encoding/hex"
	"fmt"
	"strings"

	klog "github.com/mrv777/ardor-keykit/internal/log"
	"github.com/mrv777/ardor-keykit/internal/wallet"
	"github.com/mrv777/ardor-keykit/pkg/mnemonic"
	"github.com/mrv777/ardor-keykit/pkg/sss"
	"github.com/spf13/cobra"
)

func splitCmd() *cobra.Command {
	var (
		kind    string
		protect bool
	)
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a mnemonic or private key into threshold shares",
		Long: "Reads the secret from stdin (a mnemonic, or a hex private key with\n" +
			"--kind private-key) and prints one share per line. With --protect\n" +
			"every share is encrypted under a password.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := wallet.ParseSecretKind(kind)
			if err != nil {
				return err
			}
			text, err := readSecret(cmd, "Secret: ")
			if err != nil {
				return err
			}
			secret, err := secretBytes(k, text)
			if err != nil {
				return err
			}
			defer wipe(secret)

			var password []byte
			if protect {
				if password, err = readPasswordTwice(cmd); err != nil {
					return err
				}
				defer wipe(password)
			}

			shares, err := wallet.SplitSecret(k, secret, cfg.Sharing.Shares, cfg.Sharing.Threshold)
			if err != nil {
				return err
			}
			klog.CLI.Info().
				Str("kind", k.String()).
				Int("shares", cfg.Sharing.Shares).
				Int("threshold", cfg.Sharing.Threshold).
				Msg("Secret split")

			for _, s := range shares {
				line := s.String()
				if protect {
					blob, err := wallet.Protect([]byte(line), password, wallet.DefaultParams())
					if err != nil {
						return err
					}
					line = hex.EncodeToString(blob)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "mnemonic", "secret kind: mnemonic or private-key")
	cmd.Flags().BoolVar(&protect, "protect", false, "encrypt each share under a password")
	return cmd
}

func combineCmd() *cobra.Command {
	var (
		kind      string
		protected bool
	)
	cmd := &cobra.Command{
		Use:   "combine <share> <share>...",
		Short: "Reconstruct a secret from shares",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := wallet.ParseSecretKind(kind)
			if err != nil {
				return err
			}

			var password []byte
			if protected {
				p, err := readSecret(cmd, "Password: ")
				if err != nil {
					return err
				}
				password = []byte(p)
				defer wipe(password)
			}

			shares := make([]sss.Share, 0, len(args))
			for i, arg := range args {
				text := arg
				if protected {
					blob, err := hex.DecodeString(arg)
					if err != nil {
						return fmt.Errorf("share %d: %w", i+1, err)
					}
					plain, err := wallet.Unprotect(blob, password)
					if err != nil {
						return fmt.Errorf("share %d: %w", i+1, err)
					}
					text = string(plain)
				}
				s, err := sss.ParseShare(text)
				if err != nil {
					return fmt.Errorf("share %d: %w", i+1, err)
				}
				shares = append(shares, s)
			}

			secret, err := wallet.CombineSecret(shares)
			if err != nil {
				return err
			}
			defer wipe(secret)

			if k == wallet.SecretMnemonic {
				if err := wallet.ValidateMnemonic(string(secret)); err != nil {
					return fmt.Errorf("combined shares do not form a mnemonic (too few shares?): %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(secret))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(secret))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "mnemonic", "secret kind: mnemonic or private-key")
	cmd.Flags().BoolVar(&protected, "protected", false, "shares were written with split --protect")
	return cmd
}

// secretBytes decodes the text form of a secret.
func secretBytes(kind wallet.SecretKind, text string) ([]byte, error) {
	if kind == wallet.SecretMnemonic {
		return []byte(mnemonic.Normalize(text)), nil
	}
	b, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	return b, nil
}

func readPasswordTwice(cmd *cobra.Command) ([]byte, error) {
	password, err := readSecret(cmd, "Share password: ")
	if err != nil {
		return nil, err
	}
	confirm, err := readSecret(cmd, "Confirm password: ")
	if err != nil {
		return nil, err
	}
	if password != confirm {
		return nil, fmt.Errorf("passwords do not match")
	}
	if password == "" {
		return nil, fmt.Errorf("empty password")
	}
	return []byte(password), nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
