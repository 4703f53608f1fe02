package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/mrv777/ardor-keykit/pkg/mnemonic"
	"github.com/spf13/cobra"
)

func mnemonicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate, validate and decode BIP-39 mnemonics",
	}
	cmd.AddCommand(mnemonicNewCmd(), mnemonicSeedCmd(), mnemonicEntropyCmd(), mnemonicEncodeCmd(), mnemonicValidateCmd())
	return cmd
}

func mnemonicNewCmd() *cobra.Command {
	var bits int
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new random mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wl, err := mnemonic.WordlistByName(cfg.Derivation.Language)
			if err != nil {
				return err
			}
			if bits == 0 {
				bits = cfg.Derivation.EntropyBits
			}
			phrase, err := mnemonic.Generate(bits, wl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), phrase)
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 0, "entropy size: 128, 160, 192, 224 or 256 (default from config)")
	return cmd
}

func mnemonicSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [words...]",
		Short: "Print the 64-byte BIP-39 seed of a mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := readMnemonic(cmd, args)
			if err != nil {
				return err
			}
			if _, err := detect(phrase); err != nil {
				return err
			}
			pass, err := passphrase(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(mnemonic.MnemonicToSeed(phrase, pass)))
			return nil
		},
	}
}

func mnemonicEntropyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entropy [words...]",
		Short: "Decode a mnemonic back to its entropy",
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := readMnemonic(cmd, args)
			if err != nil {
				return err
			}
			wl, err := detect(phrase)
			if err != nil {
				return err
			}
			entropy, err := mnemonic.MnemonicToEntropy(phrase, wl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(entropy))
			return nil
		},
	}
}

func mnemonicEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <entropy-hex>",
		Short: "Encode entropy as a mnemonic in the configured language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entropy, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("invalid entropy hex: %w", err)
			}
			wl, err := mnemonic.WordlistByName(cfg.Derivation.Language)
			if err != nil {
				return err
			}
			phrase, err := mnemonic.EntropyToMnemonic(entropy, wl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), phrase)
			return nil
		},
	}
}

func mnemonicValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [words...]",
		Short: "Check a mnemonic's words and checksum",
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := readMnemonic(cmd, args)
			if err != nil {
				return err
			}
			wl, err := detect(phrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid (%s)\n", wl.Name())
			return nil
		},
	}
}

// detect finds the mnemonic's wordlist and verifies it.
func detect(phrase string) (*mnemonic.Wordlist, error) {
	wl, err := mnemonic.DetectWordlist(phrase)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	if err := mnemonic.Validate(phrase, wl); err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	return wl, nil
}
