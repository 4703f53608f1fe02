package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/mrv777/ardor-keykit/internal/wallet"
	"github.com/mrv777/ardor-keykit/pkg/types"
	"github.com/spf13/cobra"
)

func encryptCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "encrypt <message>",
		Short: "Encrypt a message to an ed25519 public key",
		Long: "Reads the sender's mnemonic from stdin, derives the key at --path and\n" +
			"encrypts the message for --to with an X25519 shared secret.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := types.HexToKey(to)
			if err != nil {
				return fmt.Errorf("invalid recipient key: %w", err)
			}
			node, _, err := deriveNode(cmd)
			if err != nil {
				return err
			}
			ct, err := wallet.EncryptTo(node, recipient, []byte(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(ct))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient ed25519 public key (hex)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func decryptCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "decrypt <ciphertext-hex>",
		Short: "Decrypt a message from an ed25519 public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sender, err := types.HexToKey(from)
			if err != nil {
				return fmt.Errorf("invalid sender key: %w", err)
			}
			ct, err := hex.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid ciphertext hex: %w", err)
			}
			node, _, err := deriveNode(cmd)
			if err != nil {
				return err
			}
			plain, err := wallet.DecryptFrom(node, sender, ct)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), string(plain)+"\n")
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "sender ed25519 public key (hex)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
