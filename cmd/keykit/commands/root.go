// Package commands implements the keykit command tree.
package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrv777/ardor-keykit/config"
	klog "github.com/mrv777/ardor-keykit/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flags *config.Flags
	cfg   *config.Config
	stdin *bufio.Reader

	askPassphrase bool
)

// Execute runs the keykit command tree.
func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "keykit",
		Short:         "HD key derivation, Curve25519 conversion and secret sharing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(flags)
			if err != nil {
				return err
			}
			cfg = c
			if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			stdin = bufio.NewReader(cmd.InOrStdin())
			return nil
		},
	}

	flags = config.BindFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVar(&askPassphrase, "ask-passphrase", false, "prompt for the BIP-39 passphrase")

	root.AddCommand(
		mnemonicCmd(),
		deriveCmd(),
		childPubkeyCmd(),
		convertCmd(),
		splitCmd(),
		combineCmd(),
		encryptCmd(),
		decryptCmd(),
		crossvalCmd(),
	)
	return root
}

// readSecret reads one line without echo when stdin is a terminal, or
// plainly from piped input otherwise.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr) // newline after hidden input
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read %s: no input", strings.ToLower(strings.TrimSuffix(prompt, ": ")))
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readMnemonic prompts for a mnemonic, or takes it from args when given.
func readMnemonic(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return readSecret(cmd, "Mnemonic: ")
}

// passphrase returns the BIP-39 passphrase from the configured
// environment variable, or prompts when --ask-passphrase is set.
func passphrase(cmd *cobra.Command) (string, error) {
	if askPassphrase {
		return readSecret(cmd, "Passphrase: ")
	}
	return cfg.Passphrase(), nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
