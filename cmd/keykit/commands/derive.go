package commands

import (
	"context"
	"fmt"
	"strconv"

	klog "github.com/mrv777/ardor-keykit/internal/log"
	"github.com/mrv777/ardor-keykit/internal/rpcclient"
	"github.com/mrv777/ardor-keykit/internal/wallet"
	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/types"
	"github.com/spf13/cobra"
)

// strategy selects the remote peer when one is configured.
func strategy() wallet.Strategy {
	if cfg.Remote.URL == "" {
		return wallet.LocalStrategy()
	}
	logger := klog.WithPeer(cfg.Remote.URL)
	logger.Debug().Msg("Using remote derivation peer")
	return wallet.RemoteStrategy(rpcclient.NewPeer(cfg.Remote.URL, cfg.Remote.Timeout))
}

// deriveNode reads a mnemonic and returns the private node at the
// configured path. It always derives locally.
func deriveNode(cmd *cobra.Command) (*hdkey.Node, *wallet.Derivation, error) {
	phrase, err := readMnemonic(cmd, nil)
	if err != nil {
		return nil, nil, err
	}
	pass, err := passphrase(cmd)
	if err != nil {
		return nil, nil, err
	}
	d, err := wallet.DeriveFromSeed(phrase, pass, cfg.Derivation.Path)
	if err != nil {
		return nil, nil, err
	}
	node, err := d.Node()
	if err != nil {
		return nil, nil, err
	}
	return node, d, nil
}

func deriveCmd() *cobra.Command {
	var public bool
	cmd := &cobra.Command{
		Use:   "derive [words...]",
		Short: "Derive the key pair at --path from a mnemonic (remote with --remote)",
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := readMnemonic(cmd, args)
			if err != nil {
				return err
			}
			pass, err := passphrase(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Remote.Timeout)
			defer cancel()
			d, err := strategy().Derive(ctx, wallet.DeriveRequest{
				Mnemonic:   phrase,
				Passphrase: pass,
				Path:       cfg.Derivation.Path,
			})
			if err != nil {
				return err
			}
			if public {
				d.Seed = nil
				d.PrivateKey = types.Key{}
			}
			return printJSON(cmd, d)
		},
	}
	cmd.Flags().BoolVar(&public, "public", false, "omit the seed and private key from the output")
	return cmd
}

func childPubkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "child-pubkey <serialized-master-public-key> <index>",
		Short: "Derive a non-hardened child public key from an extended public key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := types.HexToExtendedKey(args[0])
			if err != nil {
				return err
			}
			index, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Remote.Timeout)
			defer cancel()
			pub, err := strategy().ChildPublicKey(ctx, ext, uint32(index))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pub.String())
			return nil
		},
	}
}

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <ed25519-public-key>",
		Short: "Convert an ed25519 public key to its Curve25519 form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := types.HexToKey(args[0])
			if err != nil {
				return err
			}
			u, err := wallet.Ed25519ToCurve25519(pub)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u.String())
			return nil
		},
	}
}
