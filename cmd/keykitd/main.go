// Keykit derivation peer daemon.
//
// Serves the key derivation and secret sharing core over JSON-RPC so
// another implementation can be cross-validated against it.
//
// Usage:
//
//	keykitd [--testnet] [--rpc-port=N] Run the peer
//	keykitd --help                     Show help
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrv777/ardor-keykit/config"
	klog "github.com/mrv777/ardor-keykit/internal/log"
	"github.com/mrv777/ardor-keykit/internal/rpc"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("keykitd", pflag.ExitOnError)
	flags := config.BindFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	klog.Info().
		Str("network", string(cfg.Network)).
		Str("datadir", cfg.DataDir).
		Msg("Starting keykitd")

	srv := rpc.New(cfg)
	if err := srv.Start(); err != nil {
		klog.Error().Err(err).Msg("Failed to start derivation peer")
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	klog.Info().Str("signal", sig.String()).Msg("Shutting down")

	if err := srv.Stop(); err != nil {
		klog.Error().Err(err).Msg("Shutdown error")
		os.Exit(1)
	}
}
