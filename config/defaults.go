package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		RPC: RPCConfig{
			Addr:         "127.0.0.1",
			Port:         7976,
			AllowedIPs:   []string{"127.0.0.1"},
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Remote: RemoteConfig{
			Timeout: 30 * time.Second,
		},
		Derivation: DerivationConfig{
			Path:        DefaultPath(CoinTypeMainnet),
			Language:    "english",
			EntropyBits: 256,
		},
		Sharing: SharingConfig{
			Shares:    3,
			Threshold: 2,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.RPC.Port = 6976
	cfg.Derivation.Path = DefaultPath(CoinTypeTestnet)
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}

// DefaultPath returns m/44'/coin'/0'/0'/0'.
func DefaultPath(coin uint32) string {
	return fmt.Sprintf("m/44'/%d'/0'/0'/0'", coin)
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
