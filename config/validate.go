package config

import (
	"fmt"
	"net"
	"net/url"

	"github.com/mrv777/ardor-keykit/internal/log"
	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/mnemonic"
	"github.com/mrv777/ardor-keykit/pkg/sss"
)

// Validate checks runtime config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}

	if cfg.RPC.Port < 0 || cfg.RPC.Port > 65535 {
		return fmt.Errorf("rpc.port must be in range [0, 65535]")
	}
	for i, ip := range cfg.RPC.AllowedIPs {
		if net.ParseIP(ip) == nil {
			return fmt.Errorf("rpc.allowed[%d] %q is not an IP address", i, ip)
		}
	}
	if cfg.RPC.ReadTimeout < 0 || cfg.RPC.WriteTimeout < 0 {
		return fmt.Errorf("rpc timeouts must not be negative")
	}
	if cfg.RPC.MaxBodyBytes <= 0 {
		return fmt.Errorf("rpc.maxbody must be positive")
	}

	if cfg.Remote.URL != "" {
		u, err := url.Parse(cfg.Remote.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("remote.url must be an http(s) URL")
		}
	}
	if cfg.Remote.Timeout <= 0 {
		return fmt.Errorf("remote.timeout must be positive")
	}

	if _, err := hdkey.ParsePath(cfg.Derivation.Path); err != nil {
		return fmt.Errorf("derive.path: %w", err)
	}
	if _, err := mnemonic.WordlistByName(cfg.Derivation.Language); err != nil {
		return fmt.Errorf("derive.language: %w", err)
	}
	switch cfg.Derivation.EntropyBits {
	case 128, 160, 192, 224, 256:
	default:
		return fmt.Errorf("derive.entropy must be one of 128, 160, 192, 224, 256")
	}

	n, m := cfg.Sharing.Shares, cfg.Sharing.Threshold
	if m < 2 || m > n || n > sss.MaxShares {
		return fmt.Errorf("sharing: need 2 <= threshold (%d) <= shares (%d) <= %d", m, n, sss.MaxShares)
	}

	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level %q is not one of trace, debug, info, warn, error", cfg.Log.Level)
	}
	return nil
}
