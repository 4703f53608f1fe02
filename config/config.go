// Package config handles keykit configuration.
//
// Settings come from, in increasing precedence: per-network defaults, the
// keykit.conf file in the data directory, and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// SLIP-44 coin types used in the default derivation paths.
const (
	CoinTypeMainnet = 16754
	CoinTypeTestnet = 1
)

// Config holds runtime configuration shared by keykit and keykitd.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Derivation peer server (keykitd)
	RPC RPCConfig

	// Remote peer used by the CLI and cross-validation
	Remote RemoteConfig

	// Derivation defaults
	Derivation DerivationConfig

	// Secret sharing defaults
	Sharing SharingConfig

	// Logging
	Log LogConfig
}

// RPCConfig holds derivation peer server settings.
type RPCConfig struct {
	Addr         string        `conf:"rpc.addr"`
	Port         int           `conf:"rpc.port"`
	AllowedIPs   []string      `conf:"rpc.allowed"`
	CORSOrigins  []string      `conf:"rpc.cors"` // Allowed CORS origins ("*" = all).
	ReadTimeout  time.Duration `conf:"rpc.readtimeout"`
	WriteTimeout time.Duration `conf:"rpc.writetimeout"`
	MaxBodyBytes int64         `conf:"rpc.maxbody"`
}

// RemoteConfig holds settings for talking to a derivation peer.
type RemoteConfig struct {
	URL     string        `conf:"remote.url"`
	Timeout time.Duration `conf:"remote.timeout"`
}

// DerivationConfig holds derivation defaults.
type DerivationConfig struct {
	Path          string `conf:"derive.path"`
	Language      string `conf:"derive.language"`       // BIP-39 wordlist name
	PassphraseEnv string `conf:"derive.passphrase_env"` // env var to read the passphrase from
	EntropyBits   int    `conf:"derive.entropy"`
}

// SharingConfig holds secret sharing defaults.
type SharingConfig struct {
	Shares    int `conf:"sharing.shares"`
	Threshold int `conf:"sharing.threshold"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.keykit
//	macOS:   ~/Library/Application Support/Keykit
//	Windows: %APPDATA%\Keykit
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keykit"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Keykit")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Keykit")
		}
		return filepath.Join(home, "AppData", "Roaming", "Keykit")
	default:
		return filepath.Join(home, ".keykit")
	}
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "keykit.conf")
}

// RPCListenAddr returns host:port for the derivation peer server.
func (c *Config) RPCListenAddr() string {
	return joinHostPort(c.RPC.Addr, c.RPC.Port)
}

// Passphrase returns the passphrase from the configured environment
// variable, or "" when none is set.
func (c *Config) Passphrase() string {
	if c.Derivation.PassphraseEnv == "" {
		return ""
	}
	return os.Getenv(c.Derivation.PassphraseEnv)
}
