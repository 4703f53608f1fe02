package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Flags holds command-line flags shared by keykit and keykitd.
type Flags struct {
	// Core
	Network string
	Testnet bool
	DataDir string
	Config  string

	// RPC
	RPCAddr    string
	RPCPort    int
	RPCAllowed string
	RPCCORS    string

	// Remote peer
	RemoteURL     string
	RemoteTimeout time.Duration

	// Derivation
	Path          string
	Language      string
	PassphraseEnv string

	// Sharing
	Shares    int
	Threshold int

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	fs *pflag.FlagSet
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	// Core
	fs.StringVar(&f.Network, "network", "", "Network type (mainnet or testnet)")
	fs.BoolVar(&f.Testnet, "testnet", false, "Use testnet (shorthand for --network=testnet)")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory path")
	fs.StringVarP(&f.Config, "config", "c", "", "Config file path (default: <datadir>/keykit.conf)")

	// RPC
	fs.StringVar(&f.RPCAddr, "rpc-addr", "", "Derivation peer listen address")
	fs.IntVar(&f.RPCPort, "rpc-port", 0, "Derivation peer listen port")
	fs.StringVar(&f.RPCAllowed, "rpc-allowed", "", "Allowed IPs for the derivation peer (comma-separated)")
	fs.StringVar(&f.RPCCORS, "rpc-cors", "", "Allowed CORS origins (comma-separated)")

	// Remote peer
	fs.StringVar(&f.RemoteURL, "remote", "", "Remote derivation peer URL")
	fs.DurationVar(&f.RemoteTimeout, "remote-timeout", 0, "Remote peer request timeout")

	// Derivation
	fs.StringVar(&f.Path, "path", "", "Derivation path, e.g. m/44'/16754'/0'/0'/0'")
	fs.StringVar(&f.Language, "language", "", "Mnemonic wordlist (english, japanese, spanish, ...)")
	fs.StringVar(&f.PassphraseEnv, "passphrase-env", "", "Environment variable holding the BIP-39 passphrase")

	// Sharing
	fs.IntVarP(&f.Shares, "shares", "n", 0, "Number of shares to create")
	fs.IntVarP(&f.Threshold, "threshold", "m", 0, "Shares needed to reconstruct")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	return f
}

// changed reports whether a flag was explicitly set.
func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// NetworkType returns the network selected on the command line.
func (f *Flags) NetworkType() NetworkType {
	if f.Testnet || strings.EqualFold(f.Network, string(Testnet)) {
		return Testnet
	}
	if f.Network != "" {
		return NetworkType(strings.ToLower(f.Network))
	}
	return Mainnet
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) {
	// Core
	if f.changed("network") || f.Testnet {
		cfg.Network = f.NetworkType()
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}

	// RPC
	if f.RPCAddr != "" {
		cfg.RPC.Addr = f.RPCAddr
	}
	if f.RPCPort != 0 {
		cfg.RPC.Port = f.RPCPort
	}
	if f.RPCAllowed != "" {
		cfg.RPC.AllowedIPs = parseStringList(f.RPCAllowed)
	}
	if f.RPCCORS != "" {
		cfg.RPC.CORSOrigins = parseStringList(f.RPCCORS)
	}

	// Remote peer
	if f.RemoteURL != "" {
		cfg.Remote.URL = f.RemoteURL
	}
	if f.RemoteTimeout != 0 {
		cfg.Remote.Timeout = f.RemoteTimeout
	}

	// Derivation
	if f.Path != "" {
		cfg.Derivation.Path = f.Path
	}
	if f.Language != "" {
		cfg.Derivation.Language = strings.ToLower(f.Language)
	}
	if f.PassphraseEnv != "" {
		cfg.Derivation.PassphraseEnv = f.PassphraseEnv
	}

	// Sharing
	if f.Shares != 0 {
		cfg.Sharing.Shares = f.Shares
	}
	if f.Threshold != 0 {
		cfg.Sharing.Threshold = f.Threshold
	}

	// Logging
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.changed("log-json") {
		cfg.Log.JSON = f.LogJSON
	}
}

// Load loads configuration with the following precedence:
// 1. Default values
// 2. Auto-create data dir + default config (idempotent)
// 3. Config file
// 4. Command-line flags
//
// f must come from BindFlags on an already parsed FlagSet.
func Load(f *Flags) (*Config, error) {
	cfg := Default(f.NetworkType())

	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}

	if err := EnsureDataDirs(cfg); err != nil {
		return nil, fmt.Errorf("ensuring data dirs: %w", err)
	}

	configPath := f.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}

	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}

	// A network chosen in the file re-bases the defaults unless the
	// command line picked one.
	if n, ok := fileValues["network"]; ok && !f.changed("network") && !f.Testnet && NetworkType(n) != cfg.Network {
		dataDir := cfg.DataDir
		cfg = Default(NetworkType(n))
		cfg.DataDir = dataDir
	}

	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, fmt.Errorf("applying config file: %w", err)
	}

	ApplyFlags(cfg, f)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// EnsureDataDirs creates the data directory structure and a default config
// file if they don't already exist. Safe to call on every startup.
func EnsureDataDirs(cfg *Config) error {
	for _, dir := range []string{cfg.DataDir, cfg.LogsDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	configPath := cfg.ConfigFile()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(configPath, cfg.Network); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
	}

	return nil
}
