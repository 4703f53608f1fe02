package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFile loads configuration from a .conf file.
// Format: key = value (one per line, # for comments). A missing file
// yields no values.
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets a config value by key. Unknown keys are ignored.
func setConfigValue(cfg *Config, key, value string) error {
	var err error
	switch key {
	// Core
	case "network":
		cfg.Network = NetworkType(value)
	case "datadir":
		cfg.DataDir = value

	// RPC
	case "rpc.addr":
		cfg.RPC.Addr = value
	case "rpc.port":
		cfg.RPC.Port, err = strconv.Atoi(value)
	case "rpc.allowed":
		cfg.RPC.AllowedIPs = parseStringList(value)
	case "rpc.cors":
		cfg.RPC.CORSOrigins = parseStringList(value)
	case "rpc.readtimeout":
		cfg.RPC.ReadTimeout, err = time.ParseDuration(value)
	case "rpc.writetimeout":
		cfg.RPC.WriteTimeout, err = time.ParseDuration(value)
	case "rpc.maxbody":
		cfg.RPC.MaxBodyBytes, err = strconv.ParseInt(value, 10, 64)

	// Remote peer
	case "remote.url", "remote":
		cfg.Remote.URL = value
	case "remote.timeout":
		cfg.Remote.Timeout, err = time.ParseDuration(value)

	// Derivation
	case "derive.path":
		cfg.Derivation.Path = value
	case "derive.language":
		cfg.Derivation.Language = strings.ToLower(value)
	case "derive.passphrase_env":
		cfg.Derivation.PassphraseEnv = value
	case "derive.entropy":
		cfg.Derivation.EntropyBits, err = strconv.Atoi(value)

	// Sharing
	case "sharing.shares":
		cfg.Sharing.Shares, err = strconv.Atoi(value)
	case "sharing.threshold":
		cfg.Sharing.Threshold, err = strconv.Atoi(value)

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)
	}
	return err
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// parseStringList parses a comma-separated list.
func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// WriteDefaultConfig writes a default configuration file.
func WriteDefaultConfig(path string, network NetworkType) error {
	cfg := Default(network)
	content := `# keykit configuration
#
# Shared by the keykit CLI and the keykitd derivation peer. Command-line
# flags override everything here.

# Network: mainnet or testnet
network = ` + string(network) + `

# Data directory (default: ~/.keykit)
# datadir = ~/.keykit

# ============================================================================
# Derivation peer (keykitd)
# ============================================================================

rpc.addr = 127.0.0.1
rpc.port = ` + strconv.Itoa(cfg.RPC.Port) + `
rpc.allowed = 127.0.0.1
# CORS allowed origins ("*" for all)
# rpc.cors = http://localhost:3000
# rpc.readtimeout = 10s
# rpc.writetimeout = 10s

# ============================================================================
# Remote peer (cross-validation, keykit derive --remote)
# ============================================================================

# remote.url = http://127.0.0.1:` + strconv.Itoa(cfg.RPC.Port) + `
# remote.timeout = 30s

# ============================================================================
# Derivation
# ============================================================================

derive.path = ` + cfg.Derivation.Path + `
derive.language = english
# Read the BIP-39 passphrase from this environment variable
# derive.passphrase_env = KEYKIT_PASSPHRASE
# derive.entropy = 256

# ============================================================================
# Secret sharing
# ============================================================================

sharing.shares = 3
sharing.threshold = 2

# ============================================================================
# Logging
# ============================================================================

log.level = info
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0600)
}
