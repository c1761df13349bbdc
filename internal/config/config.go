// Package config resolves runtime configuration with the precedence
// env > config file > default. A commented default config file is written
// on first start so the knobs are discoverable.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ListenAddr string
	LogLevel   string
	DataDir    string
	SeedPath   string
}

const defaultConfigContent = `# Activities service configuration
# All values shown are defaults. Uncomment and edit to customize.

# Address and port the server listens on.
# Environment variable: ACTIVITIES_LISTEN
# listen = "127.0.0.1:8000"

# Log level: debug, info, warn, error.
# Environment variable: ACTIVITIES_LOG_LEVEL
# log_level = "info"

# Path to a TOML file that replaces the built-in activity catalog.
# Environment variable: ACTIVITIES_SEED
# seed = ""
`

// fileValues mirrors the keys accepted in config.toml.
type fileValues struct {
	Listen   string `toml:"listen"`
	LogLevel string `toml:"log_level"`
	Seed     string `toml:"seed"`
}

func Load() Config {
	cfg := Config{
		ListenAddr: "127.0.0.1:8000",
		LogLevel:   "info",
	}

	// Resolve DataDir first (needed for config file path).
	if v := strings.TrimSpace(os.Getenv("ACTIVITIES_DATA_DIR")); v != "" {
		cfg.DataDir = v
	} else if home, err := os.UserHomeDir(); err == nil {
		cfg.DataDir = filepath.Join(home, ".activities")
	}

	// Create default config file if it does not exist.
	configPath := filepath.Join(cfg.DataDir, "config.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		writeDefaultConfig(configPath)
	}

	file := loadFile(configPath)

	// Listen: env > file > default
	if v := strings.TrimSpace(os.Getenv("ACTIVITIES_LISTEN")); v != "" {
		cfg.ListenAddr = v
	} else if file.Listen != "" {
		cfg.ListenAddr = file.Listen
	}

	// Log level: env > file > default (info)
	if v := strings.TrimSpace(os.Getenv("ACTIVITIES_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	} else if file.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(file.LogLevel)
	}

	// Seed file: env > file
	if v := strings.TrimSpace(os.Getenv("ACTIVITIES_SEED")); v != "" {
		cfg.SeedPath = v
	} else if file.Seed != "" {
		cfg.SeedPath = file.Seed
	}

	return cfg
}

// loadFile decodes config.toml. Unknown keys are ignored; a missing or
// malformed file yields zero values so defaults apply.
func loadFile(path string) fileValues {
	var v fileValues
	if _, err := toml.DecodeFile(path, &v); err != nil {
		return fileValues{}
	}
	v.Listen = strings.TrimSpace(v.Listen)
	v.LogLevel = strings.TrimSpace(v.LogLevel)
	v.Seed = strings.TrimSpace(v.Seed)
	return v
}

// writeDefaultConfig creates the config file with commented-out defaults.
// Best-effort: errors are silently ignored.
func writeDefaultConfig(path string) {
	_ = os.MkdirAll(filepath.Dir(path), 0o700)
	_ = os.WriteFile(path, []byte(defaultConfigContent), 0o600)
}
