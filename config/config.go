package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultTranscriptsDir is the subdirectory of the vault that holds
// transcript text files.
const DefaultTranscriptsDir = "_transcripts"

type Config struct {
	CachePath      string // Granola cache file (cache-v3.json)
	VaultDir       string // knowledge-base root; one subdirectory per folder
	LedgerPath     string // sync ledger file
	TranscriptsDir string // transcripts subdirectory name under VaultDir
}

type fileConfig struct {
	CachePath      string `toml:"cache_path"`
	VaultDir       string `toml:"vault_dir"`
	LedgerPath     string `toml:"ledger_path"`
	TranscriptsDir string `toml:"transcripts_dir"`
}

func Load() (*Config, error) {
	cfg := &Config{
		CachePath:      defaultCachePath(),
		VaultDir:       defaultVaultDir(),
		TranscriptsDir: DefaultTranscriptsDir,
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.CachePath != "" {
				cfg.CachePath = expandTilde(fc.CachePath)
			}
			if fc.VaultDir != "" {
				cfg.VaultDir = expandTilde(fc.VaultDir)
			}
			if fc.LedgerPath != "" {
				cfg.LedgerPath = expandTilde(fc.LedgerPath)
			}
			if fc.TranscriptsDir != "" {
				cfg.TranscriptsDir = fc.TranscriptsDir
			}
		}
	}

	applyEnvOverrides(cfg)

	// The ledger lives inside the vault unless configured elsewhere.
	if cfg.LedgerPath == "" {
		cfg.LedgerPath = filepath.Join(cfg.VaultDir, ".granola-sync-state.json")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRANOLA_SYNC_CACHE_PATH"); v != "" {
		cfg.CachePath = expandTilde(v)
	}
	if v := os.Getenv("GRANOLA_SYNC_VAULT_DIR"); v != "" {
		cfg.VaultDir = expandTilde(v)
	}
	if v := os.Getenv("GRANOLA_SYNC_LEDGER_PATH"); v != "" {
		cfg.LedgerPath = expandTilde(v)
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "granola-sync")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "granola-sync")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultCachePath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Library", "Application Support", "Granola", "cache-v3.json")
	}
	return filepath.Join(".", "cache-v3.json")
}

func defaultVaultDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "basic-memory", "Granola")
	}
	return filepath.Join(".", "Granola")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
