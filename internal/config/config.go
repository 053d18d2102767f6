// Package config loads billctl configuration from a YAML file with
// environment overrides. Precedence: environment > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults mirror a local development setup.
const (
	defaultBaseURL     = "http://localhost:3000"
	defaultIdentityURL = "http://localhost:3100"
	defaultTheme       = "light"
)

// Config holds everything billctl needs at startup.
type Config struct {
	// BaseURL is the single base network address of the Smart Bills API.
	// All request paths are relative to it.
	BaseURL string `yaml:"base_url"`

	// IdentityURL is the identity service endpoint (login, token exchange).
	IdentityURL string `yaml:"identity_url"`

	// SessionDB is the path of the local session database.
	SessionDB string `yaml:"session_db"`

	// Theme selects light or dark rendering for the terminal and the PDF
	// report header.
	Theme string `yaml:"theme"`

	// ReportDir is where exported PDF reports are written.
	ReportDir string `yaml:"report_dir"`
}

// Load reads configuration from path (skipped when the file does not
// exist), then applies environment overrides and defaults. A .env file in
// the working directory is honored.
func Load(path string) (*Config, error) {
	// Best effort; most setups have no .env file.
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file is fine; env and defaults apply.
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if cfg.Theme != "light" && cfg.Theme != "dark" {
		return nil, fmt.Errorf("invalid theme %q: must be light or dark", cfg.Theme)
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "billctl.yaml"
	}
	return filepath.Join(home, ".config", "billctl", "config.yaml")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BILLCTL_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("BILLCTL_IDENTITY_URL"); v != "" {
		cfg.IdentityURL = v
	}
	if v := os.Getenv("BILLCTL_SESSION_DB"); v != "" {
		cfg.SessionDB = v
	}
	if v := os.Getenv("BILLCTL_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("BILLCTL_REPORT_DIR"); v != "" {
		cfg.ReportDir = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.IdentityURL == "" {
		cfg.IdentityURL = defaultIdentityURL
	}
	if cfg.Theme == "" {
		cfg.Theme = defaultTheme
	}
	if cfg.SessionDB == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			cfg.SessionDB = "session.db"
		} else {
			cfg.SessionDB = filepath.Join(home, ".local", "state", "billctl", "session.db")
		}
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "."
	}
}
