package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	noteflow "github.com/noteflow/noteflow.go"
)

// DefaultBaseURL is where the hosted Noteflow API lives.
const DefaultBaseURL = "https://notes-api.noteflow.dev/v1"

// Config is the on-disk CLI configuration. Every field can be overridden by
// an environment variable, and the base URL and token file additionally by
// command-line flags.
type Config struct {
	BaseURL   string `yaml:"base_url"`
	TokenFile string `yaml:"token_file"`
	LogFile   string `yaml:"log_file"`
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "noteflow", "config.yaml"), nil
}

// LoadConfig reads the YAML config at path (or the default location when
// path is empty), fills unset fields with defaults, and applies environment
// overrides. A missing file is not an error; the defaults carry it.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return cfg, err
		}
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if explicit {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
	case err != nil:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TokenFile == "" {
		if cfg.TokenFile, err = noteflow.DefaultTokenPath(); err != nil {
			return cfg, err
		}
	}

	cfg.BaseURL = noteflow.GetEnvOrDefault("NOTEFLOW_URL", cfg.BaseURL)
	cfg.TokenFile = noteflow.GetEnvOrDefault("NOTEFLOW_TOKEN_FILE", cfg.TokenFile)
	cfg.LogFile = noteflow.GetEnvOrDefault("NOTEFLOW_LOG_FILE", cfg.LogFile)
	return cfg, nil
}
