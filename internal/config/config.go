// Package config loads lolfetch settings.
//
// Sources, lowest precedence first:
//
//  1. a .env file in the working directory (never overrides the environment)
//  2. the YAML file at <user config dir>/lolfetch/config.yaml
//  3. RIOT_API_KEY and LOLFETCH_CACHE_DIR
//  4. command-line flags, applied by the caller
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/colthorp/lolfetch-go/internal/core"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned by Validate when no Riot API key is set.
var ErrMissingAPIKey = errors.New("missing Riot API key: set " + core.APIKeyEnvVar + ", api_key in the config file, or --api-key")

// Config holds user settings.
type Config struct {
	APIKey   string `yaml:"api_key"`
	RiotID   string `yaml:"riot_id"`
	Server   string `yaml:"server"`
	CacheDir string `yaml:"cache_dir"`
	Image    string `yaml:"image"`
	Games    int    `yaml:"games"`
}

// Load reads the env files (".env" when none are given), the YAML file at
// path (the default location when empty) and the environment. Missing
// files are not an error.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	if path == "" {
		path = core.ConfigPath()
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if cfg, err = Parse(data); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			slog.Debug("no config file", "path", path)
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Parse parses YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Games < 0 {
		return nil, fmt.Errorf("games must not be negative, got %d", cfg.Games)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(core.APIKeyEnvVar); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(core.CacheDirEnvVar); v != "" {
		c.CacheDir = v
	}
}

// Validate checks the settings needed to call the Riot API.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
