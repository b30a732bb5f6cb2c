package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const configFileName = "config.yaml"

// Config holds client-wide settings. Environment variables win over the
// optional ~/.homedesk/config.yaml file, which wins over defaults.
type Config struct {
	ServerURL string
	Timeout   time.Duration
	Verbose   bool
}

// fileConfig is the on-disk shape; timeout is kept in seconds there.
type fileConfig struct {
	Server         string `yaml:"server"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Verbose        bool   `yaml:"verbose"`
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		ServerURL: "http://127.0.0.1:5000",
		Timeout:   15 * time.Second,
	}

	if fc, err := loadFile(); err != nil {
		return nil, err
	} else if fc != nil {
		if fc.Server != "" {
			cfg.ServerURL = fc.Server
		}
		if fc.TimeoutSeconds > 0 {
			cfg.Timeout = time.Duration(fc.TimeoutSeconds) * time.Second
		}
		cfg.Verbose = fc.Verbose
	}

	if v := os.Getenv("HOMEDESK_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("HOMEDESK_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid HOMEDESK_TIMEOUT: %q", v)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("HOMEDESK_VERBOSE"); v != "" {
		cfg.Verbose = v == "1" || v == "true"
	}

	return cfg, nil
}

// Dir returns the per-user state directory (~/.homedesk).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".homedesk"), nil
}

func loadFile() (*fileConfig, error) {
	dir, err := Dir()
	if err != nil {
		// No home directory means no config file; env and defaults still apply.
		return nil, nil
	}
	b, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &fc, nil
}
