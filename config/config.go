// Package config loads service configuration from an optional YAML
// file with environment-variable overrides. Every field has a working
// default, so the zero configuration path (no file, no env) is valid.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full WebFetch configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig configures the REST server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// FetchConfig configures the shared HTTP fetcher.
type FetchConfig struct {
	UserAgent           string `yaml:"user_agent"`
	TimeoutSeconds      int    `yaml:"timeout_seconds"`
	MaxBodyBytes        int64  `yaml:"max_body_bytes"`
	MaxIdleConns        int    `yaml:"max_idle_conns"`
	MaxIdleConnsPerHost int    `yaml:"max_idle_conns_per_host"`
}

// BatchConfig configures batch fetching.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with all default values applied.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads the YAML file at path (skipped when path is empty or the
// file does not exist), applies env overrides, then defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file; fall through to env + defaults.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyEnv(cfg)
	setDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WEBFETCH_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("WEBFETCH_USER_AGENT"); v != "" {
		cfg.Fetch.UserAgent = v
	}
	if v := os.Getenv("WEBFETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("WEBFETCH_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Batch.MaxConcurrent = n
		}
	}
	if v := os.Getenv("WEBFETCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8000"
	}
	if cfg.Fetch.TimeoutSeconds <= 0 {
		cfg.Fetch.TimeoutSeconds = 30
	}
	if cfg.Fetch.MaxBodyBytes <= 0 {
		cfg.Fetch.MaxBodyBytes = 10 * 1024 * 1024
	}
	if cfg.Fetch.MaxIdleConns <= 0 {
		cfg.Fetch.MaxIdleConns = 50
	}
	if cfg.Fetch.MaxIdleConnsPerHost <= 0 {
		cfg.Fetch.MaxIdleConnsPerHost = 10
	}
	if cfg.Batch.MaxConcurrent <= 0 {
		cfg.Batch.MaxConcurrent = 5
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
