// Package models defines data structures for configuration, documents and
// analysis results.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the server and the pipeline.
// Every field has a default so the config file is optional.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	Fetch FetchConfig `yaml:"fetch"`

	Embeddings struct {
		Endpoint string `yaml:"endpoint"` // OpenAI-compatible /v1/embeddings URL
		Model    string `yaml:"model"`
	} `yaml:"embeddings"`

	DBPath string `yaml:"db_path"`
}

// FetchConfig controls URL retrieval. Durations are written as Go
// duration strings in the config file, e.g. "10s" or "15m".
type FetchConfig struct {
	Timeout   time.Duration
	UserAgent string
	CacheTTL  time.Duration
}

func (f *FetchConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Timeout   string `yaml:"timeout"`
		UserAgent string `yaml:"user_agent"`
		CacheTTL  string `yaml:"cache_ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid fetch timeout: %w", err)
		}
		f.Timeout = d
	}
	if raw.UserAgent != "" {
		f.UserAgent = raw.UserAgent
	}
	if raw.CacheTTL != "" {
		d, err := time.ParseDuration(raw.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache TTL: %w", err)
		}
		f.CacheTTL = d
	}
	return nil
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	cfg := &Config{
		ListenAddr: ":8017",
		DBPath:     "seo-intel.db",
	}
	cfg.Fetch.Timeout = 10 * time.Second
	cfg.Fetch.UserAgent = "Mozilla/5.0"
	cfg.Fetch.CacheTTL = 15 * time.Minute
	return cfg
}

// LoadConfig reads a YAML config file, falling back to defaults for any
// unset field. An empty path returns the defaults without touching disk.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8017"
	}
	if cfg.Fetch.Timeout <= 0 {
		cfg.Fetch.Timeout = 10 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Mozilla/5.0"
	}
	if cfg.Fetch.CacheTTL <= 0 {
		cfg.Fetch.CacheTTL = 15 * time.Minute
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "seo-intel.db"
	}

	return cfg, nil
}
