package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.ListenAddr != ":8017" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("Fetch.Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.UserAgent != "Mozilla/5.0" {
		t.Errorf("Fetch.UserAgent = %q", cfg.Fetch.UserAgent)
	}
	if cfg.Fetch.CacheTTL != 15*time.Minute {
		t.Errorf("Fetch.CacheTTL = %v", cfg.Fetch.CacheTTL)
	}
	if cfg.DBPath != "seo-intel.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Embeddings.Endpoint != "" {
		t.Errorf("Embeddings.Endpoint = %q, want empty", cfg.Embeddings.Endpoint)
	}
}

func TestLoadConfigFile(t *testing.T) {
	content := `
listen_addr: ":9000"
fetch:
  timeout: 5s
embeddings:
  endpoint: "http://localhost:11434/v1/embeddings"
  model: "nomic-embed-text"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.Fetch.Timeout != 5*time.Second {
		t.Errorf("Fetch.Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Embeddings.Model != "nomic-embed-text" {
		t.Errorf("Embeddings.Model = %q", cfg.Embeddings.Model)
	}

	// Unset fields keep their defaults.
	if cfg.Fetch.UserAgent != "Mozilla/5.0" {
		t.Errorf("Fetch.UserAgent = %q", cfg.Fetch.UserAgent)
	}
	if cfg.Fetch.CacheTTL != 15*time.Minute {
		t.Errorf("Fetch.CacheTTL = %v", cfg.Fetch.CacheTTL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("fetch:\n  timeout: \"fast\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("unparseable duration should fail")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}
