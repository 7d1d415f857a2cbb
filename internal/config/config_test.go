// File path: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8082" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
	if !cfg.Summarizer.Enabled || cfg.Summarizer.ChatModel != "gpt-4o-mini" {
		t.Fatalf("summarizer defaults = %+v", cfg.Summarizer)
	}
	if cfg.Summarizer.Timeout != 20*time.Second || cfg.Summarizer.MaxTokens != 300 {
		t.Fatalf("summarizer defaults = %+v", cfg.Summarizer)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `addr: ":9090"
catalog_path: /tmp/catalog.db
summarizer:
  enabled: false
  endpoint: http://localhost:11434/v1
  chat_model: llama3
  timeout: 45s
  max_tokens: 128
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.CatalogPath != "/tmp/catalog.db" {
		t.Fatalf("cfg = %+v", cfg)
	}
	s := cfg.Summarizer
	if s.Enabled || s.Endpoint != "http://localhost:11434/v1" || s.ChatModel != "llama3" {
		t.Fatalf("summarizer = %+v", s)
	}
	if s.Timeout != 45*time.Second || s.MaxTokens != 128 {
		t.Fatalf("summarizer = %+v", s)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PARKPILOT_ADDR", ":7070")
	t.Setenv("SUMMARIZER_ENABLED", "false")
	t.Setenv("SUMMARIZER_CHAT_MODEL", "qwen2")
	t.Setenv("SUMMARIZER_TIMEOUT", "5s")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("Addr = %q, env must win over file", cfg.Addr)
	}
	s := cfg.Summarizer
	if s.Enabled || s.ChatModel != "qwen2" || s.Timeout != 5*time.Second || s.APIKey != "sk-test" {
		t.Fatalf("summarizer = %+v", s)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadBadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("summarizer:\n  timeout: soon\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unparseable timeout")
	}
}
