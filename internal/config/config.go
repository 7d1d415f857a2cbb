// File path: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the immutable process configuration. It is built once in main
// and passed by value into the API server, the composer, and the
// summarization port; nothing mutates it after startup.
type Config struct {
	Addr        string           `yaml:"addr"`
	CatalogPath string           `yaml:"catalog_path"`
	Summarizer  SummarizerConfig `yaml:"summarizer"`
}

// SummarizerConfig controls the external text-generation call. Endpoint
// accepts any OpenAI-compatible server, including a local Ollama instance.
type SummarizerConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Endpoint      string        `yaml:"endpoint"`
	APIKey        string        `yaml:"-"`
	ChatModel     string        `yaml:"chat_model"`
	Timeout       time.Duration `yaml:"-"`
	TimeoutString string        `yaml:"timeout"`
	MaxTokens     int           `yaml:"max_tokens"`
}

// Default returns the baseline configuration before file and environment
// overlays are applied.
func Default() Config {
	return Config{
		Addr: ":8082",
		Summarizer: SummarizerConfig{
			Enabled:   true,
			ChatModel: "gpt-4o-mini",
			Timeout:   20 * time.Second,
			MaxTokens: 300,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, in rising precedence.
func Load(path string) (Config, error) {
	cfg := Default()
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		data, err := os.ReadFile(trimmed)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	if cfg.Summarizer.TimeoutString != "" {
		dur, err := time.ParseDuration(cfg.Summarizer.TimeoutString)
		if err != nil {
			return Config{}, fmt.Errorf("parse summarizer timeout: %w", err)
		}
		cfg.Summarizer.Timeout = dur
	}
	applyEnv(&cfg)
	if cfg.Summarizer.Timeout <= 0 {
		cfg.Summarizer.Timeout = 20 * time.Second
	}
	if cfg.Summarizer.MaxTokens <= 0 {
		cfg.Summarizer.MaxTokens = 300
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PARKPILOT_ADDR")); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("PARKPILOT_CATALOG")); v != "" {
		cfg.CatalogPath = v
	}
	if v := strings.TrimSpace(os.Getenv("SUMMARIZER_ENABLED")); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.Summarizer.Enabled = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("SUMMARIZER_ENDPOINT")); v != "" {
		cfg.Summarizer.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		cfg.Summarizer.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("SUMMARIZER_CHAT_MODEL")); v != "" {
		cfg.Summarizer.ChatModel = v
	}
	if v := strings.TrimSpace(os.Getenv("SUMMARIZER_TIMEOUT")); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			cfg.Summarizer.Timeout = dur
		}
	}
}
