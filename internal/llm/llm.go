// File path: internal/llm/llm.go
package llm

import (
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/parkworks/parkpilot/internal/common"
	"github.com/parkworks/parkpilot/internal/config"
	"github.com/parkworks/parkpilot/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

// NewProvider selects the chat backend for the summarization port. A nil
// return means no backend is configured; callers degrade to deterministic
// formatting. Any OpenAI-compatible endpoint works, including local Ollama.
func NewProvider(cfg config.SummarizerConfig) Provider {
	logger := common.Logger()
	if !cfg.Enabled {
		logger.Info("llm: summarizer disabled by configuration")
		return nil
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if apiKey == "" && endpoint == "" {
		logger.Warn("llm: no API key or endpoint configured; summarizer unavailable")
		return nil
	}
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		// Local OpenAI-compatible servers ignore the key but the client
		// requires one.
		opts = append(opts, option.WithAPIKey("local"))
	}
	if endpoint != "" {
		logger.Info("llm: using custom chat endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	client := openai.NewClient(opts...)
	logger.Info("llm: OpenAI-compatible provider selected", "chat_model", cfg.ChatModel)
	return providers.NewOpenAIProvider(&client, cfg.ChatModel, cfg.MaxTokens)
}
