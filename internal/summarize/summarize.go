// File path: internal/summarize/summarize.go
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/parkworks/parkpilot/internal/common"
	"github.com/parkworks/parkpilot/internal/evidence"
	"github.com/parkworks/parkpilot/internal/llm"
)

// ErrUnavailable reports that no chat backend is configured. Callers fall
// back to deterministic formatting, never fail the request.
var ErrUnavailable = errors.New("summarizer unavailable")

// Mode selects the prompt variant.
type Mode string

const (
	// ModeGeneric interprets reference snippets, optionally against a
	// tabular result summary.
	ModeGeneric Mode = "generic"
	// ModeDimension compares field dimension rows against criteria from
	// the reference snippets.
	ModeDimension Mode = "dimension"
)

// Request carries everything one summarization call needs.
type Request struct {
	Query         string
	Snippets      []evidence.KBHit
	ResultSummary string
	Rows          []evidence.Row
	Mode          Mode
}

// Summarizer is the external text-generation port. Implementations must
// respect the context deadline; they are called at most a few times per
// request.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
	Name() string
}

// ChatSummarizer backs the port with an LLM chat provider.
type ChatSummarizer struct {
	provider llm.Provider
	timeout  time.Duration
}

// New wraps a chat provider with the configured per-call timeout. The
// provider may be nil; every call then reports ErrUnavailable.
func New(provider llm.Provider, timeout time.Duration) *ChatSummarizer {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &ChatSummarizer{provider: provider, timeout: timeout}
}

func (s *ChatSummarizer) Name() string {
	if s == nil || s.provider == nil {
		return "none"
	}
	return s.provider.Name()
}

func (s *ChatSummarizer) Summarize(ctx context.Context, req Request) (string, error) {
	if s == nil || s.provider == nil {
		return "", ErrUnavailable
	}
	if len(req.Snippets) == 0 {
		return "", fmt.Errorf("no snippets to summarize")
	}
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	messages := []llm.Message{
		{Role: "system", Content: "You are a helpful assistant that summarizes technical documentation clearly and concisely."},
		{Role: "user", Content: buildPrompt(req)},
	}
	logger := common.Logger()
	logger.Debug("summarize: calling chat provider", "mode", string(req.Mode), "snippets", len(req.Snippets))
	answer, err := s.provider.Chat(callCtx, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func buildPrompt(req Request) string {
	contextText := snippetContext(req.Snippets)
	switch {
	case req.Mode == ModeDimension && req.ResultSummary != "":
		return fmt.Sprintf(`You are an assistant helping calculate the dimension differences.

User Question: %s

SQL Query Result: %s

Reference Documents:
%s

Task: You will find dimension data for a list of fields from the SQL Query Result. The reference document provides the criteria for the certain dimensions.
Compare the dimension data from the SQL results against the criteria mentioned in the reference documents.
List the differences for each criterion for each field.

Keep it concise and directly relevant to the user's question. Use markdown formatting.`, req.Query, rowsJSON(req.Rows), contextText)
	case req.ResultSummary != "":
		return fmt.Sprintf(`You are an assistant helping interpret park maintenance data.

User Question: %s

SQL Query Result: %s

Reference Documents:
%s

Task: Based on the reference documents, provide 2-3 sentences of relevant context that helps interpret the SQL results above. Focus on:
- Relevant standards, procedures, or guidelines
- Cost factors or typical ranges mentioned
- Any important notes about the data

Keep it concise and directly relevant to the user's question. Use markdown formatting.`, req.Query, req.ResultSummary, contextText)
	default:
		return fmt.Sprintf(`You are an assistant helping answer questions about park maintenance procedures.

User Question: %s

Reference Documents:
%s

Task: Summarize the key information from the reference documents that answers the user's question. Provide:
- 2-3 key points or steps
- Relevant standards or guidelines
- Important safety notes if applicable

Use markdown formatting with bullet points.`, req.Query, contextText)
	}
}

func snippetContext(snippets []evidence.KBHit) string {
	parts := make([]string, 0, 3)
	for i, snippet := range snippets {
		if i >= 3 {
			break
		}
		page := snippet.Page
		if page == "" {
			page = "?"
		}
		text := snippet.Text
		if runes := []rune(text); len(runes) > 500 {
			text = string(runes[:500])
		}
		parts = append(parts, fmt.Sprintf("Source %d (page %s): %s", i+1, page, text))
	}
	return strings.Join(parts, "\n\n")
}

func rowsJSON(rows []evidence.Row) string {
	if len(rows) == 0 {
		return "[]"
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Sprintf("%d rows", len(rows))
	}
	return string(data)
}
