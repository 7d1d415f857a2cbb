// File path: internal/summarize/summarize_test.go
package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/parkworks/parkpilot/internal/evidence"
	"github.com/parkworks/parkpilot/internal/llm"
)

type fakeProvider struct {
	answer  string
	err     error
	lastCtx context.Context
	prompt  string
}

func (f *fakeProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	f.lastCtx = ctx
	if len(messages) > 0 {
		f.prompt = messages[len(messages)-1].Content
	}
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestSummarizeWithoutProvider(t *testing.T) {
	s := New(nil, time.Second)
	_, err := s.Summarize(context.Background(), Request{Snippets: []evidence.KBHit{{Text: "x"}}})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestSummarizeWithoutSnippets(t *testing.T) {
	s := New(&fakeProvider{answer: "ok"}, time.Second)
	if _, err := s.Summarize(context.Background(), Request{}); err == nil {
		t.Fatal("expected an error for an empty snippet set")
	}
}

func TestSummarizeTrimsAnswerAndAppliesDeadline(t *testing.T) {
	provider := &fakeProvider{answer: "  a tidy answer \n"}
	s := New(provider, 2*time.Second)
	got, err := s.Summarize(context.Background(), Request{
		Query:    "how short?",
		Snippets: []evidence.KBHit{{Text: "mow often"}},
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "a tidy answer" {
		t.Fatalf("answer = %q", got)
	}
	if _, ok := provider.lastCtx.Deadline(); !ok {
		t.Fatal("provider context must carry a deadline")
	}
}

func TestSummarizePropagatesProviderError(t *testing.T) {
	boom := errors.New("backend down")
	s := New(&fakeProvider{err: boom}, time.Second)
	_, err := s.Summarize(context.Background(), Request{Snippets: []evidence.KBHit{{Text: "x"}}})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want provider error", err)
	}
}

func TestBuildPromptVariants(t *testing.T) {
	snippets := []evidence.KBHit{{Text: "base paths are 60 ft", Page: "1"}}
	row := evidence.NewRow()
	row.Set("field", "Diamond 1")

	generic := buildPrompt(Request{Query: "q", Snippets: snippets})
	if !strings.Contains(generic, "park maintenance procedures") {
		t.Fatalf("generic prompt = %q", generic)
	}

	withResult := buildPrompt(Request{Query: "q", Snippets: snippets, ResultSummary: "2 parks"})
	if !strings.Contains(withResult, "SQL Query Result: 2 parks") {
		t.Fatalf("result prompt = %q", withResult)
	}

	dimension := buildPrompt(Request{
		Query: "q", Snippets: snippets, ResultSummary: "1 field",
		Rows: []evidence.Row{row}, Mode: ModeDimension,
	})
	if !strings.Contains(dimension, "dimension differences") || !strings.Contains(dimension, `"field":"Diamond 1"`) {
		t.Fatalf("dimension prompt = %q", dimension)
	}
}

func TestSnippetContextCapsAndTruncates(t *testing.T) {
	long := strings.Repeat("x", 600)
	snippets := []evidence.KBHit{
		{Text: long, Page: "2"},
		{Text: "second"},
		{Text: "third"},
		{Text: "fourth"},
	}
	got := snippetContext(snippets)
	if strings.Contains(got, "Source 4") {
		t.Fatal("context must cap at three snippets")
	}
	if !strings.Contains(got, "Source 2 (page ?)") {
		t.Fatalf("missing page placeholder:\n%s", got)
	}
	if strings.Contains(got, strings.Repeat("x", 501)) {
		t.Fatal("snippet text must be truncated to 500 runes")
	}
}

func TestFormatSnippets(t *testing.T) {
	long := strings.Repeat("y", 250)
	got := FormatSnippets([]evidence.KBHit{
		{Text: "first snippet", Page: "3"},
		{Text: long},
	})
	if !strings.Contains(got, "Reference Context") {
		t.Fatalf("missing heading:\n%s", got)
	}
	if !strings.Contains(got, "**Source 1** (page 3):\nfirst snippet") {
		t.Fatalf("missing first source:\n%s", got)
	}
	if !strings.Contains(got, strings.Repeat("y", 200)+"...") {
		t.Fatal("long snippet must be truncated to 200 runes with ellipsis")
	}
	if FormatSnippets(nil) != "" {
		t.Fatal("no snippets must format to empty")
	}
}
