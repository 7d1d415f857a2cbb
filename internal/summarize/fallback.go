// File path: internal/summarize/fallback.go
package summarize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/parkworks/parkpilot/internal/evidence"
)

var collapseSpaces = regexp.MustCompile(`\s+`)

// FormatSnippets is the deterministic fallback formatter used whenever the
// chat provider is disabled, times out, or fails. It renders at most three
// snippets verbatim, trimmed to 200 runes each.
func FormatSnippets(snippets []evidence.KBHit) string {
	if len(snippets) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("### 📚 Reference Context\n\n")
	for i, snippet := range snippets {
		if i >= 3 {
			break
		}
		text := strings.TrimSpace(collapseSpaces.ReplaceAllString(snippet.Text, " "))
		if runes := []rune(text); len(runes) > 200 {
			text = string(runes[:200]) + "..."
		}
		page := snippet.Page
		if page == "" {
			page = "?"
		}
		fmt.Fprintf(&b, "**Source %d** (page %s):\n%s\n\n", i+1, page, text)
	}
	return strings.TrimRight(b.String(), "\n")
}
