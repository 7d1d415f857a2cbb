// File path: internal/compose/standards_test.go
package compose

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/parkworks/parkpilot/internal/evidence"
)

func TestExtractCuttingHeight(t *testing.T) {
	standards := ExtractStandards("Cutting height should be 5 cm")
	if got := standards["cutting_height_cm"]; got != "5" {
		t.Fatalf("cutting_height_cm = %q, want \"5\"", got)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	text := "Cutting height should be 5.5 cm. Mow every 2 weeks. Irrigate with 25 mm weekly."
	first := ExtractStandards(text)
	second := ExtractStandards(text)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("extraction not idempotent (-first +second):\n%s", diff)
	}
	if len(first) == 0 {
		t.Fatal("expected at least one extracted metric")
	}
}

func TestExtractNoMatchYieldsEmptyMap(t *testing.T) {
	standards := ExtractStandards("Nothing relevant in this sentence at all.")
	if len(standards) != 0 {
		t.Fatalf("expected empty map, got %v", standards)
	}
}

func TestBuildStandardsFirstSnippetWins(t *testing.T) {
	hits := []evidence.KBHit{
		{Text: "Cutting height should be 5 cm"},
		{Text: "Cutting height should be 9 cm"},
	}
	standards := BuildStandards(hits)
	if got := standards["cutting_height_cm"]; got != "5" {
		t.Fatalf("later snippet overwrote key: %q", got)
	}
}

func TestBuildStandardsIgnoresSnippetsBeyondThree(t *testing.T) {
	hits := []evidence.KBHit{
		{Text: "no metric"},
		{Text: "no metric"},
		{Text: "no metric"},
		{Text: "Cutting height should be 5 cm"},
	}
	standards := BuildStandards(hits)
	if _, ok := standards["cutting_height_cm"]; ok {
		t.Fatal("fourth snippet must not contribute metrics")
	}
}

func TestBuildStandardsMergesAcrossSnippets(t *testing.T) {
	hits := []evidence.KBHit{
		{Text: "Cutting height should be 5 cm per the standard."},
		{Text: "Crews should mow every 2 weeks during the season."},
	}
	standards := BuildStandards(hits)
	if standards["cutting_height_cm"] != "5" {
		t.Fatalf("cutting_height_cm = %q", standards["cutting_height_cm"])
	}
	if standards["mowing_frequency"] != "every 2 weeks" {
		t.Fatalf("mowing_frequency = %q", standards["mowing_frequency"])
	}
}

func TestIsStandardsText(t *testing.T) {
	if !isStandardsText([]evidence.KBHit{{Text: "Turf maintenance standard, rev 3"}}) {
		t.Fatal("keyword 'standard' should classify as standards text")
	}
	if isStandardsText([]evidence.KBHit{{Text: "A note about last week's picnic"}}) {
		t.Fatal("unrelated text should not classify as standards text")
	}
}

func TestRenderStandardsBlock(t *testing.T) {
	block := renderStandardsBlock(StandardsMap{
		"cutting_height_cm": "5",
		"mowing_frequency":  "every 2 weeks",
	})
	if !containsAll(block, "Maintenance Standards", "**Cutting height**: 5 cm", "**Mowing frequency**: every 2 weeks") {
		t.Fatalf("unexpected block:\n%s", block)
	}
}
