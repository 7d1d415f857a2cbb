// File path: internal/compose/frequency_test.go
package compose

import (
	"math"
	"testing"

	"github.com/parkworks/parkpilot/internal/evidence"
)

func TestResolveCycleDays(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"Mow every 2 weeks during the growing season", 14},
		{"every 2-3 weeks", 17.5},
		{"every 10 days", 10},
		{"every 7-9 days", 8},
		{"2 times per week", 3.5},
		{"1-3 times a week", 3.5},
		{"twice monthly? no, biweekly", 14},
		{"mow every other week", 14},
		{"cut weekly in summer", 7},
		{"inspect monthly", 30},
		{"water every day in July", 1},
		{"trim daily", 1},
	}
	for _, tc := range cases {
		got, ok := ResolveCycleDays(tc.text)
		if !ok {
			t.Errorf("ResolveCycleDays(%q): no cadence resolved", tc.text)
			continue
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ResolveCycleDays(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestResolveCycleDaysUnknown(t *testing.T) {
	if days, ok := ResolveCycleDays("no cadence language here"); ok {
		t.Fatalf("expected no cadence, got %v", days)
	}
}

func TestResolveActivityContextSlotWins(t *testing.T) {
	slots := map[string]interface{}{"cycle_days": 10.0}
	hits := []evidence.KBHit{{Text: "Mow every 2 weeks"}}
	ctx := ResolveActivityContext(slots, hits)
	if ctx == nil {
		t.Fatal("expected a resolved context")
	}
	if ctx.CycleDays != 10 || ctx.Source != "slots" {
		t.Fatalf("got CycleDays=%v Source=%q, want 10/slots", ctx.CycleDays, ctx.Source)
	}
}

func TestResolveActivityContextFirstResolvableSnippet(t *testing.T) {
	hits := []evidence.KBHit{
		{Text: "General notes without a cadence."},
		{Text: "Crews should mow every 2 weeks in season.", Page: "3"},
		{Text: "Also weekly edging."},
	}
	ctx := ResolveActivityContext(nil, hits)
	if ctx == nil {
		t.Fatal("expected a resolved context")
	}
	if ctx.CycleDays != 14 || ctx.Source != "reference" {
		t.Fatalf("got CycleDays=%v Source=%q, want 14/reference", ctx.CycleDays, ctx.Source)
	}
	if ctx.FrequencyText != "every 2 weeks" {
		t.Fatalf("FrequencyText = %q, want mined phrase", ctx.FrequencyText)
	}
}

func TestResolveActivityContextNone(t *testing.T) {
	if ctx := ResolveActivityContext(nil, []evidence.KBHit{{Text: "nothing useful"}}); ctx != nil {
		t.Fatalf("expected nil context, got %+v", ctx)
	}
}
