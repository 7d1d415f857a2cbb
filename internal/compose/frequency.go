// File path: internal/compose/frequency.go
package compose

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/parkworks/parkpilot/internal/evidence"
)

// ActivityContext is the single resolved maintenance cadence for a
// request: the matched phrase, its approximate cycle length in days, where
// it came from, and the snippet it was mined from.
type ActivityContext struct {
	FrequencyText string  `json:"frequency_text"`
	CycleDays     float64 `json:"cycle_days"`
	Source        string  `json:"source"`
	Snippet       string  `json:"snippet,omitempty"`
}

var (
	everyWeeksPattern   = regexp.MustCompile(`(?i)every\s+(\d+(?:\.\d+)?)(?:\s*[-–]\s*(\d+(?:\.\d+)?))?\s*weeks?`)
	everyDaysPattern    = regexp.MustCompile(`(?i)every\s+(\d+(?:\.\d+)?)(?:\s*[-–]\s*(\d+(?:\.\d+)?))?\s*days?`)
	timesPerWeekPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(?:\s*[-–]\s*(\d+(?:\.\d+)?))?\s*times?\s+(?:per|a)\s+week`)
)

// cadenceKeywords are checked after the numeric patterns, most specific
// first so "biweekly" never reads as "weekly".
var cadenceKeywords = []struct {
	Phrase string
	Days   float64
}{
	{"biweekly", 14},
	{"every other week", 14},
	{"weekly", 7},
	{"monthly", 30},
	{"every day", 1},
	{"daily", 1},
}

// ResolveCycleDays converts a free-text cadence phrase into an approximate
// cycle length in days. A false return means the cadence is unknown;
// callers must never treat it as zero.
func ResolveCycleDays(text string) (float64, bool) {
	if m := everyWeeksPattern.FindStringSubmatch(text); m != nil {
		return rangeMidpoint(m[1], m[2]) * 7, true
	}
	if m := everyDaysPattern.FindStringSubmatch(text); m != nil {
		return rangeMidpoint(m[1], m[2]), true
	}
	if m := timesPerWeekPattern.FindStringSubmatch(text); m != nil {
		mid := rangeMidpoint(m[1], m[2])
		if mid > 0 {
			return 7 / mid, true
		}
	}
	lower := strings.ToLower(text)
	for _, kw := range cadenceKeywords {
		if strings.Contains(lower, kw.Phrase) {
			return kw.Days, true
		}
	}
	return 0, false
}

// ResolveActivityContext resolves at most one cadence per request: an
// explicit cycle_days slot wins, then the first reference snippet whose
// text yields a cadence.
func ResolveActivityContext(slots map[string]interface{}, hits []evidence.KBHit) *ActivityContext {
	if days, ok := slotFloat(slots, "cycle_days"); ok && days > 0 {
		return &ActivityContext{
			FrequencyText: "explicit cycle",
			CycleDays:     days,
			Source:        "slots",
		}
	}
	for _, hit := range hits {
		days, ok := ResolveCycleDays(hit.Text)
		if !ok {
			continue
		}
		phrase := hit.Text
		if freq, extracted := ExtractStandards(hit.Text)["mowing_frequency"]; extracted {
			phrase = freq
		}
		return &ActivityContext{
			FrequencyText: snip(phrase, 80),
			CycleDays:     days,
			Source:        "reference",
			Snippet:       snip(hit.Text, 200),
		}
	}
	return nil
}

func rangeMidpoint(lowStr, highStr string) float64 {
	low, err := strconv.ParseFloat(lowStr, 64)
	if err != nil {
		return 0
	}
	if strings.TrimSpace(highStr) == "" {
		return low
	}
	high, err := strconv.ParseFloat(highStr, 64)
	if err != nil {
		return low
	}
	return (low + high) / 2
}
