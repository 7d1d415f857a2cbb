// File path: internal/compose/standards.go
package compose

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/parkworks/parkpilot/internal/evidence"
)

// StandardsMap holds metric values mined from reference text, keyed by
// metric name.
type StandardsMap map[string]string

// standardRule is one declarative extraction rule: a metric key, the
// pattern whose first capture group supplies the value, and an optional
// normalizer. Rules are evaluated in table order; adding a metric means
// adding a row here, not a branch.
type standardRule struct {
	Key       string
	Pattern   *regexp.Regexp
	Normalize func(string) (string, error)
}

var standardRules = []standardRule{
	{
		Key:       "cutting_height_cm",
		Pattern:   regexp.MustCompile(`(?i)cutting height[^0-9]{0,40}?(\d+(?:\.\d+)?)\s*cm`),
		Normalize: normalizeNumber,
	},
	{
		Key:       "grass_height_trigger_cm",
		Pattern:   regexp.MustCompile(`(?i)(?:mow|cut)\s+when\s+(?:the\s+)?grass\s+(?:reaches|exceeds)[^0-9]{0,20}?(\d+(?:\.\d+)?)\s*cm`),
		Normalize: normalizeNumber,
	},
	{
		Key:     "mowing_frequency",
		Pattern: regexp.MustCompile(`(?i)(?:mow|mowing|cut|cutting)[^.]{0,60}?\b(every\s+(?:other\s+week|\d+(?:\s*[-–]\s*\d+)?\s*(?:weeks?|days?))|\d+(?:\s*[-–]\s*\d+)?\s*times?\s+(?:per|a)\s+week|biweekly|weekly|monthly|daily)\b`),
		Normalize: func(s string) (string, error) {
			return strings.ToLower(strings.Join(strings.Fields(s), " ")), nil
		},
	},
	{
		Key:       "irrigation_depth_mm",
		Pattern:   regexp.MustCompile(`(?i)(?:irrigat|water)[^0-9]{0,60}?(\d+(?:\.\d+)?)\s*mm`),
		Normalize: normalizeNumber,
	},
	{
		Key:       "fertilizer_rate_kg_ha",
		Pattern:   regexp.MustCompile(`(?i)fertili[sz][^0-9]{0,60}?(\d+(?:\.\d+)?)\s*kg\s*(?:/|per\s*)ha`),
		Normalize: normalizeNumber,
	},
}

// standardsMetricLabels maps metric keys to the labels used in the
// rendered metrics block, in render order.
var standardsMetricOrder = []struct {
	Key   string
	Label string
}{
	{"cutting_height_cm", "Cutting height"},
	{"grass_height_trigger_cm", "Mow trigger height"},
	{"mowing_frequency", "Mowing frequency"},
	{"irrigation_depth_mm", "Irrigation depth"},
	{"fertilizer_rate_kg_ha", "Fertilizer rate"},
}

var standardsMetricUnits = map[string]string{
	"cutting_height_cm":       " cm",
	"grass_height_trigger_cm": " cm",
	"irrigation_depth_mm":     " mm",
	"fertilizer_rate_kg_ha":   " kg/ha",
}

// ExtractStandards applies the rule table to a single text. The first
// successful match per key wins; a normalizer failure keeps the raw
// capture. A text matching no rule yields an empty map, never an error.
func ExtractStandards(text string) StandardsMap {
	out := make(StandardsMap)
	extractStandardsInto(out, text)
	return out
}

// BuildStandards mines up to the first three snippets. A key populated by
// an earlier snippet is never overwritten by a later one.
func BuildStandards(hits []evidence.KBHit) StandardsMap {
	out := make(StandardsMap)
	for i, hit := range hits {
		if i >= 3 {
			break
		}
		extractStandardsInto(out, hit.Text)
	}
	return out
}

func extractStandardsInto(out StandardsMap, text string) {
	for _, rule := range standardRules {
		if _, taken := out[rule.Key]; taken {
			continue
		}
		match := rule.Pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value := match[1]
		if rule.Normalize != nil {
			if normalized, err := rule.Normalize(value); err == nil {
				value = normalized
			}
		}
		out[rule.Key] = value
	}
}

var standardsKeywords = []string{"standard", "specification", "guideline", "criteria"}

// isStandardsText reports whether the snippets read like a standards
// document, by keyword match.
func isStandardsText(hits []evidence.KBHit) bool {
	for _, hit := range hits {
		lower := strings.ToLower(hit.Text)
		for _, keyword := range standardsKeywords {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
	}
	return false
}

// renderStandardsBlock formats extracted metrics as a markdown block.
func renderStandardsBlock(standards StandardsMap) string {
	var b strings.Builder
	b.WriteString("### 📐 Maintenance Standards\n")
	for _, metric := range standardsMetricOrder {
		value, ok := standards[metric.Key]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n- **%s**: %s%s", metric.Label, value, standardsMetricUnits[metric.Key])
	}
	return b.String()
}

// normalizeNumber parses a captured number and re-renders it with
// insignificant trailing zeros removed.
func normalizeNumber(s string) (string, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
