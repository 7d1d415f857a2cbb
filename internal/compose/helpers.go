// File path: internal/compose/helpers.go
package compose

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// snip collapses whitespace and truncates to n runes with an ellipsis.
func snip(text string, n int) string {
	cleaned := strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	runes := []rune(cleaned)
	if n <= 0 || len(runes) <= n {
		return cleaned
	}
	return string(runes[:n]) + "..."
}

func slotString(slots map[string]interface{}, key string) string {
	if slots == nil {
		return ""
	}
	v, ok := slots[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func slotFloat(slots map[string]interface{}, key string) (float64, bool) {
	if slots == nil {
		return 0, false
	}
	v, ok := slots[key]
	if !ok || v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// formatMoney renders a value with two decimals and thousands separators.
func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := fmt.Sprintf("%.2f", v)
	dot := strings.Index(whole, ".")
	intPart, fracPart := whole[:dot], whole[dot:]
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups[0:]...)
	out := strings.Join(groups, ",") + fracPart
	if neg {
		return "-" + out
	}
	return out
}
