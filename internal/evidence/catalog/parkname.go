// File path: internal/evidence/catalog/parkname.go
package catalog

import "strings"

// CleanParkName extracts the canonical park name from a raw work-order
// label: the first word after the first dash, or the first word when no
// dash exists. "RFT- Alice Town Pk PTurf Mow/Maint" becomes "Alice".
func CleanParkName(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	if idx := strings.Index(text, "-"); idx >= 0 {
		text = strings.TrimSpace(text[idx+1:])
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

// FirstWord lowercases the first word of a park name for fuzzy matching
// against the catalog's cleaned park names.
func FirstWord(name string) string {
	words := strings.Fields(strings.TrimSpace(name))
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[0])
}
