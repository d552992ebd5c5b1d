package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// CleanText trims whitespace but preserves case, for free-text fields.
func CleanText(input string) string {
	return strings.TrimSpace(input)
}

// CleanList trims every element and drops empties, preserving order.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
