package recipe

import "strings"

// ParseIngredients splits a comma-separated ingredient list, trimming each
// entry and dropping empty ones. Order is preserved.
func ParseIngredients(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
