package intake

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

func trim(s string) string {
	return strings.TrimSpace(s)
}

// titleCase upper-cases the first letter of every word, e.g. "jane doe"
// becomes "Jane Doe".
func titleCase(s string) string {
	return titleCaser.String(s)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// splitList splits comma-separated free text into capitalized entries,
// dropping entries that are empty after trimming.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if entry := trim(part); entry != "" {
			items = append(items, capitalize(entry))
		}
	}
	return items
}
