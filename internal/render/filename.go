package render

import (
	"strings"
	"unicode"
)

const maxStemRunes = 80

// FileStem derives the stable filename stem for a record: a
// "YYYY-MM-DD_" prefix when the creation timestamp parses, plus the
// title reduced to alphanumerics, spaces, hyphens, and underscores.
// The same (title, date) pair always yields the same stem, which keeps
// artifact paths stable across runs.
func FileStem(title, createdAt string) string {
	prefix := ""
	if t, err := parseTimestamp(createdAt); err == nil {
		prefix = t.Format("2006-01-02") + "_"
	}

	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimSpace(b.String())
	if runes := []rune(safe); len(runes) > maxStemRunes {
		safe = string(runes[:maxStemRunes])
	}
	if safe == "" {
		safe = "untitled"
	}

	return prefix + safe
}
