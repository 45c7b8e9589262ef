package schema

import (
	"strings"
	"unicode"
)

// kebab converts a Go identifier to a WIT name. Acronyms stay together:
// HTTPServer becomes http-server.
func kebab(s string) string {
	runes := []rune(s)
	var b strings.Builder

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '_' {
			if i > 0 {
				b.WriteByte('-')
			}
			continue
		}
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}

		end := i + 1
		for end < len(runes) && unicode.IsUpper(runes[end]) {
			end++
		}
		// the last capital of an acronym starts the next word
		if end > i+1 && end < len(runes) && unicode.IsLower(runes[end]) {
			end--
		}
		if i > 0 && runes[i-1] != '_' {
			b.WriteByte('-')
		}
		for j := i; j < end; j++ {
			b.WriteRune(unicode.ToLower(runes[j]))
		}
		i = end - 1
	}
	return b.String()
}
