// Package journal matches journal names against a static ranking table
// (SCImago Journal Rank export) and reports the journal's metrics.
package journal

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize prepares a journal name for comparison: lowercase, "&" spelled
// "and", one leading "the " removed, punctuation dropped, ends trimmed.
func Normalize(name string) string {
	s := cases.Lower(language.Und).String(name)
	s = strings.ReplaceAll(s, " & ", " and ")
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.TrimPrefix(s, "the ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
