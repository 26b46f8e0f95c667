// Package citekey derives the citation alias used as BibTeX key and filename
// stem.
package citekey

import (
	"strings"
	"unicode"

	"github.com/litnote/litnote/internal/reference"
)

// Unknown stands in for the surname when no valid person exists.
const Unknown = "Unknown"

// Build returns <Surname><Year>. The surname is taken from the first valid
// author, or from the first valid editor when editorsAsAuthors is set and no
// author qualifies. Whitespace in the surname becomes underscores. An empty
// year yields a year-less key.
func Build(authors, editors []reference.Person, editorsAsAuthors bool, year string) string {
	person, ok := first(authors)
	if !ok && editorsAsAuthors {
		person, ok = first(editors)
	}

	surname := Unknown
	if ok {
		if s := underscore(person.Surname()); s != "" {
			surname = s
		}
	}
	return surname + strings.Join(strings.Fields(year), "")
}

func first(people []reference.Person) (reference.Person, bool) {
	for _, p := range people {
		if p.Valid() {
			return p, true
		}
	}
	return reference.Person{}, false
}

// underscore trims s and replaces each remaining whitespace rune with "_".
func underscore(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
}
