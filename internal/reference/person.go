package reference

import (
	"strings"

	"github.com/litnote/litnote/internal/metadata"
)

// Person is an author or editor entry. Structured entries carry Given/Family;
// bare entries (organisations, display-name strings) carry Literal.
type Person struct {
	Given   string `json:"given,omitempty"`
	Family  string `json:"family,omitempty"`
	Literal string `json:"literal,omitempty"`
}

// ParsePerson reads one person entry. Every sub-field is trimmed. Shapes other
// than a string or an object yield an invalid Person.
func ParsePerson(v metadata.Value) Person {
	switch v.Kind() {
	case metadata.String:
		return Person{Literal: strings.TrimSpace(v.Text())}
	case metadata.Map:
		p := Person{
			Given:  strings.TrimSpace(v.Get("given").Text()),
			Family: strings.TrimSpace(v.Get("family").Text()),
		}
		if p.Given == "" && p.Family == "" {
			p.Literal = strings.TrimSpace(v.Get("literal").Text())
			if p.Literal == "" {
				p.Literal = strings.TrimSpace(v.Get("name").Text())
			}
		}
		return p
	default:
		return Person{}
	}
}

// SanitizePeople returns the valid entries of a people list in input order.
// Invalid entries are dropped silently. A lone object or string is treated as
// a one-element list.
func SanitizePeople(v metadata.Value) []Person {
	var entries []metadata.Value
	switch v.Kind() {
	case metadata.List:
		entries = v.Items()
	case metadata.Map, metadata.String:
		entries = []metadata.Value{v}
	}

	people := make([]Person, 0, len(entries))
	for _, e := range entries {
		p := ParsePerson(e)
		if p.Valid() {
			people = append(people, p)
		}
	}
	return people
}

// IsStructured reports whether the entry has given/family parts.
func (p Person) IsStructured() bool {
	return p.Given != "" || p.Family != ""
}

// Valid reports whether the entry has any non-blank name part.
func (p Person) Valid() bool {
	_, ok := p.Display()
	return ok
}

// Display returns "Given Family" for structured entries and the literal for
// bare ones. The second result is false when nothing is left after trimming.
func (p Person) Display() (string, bool) {
	var s string
	if p.IsStructured() {
		s = strings.TrimSpace(strings.TrimSpace(p.Given) + " " + strings.TrimSpace(p.Family))
	} else {
		s = strings.TrimSpace(p.Literal)
	}
	return s, s != ""
}

// BibTeXName formats the entry as "Family, Given".
func (p Person) BibTeXName() string {
	switch {
	case !p.IsStructured():
		return p.Literal
	case p.Given == "":
		return p.Family
	case p.Family == "":
		return p.Given
	default:
		return p.Family + ", " + p.Given
	}
}

// Surname returns the family name, or the last whitespace-delimited token for
// bare entries and entries that only carry a given name.
func (p Person) Surname() string {
	if p.Family != "" {
		return p.Family
	}
	name := p.Literal
	if p.IsStructured() {
		name = p.Given
	}
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// FormatBibTeXNames joins people as "Family, Given and Family, Given".
func FormatBibTeXNames(people []Person) string {
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.BibTeXName()
	}
	return strings.Join(names, " and ")
}
