// Package fields projects raw metadata onto the citation fields of a
// document kind.
package fields

import (
	"github.com/litnote/litnote/internal/reference"
)

// Source paths with special handling.
const (
	// SourceMonth pulls the month out of issued.date-parts.
	SourceMonth = "issued.date-parts"
	// SourceEditor is the people list rendered per output surface.
	SourceEditor = "editor"
)

// Field maps a citation field name to the metadata path it is read from.
type Field struct {
	Name   string
	Source string
}

// tables are declared once and never mutated; Table hands out copies.
var tables = map[reference.Kind][]Field{
	reference.Conference: {
		{"booktitle", "collection-title"},
		{"month", SourceMonth},
		{"volume", "volume"},
		{"number", "issue"},
		{"pages", "page"},
		{"series", "container-title"},
		{"editor", SourceEditor},
		{"publisher", "publisher"},
		{"address", "publisher-location"},
		{"organization", "event.name"},
	},
	reference.Journal: {
		{"journal", "container-title"},
		{"volume", "volume"},
		{"number", "issue"},
		{"pages", "page"},
		{"issn", "ISSN"},
	},
	reference.Book: {
		{"booktitle", "title"},
		{"publisher", "publisher"},
		{"address", "publisher-location"},
		{"isbn", "ISBN"},
		{"edition", "edition"},
		{"editor", SourceEditor},
		{"pages", "page"},
		{"series", "container-title"},
	},
	reference.Chapter: {
		{"booktitle", "container-title"},
		{"publisher", "publisher"},
		{"address", "publisher-location"},
		{"pages", "page"},
		{"editor", SourceEditor},
		{"isbn", "ISBN"},
		{"series", "collection-title"},
		{"edition", "edition"},
		{"chapter", "chapter"},
	},
}

// Table returns the ordered field table for kind. Misc has no kind-specific
// fields.
func Table(kind reference.Kind) []Field {
	t := tables[kind]
	out := make([]Field, len(t))
	copy(out, t)
	return out
}
