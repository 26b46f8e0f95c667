// Package reference defines the core domain types for citation records.
package reference

import (
	"fmt"
	"strings"
)

// Kind is the document kind a record is classified as. Exactly one kind is
// assigned per record; Misc is the fallback.
type Kind int

const (
	Misc Kind = iota
	Conference
	Journal
	Book
	Chapter
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{Conference, Journal, Book, Chapter, Misc}

// String returns the short lowercase name used by --force-type and template files.
func (k Kind) String() string {
	switch k {
	case Conference:
		return "conference"
	case Journal:
		return "journal"
	case Book:
		return "book"
	case Chapter:
		return "chapter"
	default:
		return "misc"
	}
}

// Label returns the human-readable type label stored on the record.
func (k Kind) Label() string {
	switch k {
	case Conference:
		return "Conference Proceedings"
	case Journal:
		return "Journal Article"
	case Book:
		return "Book"
	case Chapter:
		return "Book Chapter"
	default:
		return "Misc"
	}
}

// BibTeXType returns the BibTeX entry type for the kind.
func (k Kind) BibTeXType() string {
	switch k {
	case Conference:
		return "inproceedings"
	case Journal:
		return "article"
	case Book:
		return "book"
	case Chapter:
		return "inbook"
	default:
		return "misc"
	}
}

// TemplateFile returns the template file name for the kind.
func (k Kind) TemplateFile() string {
	return k.String() + "_template.md"
}

// EditorsAsAuthors reports whether editors stand in for missing authors.
// Only books do this; edited volumes often list no authors at all.
func (k Kind) EditorsAsAuthors() bool {
	return k == Book
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses a short kind name (conference, journal, book, chapter, misc).
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return Misc, fmt.Errorf("invalid document kind: %q (valid: conference, journal, book, chapter, misc)", s)
}
