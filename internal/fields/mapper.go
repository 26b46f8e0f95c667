package fields

import (
	"html"
	"strings"

	"github.com/litnote/litnote/internal/classify"
	"github.com/litnote/litnote/internal/metadata"
	"github.com/litnote/litnote/internal/reference"
)

// Entry is one named citation field value.
type Entry struct {
	Name  string
	Value string
}

// Record is raw metadata projected onto one document kind. Values are kept as
// upstream wrote them (lists collapsed to their first element); each output
// surface applies its own unescaping and page-range convention.
type Record struct {
	Kind  reference.Kind
	Label string

	Title    string
	Year     string
	Month    string
	DOI      string
	Abstract string

	Authors []reference.Person
	Editors []reference.Person
	// EditorsPromoted is set when editors stand in for absent authors.
	EditorsPromoted bool

	values []Entry
}

// Map builds the Record for a classified raw record. It is a pure function of
// its inputs.
func Map(raw metadata.Value, c classify.Classification) Record {
	date := raw.DateParts("issued")

	r := Record{
		Kind:     c.Kind,
		Label:    c.Label,
		Title:    raw.Get("title").First().Text(),
		Year:     date.Year,
		Month:    date.Month,
		DOI:      doiOf(raw),
		Abstract: raw.Get("abstract").Text(),
		Authors:  reference.SanitizePeople(raw.Get("author")),
		Editors:  reference.SanitizePeople(raw.Get("editor")),
	}

	if c.Kind.EditorsAsAuthors() && len(r.Authors) == 0 && len(r.Editors) > 0 {
		r.Authors = r.Editors
		r.Editors = nil
		r.EditorsPromoted = true
	}

	for _, f := range Table(c.Kind) {
		var value string
		switch f.Source {
		case SourceMonth:
			value = r.Month
		case SourceEditor:
			value = reference.FormatBibTeXNames(r.Editors)
		default:
			value = raw.Path(f.Source).First().Text()
		}
		r.values = append(r.values, Entry{Name: f.Name, Value: value})
	}

	return r
}

func doiOf(raw metadata.Value) string {
	if doi := raw.Get("DOI").Text(); doi != "" {
		return doi
	}
	return raw.Get("doi").Text()
}

// Values returns the kind-specific entries in declared order.
func (r Record) Values() []Entry {
	out := make([]Entry, len(r.values))
	copy(out, r.values)
	return out
}

// Value returns the raw value of a kind-specific field.
func (r Record) Value(name string) (string, bool) {
	for _, e := range r.values {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Missing lists the declared fields of kind whose source value is falsy.
func Missing(raw metadata.Value, kind reference.Kind) []string {
	var missing []string
	for _, f := range Table(kind) {
		if !resolve(raw, f.Source).Truthy() {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

func resolve(raw metadata.Value, source string) metadata.Value {
	if source == SourceMonth {
		month := raw.DateParts("issued").Month
		if month == "" {
			return metadata.Value{}
		}
		return metadata.FromAny(month)
	}
	return raw.Path(source)
}

// BibTeX returns the common fields followed by the kind fields, with BibTeX
// page ranges. Values are not yet escaped; empty values are included.
func (r Record) BibTeX() []Entry {
	entries := []Entry{
		{"author", reference.FormatBibTeXNames(r.Authors)},
		{"title", r.Title},
		{"year", r.Year},
		{"doi", r.DOI},
		{"type", r.Label},
	}
	for _, e := range r.values {
		if e.Name == "pages" {
			e.Value = BibTeXPages(e.Value)
		}
		entries = append(entries, e)
	}
	return entries
}

// Document returns the value of a kind field as shown in the rendered note:
// HTML-unescaped, with single-hyphen page ranges.
func (r Record) Document(name string) string {
	v, _ := r.Value(name)
	v = html.UnescapeString(v)
	if name == "pages" {
		v = DocumentPages(v)
	}
	return v
}

// BibTeXPages rewrites "12-34" to "12--34" unless a double hyphen is already
// present.
func BibTeXPages(pages string) string {
	if strings.Contains(pages, "--") {
		return pages
	}
	return strings.ReplaceAll(pages, "-", "--")
}

// DocumentPages rewrites "12--34" to "12-34".
func DocumentPages(pages string) string {
	return strings.ReplaceAll(pages, "--", "-")
}
