package note

import (
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/litnote/litnote/internal/fields"
	"github.com/litnote/litnote/internal/journal"
	"github.com/litnote/litnote/internal/reference"
	"github.com/litnote/litnote/internal/render"
)

// Note status values.
const (
	StatusImported = "Imported"
	StatusNoPDF    = "NoPDF"
)

// NoPDF is the pdf_link value when no PDF was stored.
const NoPDF = "PDF not available"

// NotFound fills journal metric placeholders without a ranking match.
const NotFound = "Not found"

func placeholders(rec fields.Record, alias, bib string, imported time.Time, pdfDir, pdfFile string) []render.Placeholder {
	status, link := StatusNoPDF, NoPDF
	if pdfFile != "" {
		status, link = StatusImported, filepath.Join(pdfDir, pdfFile)
	}

	ph := []render.Placeholder{
		{Name: "alias", Value: alias},
		{Name: "imported_date", Value: imported.Format(DateFormat)},
		{Name: "status", Value: status},
		{Name: "author_list", Value: PeopleList(rec.Authors)},
		{Name: "title", Value: html.UnescapeString(rec.Title)},
		{Name: "year", Value: rec.Year},
		{Name: "doi", Value: rec.DOI},
		{Name: "pdf_link", Value: link},
		{Name: "bibtex", Value: bib},
		{Name: "abstract", Value: fields.PlainAbstract(rec.Abstract)},
	}

	for _, f := range fields.Table(rec.Kind) {
		if f.Source == fields.SourceEditor {
			ph = append(ph, render.Placeholder{Name: "editor_list", Value: PeopleList(rec.Editors)})
			continue
		}
		ph = append(ph, render.Placeholder{Name: f.Name, Value: rec.Document(f.Name)})
	}
	return ph
}

func journalPlaceholders(m *journal.Metrics) []render.Placeholder {
	if m == nil {
		return []render.Placeholder{
			{Name: "quartile", Value: NotFound},
			{Name: "h_index", Value: NotFound},
			{Name: "citations_per_doc", Value: NotFound},
			{Name: "sjr_publisher", Value: NotFound},
			{Name: "areas", Value: NotFound},
		}
	}
	return []render.Placeholder{
		{Name: "quartile", Value: orNotFound(m.Quartile)},
		{Name: "h_index", Value: orNotFound(m.HIndex)},
		{Name: "citations_per_doc", Value: orNotFound(m.CitationsPerDoc)},
		{Name: "sjr_publisher", Value: orNotFound(m.Publisher)},
		{Name: "areas", Value: orNotFound(BulletList(m.Areas))},
	}
}

func orNotFound(s string) string {
	if s == "" {
		return NotFound
	}
	return s
}

// PeopleList renders one `  - "Name"` YAML list line per person.
func PeopleList(people []reference.Person) string {
	var lines []string
	for _, p := range people {
		if name, ok := p.Display(); ok {
			lines = append(lines, `  - "`+name+`"`)
		}
	}
	return strings.Join(lines, "\n")
}

// BulletList renders items as a Markdown bullet list.
func BulletList(items []string) string {
	var lines []string
	for _, it := range items {
		lines = append(lines, "- "+it)
	}
	return strings.Join(lines, "\n")
}
