// Package note turns one raw metadata record into a rendered note and its
// BibTeX entry.
package note

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/litnote/litnote/internal/citekey"
	"github.com/litnote/litnote/internal/classify"
	"github.com/litnote/litnote/internal/export"
	"github.com/litnote/litnote/internal/fields"
	"github.com/litnote/litnote/internal/journal"
	"github.com/litnote/litnote/internal/metadata"
	"github.com/litnote/litnote/internal/reference"
	"github.com/litnote/litnote/internal/render"
)

// ErrNoMetadata is returned when the raw record is absent or null.
var ErrNoMetadata = errors.New("no metadata available")

// DateFormat is the layout of the imported_date placeholder.
const DateFormat = "2006-01-02"

// Options configure one Process call.
type Options struct {
	// Force overrides classification when non-nil.
	Force *reference.Kind
	// PDFFile is the file name of the stored PDF, "" when there is none.
	PDFFile string
	PDFDir  string
	// ImportedDate defaults to the current day.
	ImportedDate time.Time
	// Ranking may be nil; journal metrics then render as not found.
	Ranking *journal.Table
	// RankingErr is why Ranking could not be loaded, if it was configured.
	RankingErr  error
	TemplateDir string
}

// Result is everything Process derived from a record.
type Result struct {
	Kind    reference.Kind   `json:"kind"`
	Label   string           `json:"label"`
	Alias   string           `json:"alias"`
	Title   string           `json:"title"`
	DOI     string           `json:"doi"`
	Year    string           `json:"year"`
	Authors []string         `json:"authors,omitempty"`
	Fields  []fields.Entry   `json:"-"`
	Missing []string         `json:"missing,omitempty"`
	Journal *journal.Metrics `json:"journal,omitempty"`
	// Template is the template file used, "" for the built-in default.
	Template    string       `json:"template,omitempty"`
	BibTeX      string       `json:"bibtex"`
	Document    string       `json:"-"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// IsNoMetadata reports whether err means there was no record to process.
func IsNoMetadata(err error) bool {
	return errors.Is(err, ErrNoMetadata)
}

// Process classifies raw, maps its fields, looks up journal metrics, builds
// the citation key and BibTeX entry, and renders the note. Missing data only
// produces diagnostics; the error return is reserved for an absent record and
// an unreadable template.
func Process(raw metadata.Value, opts Options) (Result, error) {
	if !raw.IsPresent() {
		return Result{}, ErrNoMetadata
	}

	var diags []Diagnostic

	c := classify.Classify(raw, opts.Force)
	if opts.Force == nil && c.Kind == reference.Misc && c.RawType != "" {
		diags = append(diags, infof(CodeUnmappedType, "type %q has no specific template, using misc", c.RawType))
	}

	rec := fields.Map(raw, c)
	if rec.EditorsPromoted {
		diags = append(diags, infof(CodeEditorsAsAuthors, "no authors listed, using editors as authors"))
	}

	missing := fields.Missing(raw, c.Kind)
	if len(missing) > 0 {
		diags = append(diags, warnf(CodeMissingFields, "Missing fields for: %s", strings.Join(missing, ", ")))
	}

	var metrics *journal.Metrics
	if c.Kind == reference.Journal {
		name := rec.Document("journal")
		switch {
		case opts.RankingErr != nil:
			diags = append(diags, warnf(CodeRankingMissing, "journal ranking table unavailable: %v", opts.RankingErr))
		case opts.Ranking == nil:
			diags = append(diags, warnf(CodeRankingMissing, "no journal ranking table loaded"))
		default:
			if m, ok := opts.Ranking.Match(name); ok {
				metrics = &m
				if m.Method == journal.MatchFuzzy {
					diags = append(diags, infof(CodeJournalFuzzyMatch, "journal %q matched %q (ratio %.3f)", name, m.Title, m.Ratio))
				}
			} else {
				diags = append(diags, warnf(CodeJournalNotFound, "journal %q not found in ranking table", name))
			}
		}
	}

	alias := citekey.Build(rec.Authors, rec.Editors, c.Kind.EditorsAsAuthors(), rec.Year)
	bib := export.ToBibTeX(c.Kind.BibTeXType(), alias, rec.BibTeX())

	tmpl, err := render.Load(opts.TemplateDir, c.Kind)
	if err != nil {
		return Result{}, fmt.Errorf("loading template: %w", err)
	}
	if tmpl.Fallback {
		diags = append(diags, warnf(CodeTemplateFallback, "template %s not found in %s, using built-in default", c.Kind.TemplateFile(), opts.TemplateDir))
	}

	imported := opts.ImportedDate
	if imported.IsZero() {
		imported = time.Now()
	}

	ph := placeholders(rec, alias, bib, imported, opts.PDFDir, opts.PDFFile)
	if c.Kind == reference.Journal {
		ph = append(ph, journalPlaceholders(metrics)...)
	}

	return Result{
		Kind:        c.Kind,
		Label:       c.Label,
		Alias:       alias,
		Title:       html.UnescapeString(rec.Title),
		DOI:         rec.DOI,
		Year:        rec.Year,
		Authors:     displayNames(rec.Authors),
		Fields:      rec.Values(),
		Missing:     missing,
		Journal:     metrics,
		Template:    tmpl.Path,
		BibTeX:      bib,
		Document:    render.Render(tmpl.Text, ph),
		Diagnostics: diags,
	}, nil
}

// Identify returns the citation key and title Process would derive for raw,
// without rendering anything. Callers use it to name files before the note
// exists.
func Identify(raw metadata.Value, force *reference.Kind) (alias, title string) {
	c := classify.Classify(raw, force)
	rec := fields.Map(raw, c)
	return citekey.Build(rec.Authors, rec.Editors, c.Kind.EditorsAsAuthors(), rec.Year), html.UnescapeString(rec.Title)
}

func displayNames(people []reference.Person) []string {
	var out []string
	for _, p := range people {
		if name, ok := p.Display(); ok {
			out = append(out, name)
		}
	}
	return out
}
