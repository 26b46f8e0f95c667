// Package classify assigns a document kind to raw metadata.
package classify

import (
	"strings"

	"github.com/litnote/litnote/internal/metadata"
	"github.com/litnote/litnote/internal/reference"
)

// Raw type tokens per kind. CSL names come first, Crossref's native names after.
var (
	conferenceTypes = map[string]bool{"paper-conference": true, "proceedings-article": true, "proceedings": true}
	chapterTypes    = map[string]bool{"book-chapter": true, "chapter": true}
	bookTypes       = map[string]bool{"book": true, "monograph": true, "edited-book": true, "reference-book": true}
	journalTypes    = map[string]bool{"journal-article": true, "article-journal": true}
)

// Classification is the outcome of classifying a record.
type Classification struct {
	Kind  reference.Kind
	Label string
	// RawType is the upstream type token, kept for diagnostics.
	RawType string
}

// Classify picks the document kind for raw. A non-nil override skips every
// heuristic and also replaces the label. Classification never fails; unknown
// tokens fall through to Misc.
func Classify(raw metadata.Value, override *reference.Kind) Classification {
	rawType := strings.TrimSpace(raw.Get("type").Text())

	if override != nil {
		return Classification{Kind: *override, Label: override.Label(), RawType: rawType}
	}

	kind := kindOf(rawType, raw.Get("container-title").First().Text())
	label := kind.Label()
	if kind == reference.Misc && rawType != "" {
		label = rawType
	}
	return Classification{Kind: kind, Label: label, RawType: rawType}
}

func kindOf(rawType, containerTitle string) reference.Kind {
	token := strings.ToLower(rawType)
	container := strings.ToLower(containerTitle)

	switch {
	case conferenceTypes[token],
		strings.Contains(container, "conference"),
		strings.Contains(container, "proceedings"):
		return reference.Conference
	case chapterTypes[token]:
		return reference.Chapter
	case bookTypes[token]:
		return reference.Book
	case journalTypes[token]:
		return reference.Journal
	default:
		return reference.Misc
	}
}
