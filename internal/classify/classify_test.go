package classify

import (
	"testing"

	"github.com/litnote/litnote/internal/metadata"
	"github.com/litnote/litnote/internal/reference"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		raw       map[string]any
		wantKind  reference.Kind
		wantLabel string
	}{
		{"paper-conference", map[string]any{"type": "paper-conference"}, reference.Conference, "Conference Proceedings"},
		{"proceedings-article", map[string]any{"type": "proceedings-article"}, reference.Conference, "Conference Proceedings"},
		{
			"journal in proceedings container",
			map[string]any{"type": "journal-article", "container-title": "Proceedings of the National Academy of Sciences"},
			reference.Conference, "Conference Proceedings",
		},
		{
			"container list mentions conference",
			map[string]any{"type": "book-chapter", "container-title": []any{"International CONFERENCE on Learning"}},
			reference.Conference, "Conference Proceedings",
		},
		{"chapter", map[string]any{"type": "book-chapter", "container-title": "Handbook of Things"}, reference.Chapter, "Book Chapter"},
		{"book", map[string]any{"type": "book"}, reference.Book, "Book"},
		{"monograph", map[string]any{"type": "monograph"}, reference.Book, "Book"},
		{"journal", map[string]any{"type": "journal-article", "container-title": []any{"Nature"}}, reference.Journal, "Journal Article"},
		{"unmapped keeps token", map[string]any{"type": "posted-content"}, reference.Misc, "posted-content"},
		{"no type", map[string]any{}, reference.Misc, "Misc"},
		{"non-string type", map[string]any{"type": []any{"book"}}, reference.Misc, "Misc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(metadata.FromAny(tt.raw), nil)
			if got.Kind != tt.wantKind {
				t.Errorf("Classify().Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Classify().Label = %q, want %q", got.Label, tt.wantLabel)
			}
		})
	}
}

func TestClassify_Override(t *testing.T) {
	raw := metadata.FromAny(map[string]any{"type": "paper-conference", "container-title": "Conference on X"})
	kind := reference.Book

	got := Classify(raw, &kind)
	if got.Kind != reference.Book {
		t.Errorf("Classify().Kind = %v, want book", got.Kind)
	}
	if got.Label != "Book" {
		t.Errorf("Classify().Label = %q, want Book", got.Label)
	}
	if got.RawType != "paper-conference" {
		t.Errorf("Classify().RawType = %q, want paper-conference", got.RawType)
	}

	misc := reference.Misc
	if got := Classify(raw, &misc); got.Label != "Misc" {
		t.Errorf("Classify(misc override).Label = %q, want Misc", got.Label)
	}
}
