package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litnote/litnote/internal/reference"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		ph       []Placeholder
		want     string
	}{
		{
			name:     "simple",
			template: "# {{title}} ({{year}})",
			ph:       []Placeholder{{"title", "Genes"}, {"year", "2023"}},
			want:     "# Genes (2023)",
		},
		{
			name:     "repeated token",
			template: "{{alias}} and {{alias}}",
			ph:       []Placeholder{{"alias", "Smith2023"}},
			want:     "Smith2023 and Smith2023",
		},
		{
			name:     "unknown token kept",
			template: "{{title}} {{unknown}}",
			ph:       []Placeholder{{"title", "T"}},
			want:     "T {{unknown}}",
		},
		{
			name:     "value not rescanned",
			template: "{{title}}",
			ph:       []Placeholder{{"title", "{{year}}"}, {"year", "2023"}},
			want:     "{{year}}",
		},
		{
			name:     "no placeholders",
			template: "{{title}}",
			want:     "{{title}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.template, tt.ph); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_FromDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal_template.md")
	if err := os.WriteFile(path, []byte("custom {{title}}"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(dir, reference.Journal)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Text != "custom {{title}}" || got.Path != path || got.Fallback {
		t.Errorf("Load() = %+v", got)
	}
}

func TestLoad_FallsBackToDefault(t *testing.T) {
	got, err := Load(t.TempDir(), reference.Chapter)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Fallback {
		t.Error("Fallback = false, want true")
	}
	if !strings.Contains(got.Text, "{{chapter}}") {
		t.Errorf("default chapter template lacks {{chapter}}:\n%s", got.Text)
	}

	got, err = Load("", reference.Misc)
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if got.Fallback {
		t.Error("Load with no directory should not report a fallback")
	}
}

func TestDefaults_CoverPlaceholders(t *testing.T) {
	common := []string{"alias", "imported_date", "status", "author_list", "title", "year", "doi", "pdf_link", "bibtex", "abstract"}
	kindSpecific := map[reference.Kind][]string{
		reference.Conference: {"booktitle", "month", "volume", "number", "pages", "series", "editor_list", "publisher", "address", "organization"},
		reference.Journal:    {"journal", "volume", "number", "pages", "issn", "quartile", "h_index", "citations_per_doc", "sjr_publisher", "areas"},
		reference.Book:       {"booktitle", "publisher", "address", "isbn", "edition", "editor_list", "pages", "series"},
		reference.Chapter:    {"booktitle", "publisher", "address", "pages", "editor_list", "isbn", "series", "edition", "chapter"},
	}

	for _, k := range reference.Kinds {
		t.Run(k.String(), func(t *testing.T) {
			tmpl, err := Default(k)
			if err != nil {
				t.Fatalf("Default() error = %v", err)
			}
			for _, name := range append(common, kindSpecific[k]...) {
				if !strings.Contains(tmpl.Text, Token(name)) {
					t.Errorf("template lacks %s", Token(name))
				}
			}
		})
	}
}

func TestWriteDefaults(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "misc_template.md")
	if err := os.WriteFile(keep, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	written, err := WriteDefaults(dir)
	if err != nil {
		t.Fatalf("WriteDefaults() error = %v", err)
	}
	if len(written) != len(reference.Kinds)-1 {
		t.Errorf("wrote %d templates, want %d", len(written), len(reference.Kinds)-1)
	}
	data, _ := os.ReadFile(keep)
	if string(data) != "mine" {
		t.Errorf("existing template overwritten: %q", data)
	}
}
