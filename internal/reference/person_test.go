package reference

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/litnote/litnote/internal/metadata"
)

func TestPerson_Display(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   string
		wantOK bool
	}{
		{"structured", map[string]any{"given": "Jane", "family": "Smith"}, "Jane Smith", true},
		{"trims parts", map[string]any{"given": "  Jane ", "family": " Smith  "}, "Jane Smith", true},
		{"family only", map[string]any{"family": "Smith"}, "Smith", true},
		{"given only", map[string]any{"given": "Plato"}, "Plato", true},
		{"blank parts", map[string]any{"given": "  ", "family": ""}, "", false},
		{"null parts", map[string]any{"given": nil, "family": nil}, "", false},
		{"bare string", "  World Health Organization ", "World Health Organization", true},
		{"blank string", "   ", "", false},
		{"literal key", map[string]any{"literal": "CERN Collaboration"}, "CERN Collaboration", true},
		{"name key", map[string]any{"name": "ATLAS Collaboration"}, "ATLAS Collaboration", true},
		{"number", 42, "", false},
		{"list", []any{"Jane"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePerson(metadata.FromAny(tt.input)).Display()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Display() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSanitizePeople_DropsInvalid(t *testing.T) {
	v := metadata.FromAny([]any{
		map[string]any{"given": "Jane", "family": "Smith"},
		map[string]any{"given": " ", "family": " "},
		nil,
		"",
		"Ada Lovelace",
		map[string]any{"family": "Doe"},
	})

	got := SanitizePeople(v)
	want := []Person{
		{Given: "Jane", Family: "Smith"},
		{Literal: "Ada Lovelace"},
		{Family: "Doe"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SanitizePeople() mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizePeople_Shapes(t *testing.T) {
	if got := SanitizePeople(metadata.Value{}); len(got) != 0 {
		t.Errorf("SanitizePeople(absent) = %v, want empty", got)
	}
	if got := SanitizePeople(metadata.FromAny(7)); len(got) != 0 {
		t.Errorf("SanitizePeople(number) = %v, want empty", got)
	}
	single := SanitizePeople(metadata.FromAny(map[string]any{"given": "Jane", "family": "Smith"}))
	if len(single) != 1 || single[0].Family != "Smith" {
		t.Errorf("SanitizePeople(object) = %v, want one person", single)
	}
}

func TestPerson_BibTeXName(t *testing.T) {
	tests := []struct {
		p    Person
		want string
	}{
		{Person{Given: "Jane", Family: "Smith"}, "Smith, Jane"},
		{Person{Family: "Smith"}, "Smith"},
		{Person{Given: "Plato"}, "Plato"},
		{Person{Literal: "WHO"}, "WHO"},
	}
	for _, tt := range tests {
		if got := tt.p.BibTeXName(); got != tt.want {
			t.Errorf("BibTeXName(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}

	people := []Person{{Given: "John", Family: "Smith"}, {Given: "Jane", Family: "Doe"}}
	if got := FormatBibTeXNames(people); got != "Smith, John and Doe, Jane" {
		t.Errorf("FormatBibTeXNames() = %q", got)
	}
}

func TestPerson_Surname(t *testing.T) {
	tests := []struct {
		p    Person
		want string
	}{
		{Person{Given: "Ludwig", Family: "van Beethoven"}, "van Beethoven"},
		{Person{Literal: "Ada King Lovelace"}, "Lovelace"},
		{Person{Given: "Jean Paul"}, "Paul"},
		{Person{}, ""},
	}
	for _, tt := range tests {
		if got := tt.p.Surname(); got != tt.want {
			t.Errorf("Surname(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = (%v, %v), want %v", k.String(), got, err, k)
		}
	}
	if got, err := ParseKind(" Journal "); err != nil || got != Journal {
		t.Errorf("ParseKind(\" Journal \") = (%v, %v)", got, err)
	}
	if _, err := ParseKind("thesis"); err == nil {
		t.Error("ParseKind(\"thesis\") expected error")
	}
}

func TestKind_Tables(t *testing.T) {
	tests := []struct {
		k         Kind
		label     string
		bibtex    string
		template  string
		editorsAs bool
	}{
		{Conference, "Conference Proceedings", "inproceedings", "conference_template.md", false},
		{Journal, "Journal Article", "article", "journal_template.md", false},
		{Book, "Book", "book", "book_template.md", true},
		{Chapter, "Book Chapter", "inbook", "chapter_template.md", false},
		{Misc, "Misc", "misc", "misc_template.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.k.String(), func(t *testing.T) {
			if got := tt.k.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.k.BibTeXType(); got != tt.bibtex {
				t.Errorf("BibTeXType() = %q, want %q", got, tt.bibtex)
			}
			if got := tt.k.TemplateFile(); got != tt.template {
				t.Errorf("TemplateFile() = %q, want %q", got, tt.template)
			}
			if got := tt.k.EditorsAsAuthors(); got != tt.editorsAs {
				t.Errorf("EditorsAsAuthors() = %v, want %v", got, tt.editorsAs)
			}
		})
	}
}
