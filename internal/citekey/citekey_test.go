package citekey

import (
	"testing"

	"github.com/litnote/litnote/internal/reference"
)

func TestBuild(t *testing.T) {
	smith := reference.Person{Given: "Jane", Family: "Smith"}
	editor := reference.Person{Given: "Mary", Family: "Major"}

	tests := []struct {
		name             string
		authors          []reference.Person
		editors          []reference.Person
		editorsAsAuthors bool
		year             string
		want             string
	}{
		{"family and year", []reference.Person{smith}, nil, false, "2023", "Smith2023"},
		{"no person", nil, nil, false, "2021", "Unknown2021"},
		{"no year", []reference.Person{smith}, nil, false, "", "Smith"},
		{"nothing at all", nil, nil, false, "", "Unknown"},
		{"spaces become underscores", []reference.Person{{Given: "Ludwig", Family: "van  Beethoven"}}, nil, false, "1800", "van__Beethoven1800"},
		{"single space", []reference.Person{{Given: "Jan", Family: "van der Berg"}}, nil, false, "2001", "van_der_Berg2001"},
		{"surrounding space trimmed", []reference.Person{{Family: " de la Cruz "}}, nil, false, "1999", "de_la_Cruz1999"},
		{"bare string uses last token", []reference.Person{{Literal: "Ada King Lovelace"}}, nil, false, "1843", "Lovelace1843"},
		{"skips invalid leading entry", []reference.Person{{Given: " "}, smith}, nil, false, "2020", "Smith2020"},
		{"editor fallback", nil, []reference.Person{editor}, true, "2019", "Major2019"},
		{"editor ignored without fallback", nil, []reference.Person{editor}, false, "2019", "Unknown2019"},
		{"author beats editor", []reference.Person{smith}, []reference.Person{editor}, true, "2019", "Smith2019"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.authors, tt.editors, tt.editorsAsAuthors, tt.year)
			if got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_Stable(t *testing.T) {
	authors := []reference.Person{{Given: "Jane", Family: "Smith"}}
	if Build(authors, nil, false, "2023") != Build(authors, nil, false, "2023") {
		t.Error("Build() is not deterministic")
	}
}
