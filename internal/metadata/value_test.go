package metadata

import (
	"testing"
)

func TestParse_KeepsNumberText(t *testing.T) {
	v, err := Parse([]byte(`{"volume": 12, "page": "12-34", "score": 12.0, "flag": true, "nothing": null}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		key      string
		wantKind Kind
		wantText string
	}{
		{"volume", Number, "12"},
		{"page", String, "12-34"},
		{"score", Number, "12.0"},
		{"flag", Bool, "true"},
		{"nothing", Null, ""},
		{"missing", Absent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := v.Get(tt.key)
			if got.Kind() != tt.wantKind {
				t.Errorf("Get(%q).Kind() = %v, want %v", tt.key, got.Kind(), tt.wantKind)
			}
			if got.Text() != tt.wantText {
				t.Errorf("Get(%q).Text() = %q, want %q", tt.key, got.Text(), tt.wantText)
			}
		})
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"title": `)); err == nil {
		t.Error("Parse() expected error for truncated JSON")
	}
}

func TestAccessors_WrongShapeIsAbsent(t *testing.T) {
	v := FromAny(map[string]any{
		"title":  "A Title",
		"ISSN":   []any{"1234-5678", "8765-4321"},
		"author": "not a list",
	})

	if got := v.Get("title").Get("nested"); got.Kind() != Absent {
		t.Errorf("Get on string = %v, want absent", got.Kind())
	}
	if got := v.Get("author").Index(0); got.Kind() != Absent {
		t.Errorf("Index on string = %v, want absent", got.Kind())
	}
	if got := v.Get("ISSN").Index(5); got.Kind() != Absent {
		t.Errorf("Index out of range = %v, want absent", got.Kind())
	}
	if got := v.Get("ISSN").First().Text(); got != "1234-5678" {
		t.Errorf("First() = %q, want 1234-5678", got)
	}
	if got := v.Get("title").First().Text(); got != "A Title" {
		t.Errorf("First() on scalar = %q, want A Title", got)
	}
	if got := FromAny([]any{}).First(); got.Kind() != Absent {
		t.Errorf("First() on empty list = %v, want absent", got.Kind())
	}
	if got := FromAny(struct{}{}); got.Kind() != Absent {
		t.Errorf("FromAny(unsupported) = %v, want absent", got.Kind())
	}
}

func TestPath(t *testing.T) {
	v := FromAny(map[string]any{
		"event":      map[string]any{"name": "ICML"},
		"odd.key":    "literal wins",
		"odd":        map[string]any{"key": "nested loses"},
		"collection": "flat",
	})

	tests := []struct {
		path string
		want string
		kind Kind
	}{
		{"event.name", "ICML", String},
		{"odd.key", "literal wins", String},
		{"collection", "flat", String},
		{"collection.title", "", Absent},
		{"event.location", "", Absent},
		{"nope", "", Absent},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := v.Path(tt.path)
			if got.Kind() != tt.kind || got.Text() != tt.want {
				t.Errorf("Path(%q) = (%v, %q), want (%v, %q)", tt.path, got.Kind(), got.Text(), tt.kind, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"absent", Value{}, false},
		{"null", FromAny(nil), false},
		{"empty string", FromAny(""), false},
		{"string", FromAny("x"), true},
		{"zero", FromAny(0), false},
		{"zero float", FromAny(0.0), false},
		{"number", FromAny(7), true},
		{"false", FromAny(false), false},
		{"true", FromAny(true), true},
		{"empty list", FromAny([]any{}), false},
		{"list", FromAny([]any{""}), true},
		{"empty map", FromAny(map[string]any{}), false},
		{"map", FromAny(map[string]any{"a": 1}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateParts(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantYear  string
		wantMonth string
	}{
		{"year and month", `{"issued": {"date-parts": [[2023, 4, 1]]}}`, "2023", "4"},
		{"year only", `{"issued": {"date-parts": [[2021]]}}`, "2021", ""},
		{"float year", `{"issued": {"date-parts": [[2020.0, 2]]}}`, "2020", "2"},
		{"string parts", `{"issued": {"date-parts": [["2019", "11"]]}}`, "2019", "11"},
		{"null year", `{"issued": {"date-parts": [[null]]}}`, "", ""},
		{"empty parts", `{"issued": {"date-parts": []}}`, "", ""},
		{"no issued", `{}`, "", ""},
		{"wrong shape", `{"issued": "2020"}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.json))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got := v.DateParts("issued")
			if got.Year != tt.wantYear || got.Month != tt.wantMonth {
				t.Errorf("DateParts() = %+v, want year=%q month=%q", got, tt.wantYear, tt.wantMonth)
			}
		})
	}
}
