package reference

import "testing"

func TestCleanDOI(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"10.1234/ABC.def", "10.1234/ABC.def", true},
		{" https://doi.org/10.1000/xyz ", "10.1000/xyz", true},
		{"HTTPS://DX.DOI.ORG/10.1000/xyz", "10.1000/xyz", true},
		{"doi:10.1000/xyz", "10.1000/xyz", true},
		{"not a doi", "not a doi", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanDOI(tt.in); got != tt.want {
				t.Errorf("CleanDOI(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if got := ValidDOI(tt.in); got != tt.valid {
				t.Errorf("ValidDOI(%q) = %v, want %v", tt.in, got, tt.valid)
			}
		})
	}
}
