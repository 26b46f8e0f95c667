package journal

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// FuzzyThreshold is the similarity a fuzzy match must strictly exceed.
// False negatives are preferred over attaching the wrong journal's metrics.
const FuzzyThreshold = 0.9

// Match methods.
const (
	MatchExact = "exact"
	MatchFuzzy = "fuzzy"
)

// Metrics are the ranking figures of a matched journal.
type Metrics struct {
	Title           string   `json:"title"`
	Quartile        string   `json:"quartile"`
	HIndex          string   `json:"h_index"`
	CitationsPerDoc string   `json:"citations_per_doc"`
	Publisher       string   `json:"publisher"`
	Areas           []string `json:"areas"`
	Method          string   `json:"method"`
	Ratio           float64  `json:"ratio"`
}

// Match looks name up, first by exact normalized title, then by the best
// similarity ratio above FuzzyThreshold. The first row wins ties.
func (t *Table) Match(name string) (Metrics, bool) {
	if t == nil {
		return Metrics{}, false
	}
	query := Normalize(name)
	if query == "" {
		return Metrics{}, false
	}

	for _, r := range t.rows {
		if r.norm == query {
			return r.metrics(MatchExact, 1.0), true
		}
	}

	best, bestRatio := -1, 0.0
	q := runes(query)
	for i, r := range t.rows {
		ratio := Similarity(q, runes(r.norm))
		if ratio > FuzzyThreshold && ratio > bestRatio {
			best, bestRatio = i, ratio
		}
	}
	if best < 0 {
		return Metrics{}, false
	}
	return t.rows[best].metrics(MatchFuzzy, bestRatio), true
}

func (r Row) metrics(method string, ratio float64) Metrics {
	return Metrics{
		Title:           r.Title,
		Quartile:        r.Quartile,
		HIndex:          r.HIndex,
		CitationsPerDoc: r.CitationsPerDoc,
		Publisher:       r.Publisher,
		Areas:           SplitAreas(r.Areas),
		Method:          method,
		Ratio:           ratio,
	}
}

// Similarity is the Ratcliff/Obershelp ratio 2*M/T of two rune sequences, in
// [0, 1].
func Similarity(a, b []string) float64 {
	return difflib.NewMatcher(a, b).Ratio()
}

// SimilarityString is Similarity over the runes of two strings.
func SimilarityString(a, b string) float64 {
	return Similarity(runes(a), runes(b))
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// SplitAreas splits a semicolon-delimited subject area list.
func SplitAreas(areas string) []string {
	var out []string
	for _, a := range strings.Split(areas, ";") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
