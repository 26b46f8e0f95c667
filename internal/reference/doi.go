package reference

import (
	"regexp"
	"strings"
)

var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

var resolverPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi.org/",
	"DOI:",
	"doi:",
}

// CleanDOI strips whitespace and resolver prefixes from a DOI, keeping its
// case.
func CleanDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, p := range resolverPrefixes {
		if len(doi) >= len(p) && strings.EqualFold(doi[:len(p)], p) {
			doi = doi[len(p):]
			break
		}
	}
	return strings.TrimSpace(doi)
}

// ValidDOI reports whether doi looks like a DOI after cleaning.
func ValidDOI(doi string) bool {
	return doiPattern.MatchString(CleanDOI(doi))
}
