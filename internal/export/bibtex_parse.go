package export

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/litnote/litnote/internal/reference"
)

var (
	entryStartRegex = regexp.MustCompile(`@\w+\{([^,\s}]+)`)
	doiFieldRegex   = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// BibIndex records the citation keys and DOIs already present in a .bib file.
type BibIndex struct {
	Keys map[string]bool
	DOIs map[string]string
}

// NewBibIndex creates an empty index.
func NewBibIndex() *BibIndex {
	return &BibIndex{
		Keys: make(map[string]bool),
		DOIs: make(map[string]string),
	}
}

// Has reports whether an entry with this DOI, or failing that this key, is
// already present.
func (idx *BibIndex) Has(key, doi string) bool {
	if doi != "" {
		if _, ok := idx.DOIs[NormalizeDOI(doi)]; ok {
			return true
		}
	}
	return idx.Keys[key]
}

// Add records an entry.
func (idx *BibIndex) Add(key, doi string) {
	idx.Keys[key] = true
	if doi = NormalizeDOI(doi); doi != "" {
		idx.DOIs[doi] = key
	}
}

// IndexBibFile scans an existing .bib file. A missing file yields an empty
// index.
func IndexBibFile(path string) (*BibIndex, error) {
	idx := NewBibIndex()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var key string
	for scanner.Scan() {
		line := scanner.Text()
		if m := entryStartRegex.FindStringSubmatch(line); len(m) > 1 {
			key = strings.TrimSpace(m[1])
			idx.Keys[key] = true
		}
		if m := doiFieldRegex.FindStringSubmatch(line); len(m) > 1 && key != "" {
			if doi := NormalizeDOI(m[1]); doi != "" {
				idx.DOIs[doi] = key
			}
		}
	}

	return idx, scanner.Err()
}

// NormalizeDOI strips resolver prefixes and lowercases a DOI for comparison.
func NormalizeDOI(doi string) string {
	return strings.ToLower(reference.CleanDOI(doi))
}

// AppendToBibFile appends content to path, creating it if needed.
func AppendToBibFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString("\n" + content)
	return err
}
