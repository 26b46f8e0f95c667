package journal

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

// Column headers of the ranking table that the matcher reads.
const (
	ColTitle     = "Title"
	ColQuartile  = "SJR Best Quartile"
	ColHIndex    = "H index"
	ColCitations = "Citations / Doc. (2years)"
	ColPublisher = "Publisher"
	ColAreas     = "Areas"
)

var requiredColumns = []string{ColTitle, ColQuartile, ColHIndex, ColCitations, ColPublisher, ColAreas}

// ErrMissingColumn is returned when the table header lacks a required column.
var ErrMissingColumn = errors.New("ranking table is missing a required column")

// Row is one journal of the ranking table.
type Row struct {
	Title           string
	Quartile        string
	HIndex          string
	CitationsPerDoc string
	Publisher       string
	Areas           string // semicolon-delimited

	norm string
}

// Table is a read-only ranking table. Rows keep file order, which decides ties.
type Table struct {
	rows []Row
}

// NewTable builds a table from rows, normalizing every title once.
func NewTable(rows []Row) *Table {
	t := &Table{rows: make([]Row, len(rows))}
	for i, r := range rows {
		r.norm = Normalize(r.Title)
		t.rows[i] = r
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// LoadFile reads a ranking table from disk. Files ending in .gz or .zst are
// decompressed transparently.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ranking table: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip ranking table: %w", err)
		}
		defer gz.Close()
		r = gz
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening zstd ranking table: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	t, err := Load(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load parses a CSV ranking table. SCImago exports use ";" as delimiter;
// plain "," files are accepted as well, chosen by looking at the header.
func Load(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("reading ranking table: %w", err)
	}

	cr := csv.NewReader(br)
	cr.Comma = detectDelimiter(header)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	cols, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading ranking table header: %w", err)
	}
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ranking table line %d: %w", line, err)
		}
		get := func(col string) string {
			i := idx[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		rows = append(rows, Row{
			Title:           get(ColTitle),
			Quartile:        get(ColQuartile),
			HIndex:          get(ColHIndex),
			CitationsPerDoc: get(ColCitations),
			Publisher:       get(ColPublisher),
			Areas:           get(ColAreas),
		})
	}

	return NewTable(rows), nil
}

func detectDelimiter(head []byte) rune {
	line := string(head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
