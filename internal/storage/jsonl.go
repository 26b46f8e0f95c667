// Package storage files notes and PDFs into the vault and keeps the import
// history in JSONL with a SQLite index.
package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/litnote/litnote/internal/reference"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// NoteRecord is one created note as recorded in the history.
type NoteRecord struct {
	Alias      string         `json:"alias"`
	DOI        string         `json:"doi"`
	Title      string         `json:"title"`
	Kind       reference.Kind `json:"kind"`
	Label      string         `json:"label"`
	Year       string         `json:"year,omitempty"`
	Authors    []string       `json:"authors,omitempty"`
	Journal    string         `json:"journal,omitempty"`
	Quartile   string         `json:"quartile,omitempty"`
	NotePath   string         `json:"note_path"`
	PDFPath    string         `json:"pdf_path,omitempty"`
	ImportedAt time.Time      `json:"imported_at"`
	Missing    []string       `json:"missing,omitempty"`
	BibTeX     string         `json:"bibtex"`
}

// ReadHistory reads all records from a JSONL file. A missing file is empty.
func ReadHistory(path string) ([]NoteRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	var records []NoteRecord
	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec NoteRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	return records, nil
}

// AppendHistory adds a record to the end of a JSONL file, creating it and its
// directory if needed.
func AppendHistory(path string, rec NoteRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening history file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding note record: %w", err)
	}
	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing note record: %w", err)
	}

	return nil
}

// FindByAlias returns the most recent record with the given alias.
func FindByAlias(records []NoteRecord, alias string) (NoteRecord, bool) {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Alias == alias {
			return records[i], true
		}
	}
	return NoteRecord{}, false
}
