package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/segmentio/encoding/json"
	_ "modernc.org/sqlite"

	"github.com/litnote/litnote/internal/reference"
)

// DB is the SQLite index over the note history.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS notes (
			seq INTEGER PRIMARY KEY,
			alias TEXT NOT NULL,
			doi TEXT,
			kind TEXT NOT NULL,
			year TEXT,
			journal TEXT,
			imported_at TEXT NOT NULL,
			record_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notes_kind ON notes(kind);
		CREATE INDEX IF NOT EXISTS idx_notes_doi ON notes(doi) WHERE doi IS NOT NULL AND doi != '';

		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			alias,
			title,
			authors_text,
			journal
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the index and reloads it from the history file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	records, err := ReadHistory(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM notes"); err != nil {
		return 0, fmt.Errorf("clearing notes table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM notes_fts"); err != nil {
		return 0, fmt.Errorf("clearing notes_fts table: %w", err)
	}

	notesStmt, err := tx.Prepare(`
		INSERT INTO notes (seq, alias, doi, kind, year, journal, imported_at, record_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing notes insert: %w", err)
	}
	defer notesStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO notes_fts (rowid, alias, title, authors_text, journal)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("encoding record %s: %w", rec.Alias, err)
		}
		_, err = notesStmt.Exec(
			i+1, rec.Alias, nullableStringValue(rec.DOI), rec.Kind.String(),
			nullableStringValue(rec.Year), nullableStringValue(rec.Journal),
			rec.ImportedAt.UTC().Format("2006-01-02T15:04:05Z"), string(data),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting note %s: %w", rec.Alias, err)
		}
		_, err = ftsStmt.Exec(i+1, rec.Alias, rec.Title, strings.Join(rec.Authors, ", "), rec.Journal)
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", rec.Alias, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(records), nil
}

// ListFilters narrows List. Zero values mean no filter.
type ListFilters struct {
	Kind  *reference.Kind
	Query string // full-text over alias, title, authors and journal
	Year  string
	Limit int
}

// List returns matching notes, most recently imported first.
func (d *DB) List(f ListFilters) ([]NoteRecord, error) {
	query := `SELECT record_json FROM notes WHERE 1=1`
	var args []any

	if q := prepareFTSQuery(f.Query); q != "" {
		query += ` AND seq IN (SELECT rowid FROM notes_fts WHERE notes_fts MATCH ?)`
		args = append(args, q)
	}
	if f.Kind != nil {
		query += ` AND kind = ?`
		args = append(args, f.Kind.String())
	}
	if f.Year != "" {
		query += ` AND year = ?`
		args = append(args, f.Year)
	}
	query += ` ORDER BY seq DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var records []NoteRecord
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var rec NoteRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("parsing stored note: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountByKind returns the number of notes per kind.
func (d *DB) CountByKind() (map[reference.Kind]int, error) {
	rows, err := d.db.Query(`SELECT kind, COUNT(*) FROM notes GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("counting notes: %w", err)
	}
	defer rows.Close()

	counts := make(map[reference.Kind]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		kind, err := reference.ParseKind(name)
		if err != nil {
			return nil, err
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// Count returns the total number of notes.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count)
	return count, err
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.&/") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}
	return query
}
