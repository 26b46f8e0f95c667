package note

import "fmt"

// Level is the severity of a diagnostic.
type Level string

// Diagnostic levels.
const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Diagnostic codes.
const (
	CodeMissingFields     = "missing_fields"
	CodeUnmappedType      = "unmapped_type"
	CodeJournalNotFound   = "journal_not_found"
	CodeRankingMissing    = "ranking_unavailable"
	CodeTemplateFallback  = "template_fallback"
	CodeEditorsAsAuthors  = "editors_as_authors"
	CodeJournalFuzzyMatch = "journal_fuzzy_match"
)

// Diagnostic is a non-fatal observation made while building a note.
type Diagnostic struct {
	Level   Level  `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Level, d.Message)
}

func warnf(code, format string, args ...any) Diagnostic {
	return Diagnostic{Level: LevelWarning, Code: code, Message: fmt.Sprintf(format, args...)}
}

func infof(code, format string, args ...any) Diagnostic {
	return Diagnostic{Level: LevelInfo, Code: code, Message: fmt.Sprintf(format, args...)}
}
