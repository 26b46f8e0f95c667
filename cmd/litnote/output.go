package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"

	"github.com/litnote/litnote/internal/note"
)

// ListTitleMaxLen bounds titles in list output.
const ListTitleMaxLen = 60

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg, Code: code})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"exit_code"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string   `json:"status"`
	Path   string   `json:"path,omitempty"`
	Paths  []string `json:"paths,omitempty"`
}

// logDiagnostics logs each diagnostic at its level.
func logDiagnostics(diags []note.Diagnostic) {
	for _, d := range diags {
		entry := log.WithField("code", d.Code)
		switch d.Level {
		case note.LevelWarning:
			entry.Warn(d.Message)
		default:
			entry.Info(d.Message)
		}
	}
}

// warn logs a degraded step and records it as a diagnostic.
func warn(diags *[]note.Diagnostic, code, format string, args ...any) {
	d := note.Diagnostic{Level: note.LevelWarning, Code: code, Message: fmt.Sprintf(format, args...)}
	log.WithFields(logrus.Fields{"code": code}).Warn(d.Message)
	*diags = append(*diags, d)
}

// truncateString shortens s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return strings.TrimSpace(string(r[:maxLen-3])) + "..."
}
