package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/jinzhu/now"
)

// CleanTitle keeps letters, digits and spaces of title and turns the spaces
// into underscores.
func CleanTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('_')
		}
	}
	return b.String()
}

// FileStem is the shared stem of a note and its PDF.
func FileStem(alias, title string) string {
	return alias + "_" + CleanTitle(title)
}

// Quarter returns the "Qn" label of t's calendar quarter.
func Quarter(t time.Time) string {
	start := now.With(t).BeginningOfQuarter()
	return fmt.Sprintf("Q%d", (int(start.Month())-1)/3+1)
}

// NotePath returns root/YYYY/Qn/<alias>_<title>.md for a note filed at t.
func NotePath(root, alias, title string, t time.Time) string {
	return filepath.Join(root, fmt.Sprintf("%04d", t.Year()), Quarter(t), FileStem(alias, title)+".md")
}

// WriteNote writes content to path, creating parent directories. Doubly
// escaped ampersands left by entity unescaping are repaired first.
func WriteNote(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating note directory: %w", err)
	}
	content = strings.ReplaceAll(content, `\&amp;`, `\&`)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing note: %w", err)
	}
	return nil
}

// CopyPDF copies src into dir as <alias>_<title>.pdf and returns the new
// file name.
func CopyPDF(src, dir, alias, title string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating PDF directory: %w", err)
	}

	name := FileStem(alias, title) + ".pdf"
	dst := filepath.Join(dir, name)

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("creating PDF copy: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("copying PDF: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing PDF copy: %w", err)
	}
	return name, nil
}
