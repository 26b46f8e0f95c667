package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultCommand downloads a PDF with PyPaperBot. {doi} and {dir} are
// substituted per argument.
var DefaultCommand = []string{"python3", "-m", "PyPaperBot", "--doi", "{doi}", "--dwn-dir", "{dir}"}

// DefaultFetchTimeout bounds one run of the download tool.
const DefaultFetchTimeout = 5 * time.Minute

// Fetcher runs an external download tool for a DOI.
type Fetcher struct {
	Command []string
	Timeout time.Duration
	// Output receives the tool's stdout and stderr; nil discards them.
	Output io.Writer
}

// NewFetcher returns a Fetcher for command, or DefaultCommand when command is
// empty.
func NewFetcher(command []string) *Fetcher {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &Fetcher{Command: command, Timeout: DefaultFetchTimeout}
}

// ParseCommand splits a configured command line on whitespace.
func ParseCommand(s string) []string {
	return strings.Fields(s)
}

// Fetch runs the tool in a scratch subdirectory of dir, moves the newest PDF
// it produced into dir and removes the scratch directory. It returns the
// moved file's path, or "" when the tool produced no PDF.
func (f *Fetcher) Fetch(ctx context.Context, doi, dir string) (string, error) {
	if len(f.Command) == 0 {
		return "", errors.New("no fetch command configured")
	}

	work := filepath.Join(dir, "temp_"+strings.ReplaceAll(doi, "/", "_"))
	if err := os.MkdirAll(work, 0755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}
	defer os.RemoveAll(work)

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	args := make([]string, len(f.Command))
	for i, a := range f.Command {
		a = strings.ReplaceAll(a, "{doi}", doi)
		args[i] = strings.ReplaceAll(a, "{dir}", work)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = f.Output
	cmd.Stderr = f.Output
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s: %w", args[0], err)
	}

	newest, err := newestPDF(work)
	if err != nil || newest == "" {
		return "", err
	}

	final := filepath.Join(dir, filepath.Base(newest))
	if err := os.Rename(newest, final); err != nil {
		return "", fmt.Errorf("moving downloaded PDF: %w", err)
	}
	return final, nil
}

func newestPDF(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return "", err
	}

	var newest string
	var newestTime time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest, newestTime = m, info.ModTime()
		}
	}
	return newest, nil
}
