// Package config resolves litnote's settings from the config file, the legacy
// directories.txt, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Config holds the resolved settings.
type Config struct {
	MarkdownDir  string `yaml:"markdown_dir,omitempty" json:"markdown_dir"`
	PDFDir       string `yaml:"pdf_dir,omitempty" json:"pdf_dir"`
	TemplateDir  string `yaml:"template_dir,omitempty" json:"template_dir"`
	RankingTable string `yaml:"ranking_table,omitempty" json:"ranking_table"`
	Mailto       string `yaml:"mailto,omitempty" json:"mailto"`
	FetchCommand string `yaml:"fetch_command,omitempty" json:"fetch_command"`
	DataDir      string `yaml:"data_dir,omitempty" json:"data_dir"`
	PDFReader    string `yaml:"pdf_reader,omitempty" json:"pdf_reader"`
}

const (
	// AppDir is the directory name under the XDG config and data homes.
	AppDir = "litnote"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// LegacyFile is the key=value directory file read from the working directory.
	LegacyFile = "directories.txt"
	// EnvFile is the dotenv file read from the working directory.
	EnvFile = ".env"
	// EnvPrefix prefixes the environment variable of every key.
	EnvPrefix = "LITNOTE_"

	HistoryFile = "history.jsonl"
	DBFile      = "index.db"
)

// Errors returned by Validate.
var (
	ErrNotConfigured = errors.New("not configured")
	ErrNotDirectory  = errors.New("not a directory")
)

// ValidReaders lists the supported pdf_reader values.
var ValidReaders = []string{"system", "skim", "preview", "zathura", "evince", "okular"}

// Path returns the config file path under XDG_CONFIG_HOME.
func Path() string {
	return filepath.Join(xdg.ConfigHome, AppDir, ConfigFile)
}

// DefaultDataDir returns the data directory under XDG_DATA_HOME.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppDir)
}

// HistoryPath returns the path of the note history.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.dataDir(), HistoryFile)
}

// DBPath returns the path of the SQLite index.
func (c *Config) DBPath() string {
	return filepath.Join(c.dataDir(), "cache", DBFile)
}

func (c *Config) dataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DefaultDataDir()
}

// Validate checks that the directories needed for an import are set.
// pdf_dir is only required when PDFs are stored.
func (c *Config) Validate(needPDF bool) error {
	if c.MarkdownDir == "" {
		return fmt.Errorf("markdown_dir %w", ErrNotConfigured)
	}
	if needPDF && c.PDFDir == "" {
		return fmt.Errorf("pdf_dir %w (use --skip-pdf to import without a PDF)", ErrNotConfigured)
	}
	if err := ValidatePDFReader(c.PDFReader); err != nil {
		return err
	}
	return nil
}

// ValidateDir checks that path exists and is a directory.
func ValidateDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	return nil
}

// ValidatePDFReader checks that the reader value is valid.
func ValidatePDFReader(reader string) error {
	if reader == "" {
		return nil
	}
	for _, valid := range ValidReaders {
		if reader == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid pdf_reader: %s (valid: %v)", reader, ValidReaders)
}

// ExpandPath expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

// HelpfulConfigMessage explains how to configure the note directories.
func HelpfulConfigMessage() string {
	path := Path()
	return fmt.Sprintf(`litnote needs to know where to put notes and PDFs.

Tip: run 'litnote config init --markdown-dir DIR --pdf-dir DIR', or create %s:
  mkdir -p %s
  printf 'markdown_dir: ~/vault/papers\npdf_dir: ~/papers\n' > %s

A %s file (markdown_dir=..., pdf_dir=...) in the working directory also works.`,
		path, filepath.Dir(path), path, LegacyFile)
}
