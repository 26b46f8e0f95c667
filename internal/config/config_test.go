package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func noEnv(string) (string, bool) { return "", false }

func TestLoadFrom_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	legacyPath := filepath.Join(dir, "directories.txt")
	envPath := filepath.Join(dir, ".env")

	writeFile(t, cfgPath, "markdown_dir: /yaml/notes\npdf_dir: /yaml/pdfs\nmailto: yaml@example.org\nranking_table: /yaml/scimago.csv\n")
	writeFile(t, legacyPath, "# legacy directories\nmarkdown_dir=/legacy/notes\npdf_dir=/legacy/pdfs\n")
	writeFile(t, envPath, "LITNOTE_PDF_DIR=/dotenv/pdfs\nLITNOTE_MAILTO=dotenv@example.org\n")

	env := map[string]string{"LITNOTE_MAILTO": "env@example.org"}
	cfg, err := LoadFrom(Sources{
		ConfigFile: cfgPath,
		LegacyFile: legacyPath,
		EnvFile:    envPath,
		LookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
	})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	want := &Config{
		MarkdownDir:  "/legacy/notes",
		PDFDir:       "/dotenv/pdfs",
		RankingTable: "/yaml/scimago.csv",
		Mailto:       "env@example.org",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadFrom() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(Sources{
		ConfigFile: filepath.Join(dir, "none.yml"),
		LegacyFile: filepath.Join(dir, "none.txt"),
		EnvFile:    filepath.Join(dir, "none.env"),
		LookupEnv:  noEnv,
	})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("LoadFrom() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	writeFile(t, path, "markdown_dir: [unclosed\n")
	if _, err := LoadFrom(Sources{ConfigFile: path, LookupEnv: noEnv}); err == nil {
		t.Error("LoadFrom() should fail on malformed YAML")
	}
}

func TestLoadFrom_ExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path := filepath.Join(t.TempDir(), "config.yml")
	writeFile(t, path, "markdown_dir: ~/vault\n")

	cfg, err := LoadFrom(Sources{ConfigFile: path, LookupEnv: noEnv})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if want := filepath.Join(home, "vault"); cfg.MarkdownDir != want {
		t.Errorf("MarkdownDir = %q, want %q", cfg.MarkdownDir, want)
	}
}

func TestMerge(t *testing.T) {
	cfg := &Config{MarkdownDir: "/a", PDFDir: "/b"}
	cfg.Merge(Config{PDFDir: "/flag/pdfs", TemplateDir: "/flag/templates"})

	want := &Config{MarkdownDir: "/a", PDFDir: "/flag/pdfs", TemplateDir: "/flag/templates"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		needPDF bool
		wantErr bool
	}{
		{"complete", Config{MarkdownDir: "/n", PDFDir: "/p"}, true, false},
		{"no markdown dir", Config{PDFDir: "/p"}, true, true},
		{"no pdf dir", Config{MarkdownDir: "/n"}, true, true},
		{"no pdf dir, skipping pdf", Config{MarkdownDir: "/n"}, false, false},
		{"bad reader", Config{MarkdownDir: "/n", PDFReader: "acrobat"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.needPDF)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	err := (&Config{}).Validate(false)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Validate() error = %v, want ErrNotConfigured", err)
	}
}

func TestGetSet(t *testing.T) {
	var cfg Config
	if err := cfg.Set("ranking_table", "/tables/scimago.csv.gz"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok := cfg.Get("ranking_table"); !ok || v != "/tables/scimago.csv.gz" {
		t.Errorf("Get() = %q, %v", v, ok)
	}
	if err := cfg.Set("nexus_path", "x"); err == nil {
		t.Error("Set() of unknown key should fail")
	}
	if len(Keys()) != 8 {
		t.Errorf("Keys() = %v", Keys())
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "litnote", "config.yml")
	cfg := &Config{MarkdownDir: "/n", PDFDir: "/p", FetchCommand: "paperbot --doi {doi} --dir {dir}"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := LoadFrom(Sources{ConfigFile: path, LookupEnv: noEnv})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	if got := cfg.HistoryPath(); got != "/data/history.jsonl" {
		t.Errorf("HistoryPath() = %q", got)
	}
	if got := cfg.DBPath(); got != "/data/cache/index.db" {
		t.Errorf("DBPath() = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	tests := []struct {
		in   string
		want string
	}{
		{"~/papers", filepath.Join(home, "papers")},
		{"~", home},
		{"/abs/path", "/abs/path"},
		{"~user/x", "~user/x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
