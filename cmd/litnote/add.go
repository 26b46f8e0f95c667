package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/litnote/litnote/internal/config"
	"github.com/litnote/litnote/internal/crossref"
	"github.com/litnote/litnote/internal/journal"
	"github.com/litnote/litnote/internal/note"
	"github.com/litnote/litnote/internal/pdf"
	"github.com/litnote/litnote/internal/reference"
	"github.com/litnote/litnote/internal/storage"
)

var (
	addForceType    string
	addSkipPDF      bool
	addLocalPDF     string
	addImportedDate string
	addDryRun       bool
)

// codePDFUnavailable marks a failed PDF step.
const codePDFUnavailable = "pdf_unavailable"

var addCmd = &cobra.Command{
	Use:   "add [doi]",
	Short: "Create a literature note and BibTeX entry for a DOI",
	Long: `Create a literature note and BibTeX entry for a DOI.

The metadata is fetched by DOI content negotiation, classified as conference
paper, journal article, book, book chapter or misc, and rendered with the
matching <kind>_template.md. The note is filed under
<markdown_dir>/YYYY/Qn/<alias>_<title>.md and the PDF, when one is found, is
stored in pdf_dir under the same stem.

Examples:
  litnote add 10.1038/nature12373
  litnote add 10.1145/3292500.3330701 --force-type conference --skip-pdf
  litnote add --local-pdf ~/Downloads/paper.pdf --human
  litnote add 10.1007/978-3-030-01234-2_1 --dry-run --imported-date 2024-02-03`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagConfig.MarkdownDir, "markdown-dir", "", "Directory for notes (overrides config)")
	addCmd.Flags().StringVar(&flagConfig.PDFDir, "pdf-dir", "", "Directory for PDFs (overrides config)")
	addCmd.Flags().StringVar(&flagConfig.TemplateDir, "template-dir", "", "Directory with <kind>_template.md files (overrides config)")
	addCmd.Flags().StringVar(&flagConfig.RankingTable, "ranking-table", "", "SCImago journal ranking CSV (overrides config)")
	addCmd.Flags().StringVar(&addForceType, "force-type", "", "Treat the DOI as conference, journal, book, chapter or misc")
	addCmd.Flags().BoolVar(&addSkipPDF, "skip-pdf", false, "Skip PDF download and only create the note")
	addCmd.Flags().StringVar(&addLocalPDF, "local-pdf", "", "Use a local PDF instead of downloading one")
	addCmd.Flags().StringVar(&addImportedDate, "imported-date", "", "Date recorded as imported (default today)")
	addCmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Print the note instead of writing it")
	rootCmd.AddCommand(addCmd)
}

// AddResult is the JSON output for the add command.
type AddResult struct {
	Action      string            `json:"action"` // created, dry_run
	Alias       string            `json:"alias"`
	Kind        reference.Kind    `json:"kind"`
	Label       string            `json:"label"`
	Title       string            `json:"title"`
	DOI         string            `json:"doi"`
	NotePath    string            `json:"note_path,omitempty"`
	PDFPath     string            `json:"pdf_path,omitempty"`
	Missing     []string          `json:"missing,omitempty"`
	Journal     *journal.Metrics  `json:"journal,omitempty"`
	Diagnostics []note.Diagnostic `json:"diagnostics,omitempty"`
	BibTeX      string            `json:"bibtex"`
	Document    string            `json:"document,omitempty"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var force *reference.Kind
	if addForceType != "" {
		k, err := reference.ParseKind(addForceType)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		force = &k
	}

	imported := time.Now()
	if addImportedDate != "" {
		t, err := dateparse.ParseLocal(addImportedDate)
		if err != nil {
			exitWithError(ExitError, "parsing --imported-date: %v", err)
		}
		imported = t
	}

	if addLocalPDF != "" {
		addLocalPDF = config.ExpandPath(addLocalPDF)
	}

	doi, err := resolveDOI(args)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	cfg := mustLoadConfig()
	if err := cfg.Validate(!addSkipPDF); err != nil {
		if humanOutput {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		}
		exitWithError(ExitConfigError, "%v", err)
	}

	log.WithField("doi", doi).Debug("fetching metadata")
	client := crossref.NewClient(crossref.WithMailto(cfg.Mailto))
	raw, err := client.Fetch(ctx, doi)
	if err != nil {
		switch {
		case crossref.IsNotFound(err):
			exitWithError(ExitMetadataUnavailable, "no metadata for DOI %s", doi)
		default:
			exitWithError(ExitMetadataUnavailable, "fetching metadata for %s: %v", doi, err)
		}
	}

	var diags []note.Diagnostic

	ranking, rankingErr := loadRanking(cfg.RankingTable)

	alias, title := note.Identify(raw, force)

	var pdfFile string
	if !addSkipPDF && !addDryRun {
		pdfFile = storePDF(ctx, cfg, doi, alias, title, &diags)
	}

	res, err := note.Process(raw, note.Options{
		Force:        force,
		PDFFile:      pdfFile,
		PDFDir:       cfg.PDFDir,
		ImportedDate: imported,
		Ranking:      ranking,
		RankingErr:   rankingErr,
		TemplateDir:  cfg.TemplateDir,
	})
	if err != nil {
		if note.IsNoMetadata(err) {
			exitWithError(ExitMetadataUnavailable, "no metadata for DOI %s", doi)
		}
		exitWithError(ExitError, "building note: %v", err)
	}
	logDiagnostics(res.Diagnostics)
	diags = append(diags, res.Diagnostics...)

	result := AddResult{
		Action:      "created",
		Alias:       res.Alias,
		Kind:        res.Kind,
		Label:       res.Label,
		Title:       res.Title,
		DOI:         res.DOI,
		Missing:     res.Missing,
		Journal:     res.Journal,
		Diagnostics: diags,
		BibTeX:      res.BibTeX,
	}
	if pdfFile != "" {
		result.PDFPath = filepath.Join(cfg.PDFDir, pdfFile)
	}

	if addDryRun {
		result.Action = "dry_run"
		result.Document = res.Document
		return outputAddResult(result)
	}

	notePath := storage.NotePath(cfg.MarkdownDir, res.Alias, res.Title, imported)
	if err := storage.WriteNote(notePath, res.Document); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	result.NotePath = notePath

	rec := storage.NoteRecord{
		Alias:      res.Alias,
		DOI:        res.DOI,
		Title:      res.Title,
		Kind:       res.Kind,
		Label:      res.Label,
		Year:       res.Year,
		Authors:    res.Authors,
		NotePath:   notePath,
		PDFPath:    result.PDFPath,
		ImportedAt: imported,
		Missing:    res.Missing,
		BibTeX:     res.BibTeX,
	}
	if v, ok := fieldValue(res, "journal"); ok {
		rec.Journal = v
	}
	if res.Journal != nil {
		rec.Quartile = res.Journal.Quartile
	}
	if err := storage.AppendHistory(cfg.HistoryPath(), rec); err != nil {
		log.WithError(err).Warn("note written but not recorded in history")
	}

	return outputAddResult(result)
}

// resolveDOI returns the DOI argument, or the DOI printed in --local-pdf.
func resolveDOI(args []string) (string, error) {
	if len(args) == 1 {
		doi := reference.CleanDOI(args[0])
		if !reference.ValidDOI(doi) {
			return "", fmt.Errorf("invalid DOI: %s", args[0])
		}
		return doi, nil
	}
	if addLocalPDF == "" {
		return "", fmt.Errorf("a DOI or --local-pdf is required")
	}
	doi, err := pdf.ExtractDOI(addLocalPDF)
	if err != nil {
		return "", fmt.Errorf("reading DOI from %s: %w", addLocalPDF, err)
	}
	if doi == "" {
		return "", errNoDOI
	}
	log.WithField("doi", doi).Info("using DOI found in local PDF")
	return doi, nil
}

// storePDF copies the local PDF or downloads one into pdf_dir and returns its
// file name, or "" when none could be stored.
func storePDF(ctx context.Context, cfg *config.Config, doi, alias, title string, diags *[]note.Diagnostic) string {
	src := addLocalPDF
	if src != "" {
		if _, err := os.Stat(src); err != nil {
			warn(diags, codePDFUnavailable, "local PDF not found at %s", src)
			return ""
		}
	} else {
		scratch := filepath.Join(os.TempDir(), config.AppDir)
		fetcher := pdf.NewFetcher(pdf.ParseCommand(cfg.FetchCommand))
		if verbose {
			fetcher.Output = os.Stderr
		}
		log.WithField("doi", doi).Info("downloading PDF")
		downloaded, err := fetcher.Fetch(ctx, doi, scratch)
		if err != nil {
			warn(diags, codePDFUnavailable, "PDF not downloaded: %v", err)
			return ""
		}
		if downloaded == "" {
			warn(diags, codePDFUnavailable, "no PDF was found for this DOI")
			return ""
		}
		defer os.Remove(downloaded)
		src = downloaded
	}

	name, err := storage.CopyPDF(src, cfg.PDFDir, alias, title)
	if err != nil {
		warn(diags, codePDFUnavailable, "storing PDF: %v", err)
		return ""
	}
	log.WithField("path", filepath.Join(cfg.PDFDir, name)).Info("PDF stored")
	return name
}

func fieldValue(res note.Result, name string) (string, bool) {
	for _, f := range res.Fields {
		if f.Name == name && f.Value != "" {
			return f.Value, true
		}
	}
	return "", false
}

func outputAddResult(result AddResult) error {
	if !humanOutput {
		return outputJSON(result)
	}

	if result.Action == "dry_run" {
		fmt.Println(result.Document)
		return nil
	}
	fmt.Printf("Note created: %s\n", result.NotePath)
	if result.PDFPath != "" {
		fmt.Printf("PDF stored: %s\n", result.PDFPath)
	}
	fmt.Printf("Type: %s\n", result.Label)
	fmt.Println("BibTeX entry:")
	fmt.Println(result.BibTeX)
	return nil
}
