package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litnote/litnote/internal/config"
	"github.com/litnote/litnote/internal/pdf"
	"github.com/litnote/litnote/internal/storage"
)

var openPDF bool

var openCmd = &cobra.Command{
	Use:   "open <alias>",
	Short: "Open a note or its PDF",
	Long: `Open the note of an imported reference, or its PDF with --pdf.

The most recent import with the alias is used. PDFs open in pdf_reader when
it is configured (macOS only), otherwise in the system default viewer.

Examples:
  litnote open Smith2023
  litnote open Smith2023 --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVar(&openPDF, "pdf", false, "Open the PDF instead of the note")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if err := config.ValidatePDFReader(cfg.PDFReader); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	history, err := storage.ReadHistory(cfg.HistoryPath())
	if err != nil {
		exitWithError(ExitError, "reading history: %v", err)
	}
	rec, ok := storage.FindByAlias(history, args[0])
	if !ok {
		exitWithError(ExitError, "no note with alias %s", args[0])
	}

	target, root, reader := rec.NotePath, cfg.MarkdownDir, ""
	if openPDF {
		if rec.PDFPath == "" {
			exitWithError(ExitError, "no PDF stored for %s", rec.Alias)
		}
		target, root, reader = rec.PDFPath, cfg.PDFDir, cfg.PDFReader
	}

	opener := pdf.NewOpener(root, reader)
	path, err := opener.ResolvePath(target)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := opener.Open(path); err != nil {
		exitWithError(ExitError, "opening %s: %v", path, err)
	}

	if !humanOutput {
		return outputJSON(StatusResponse{Status: "opened", Path: path})
	}
	fmt.Printf("Opened %s\n", path)
	return nil
}
