package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/litnote/litnote/internal/export"
	"github.com/litnote/litnote/internal/reference"
	"github.com/litnote/litnote/internal/storage"
)

var (
	exportOutput string
	exportKind   string
	exportYear   string
	exportQuery  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the BibTeX entries of imported notes",
	Long: `Export the BibTeX entries of imported notes.

Without --output the entries are printed to stdout. With --output they are
appended to the file, skipping entries whose key or DOI is already present.

Examples:
  litnote export > refs.bib
  litnote export --kind journal --output thesis.bib`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Append to this .bib file instead of printing")
	exportCmd.Flags().StringVar(&exportKind, "kind", "", "Only export conference, journal, book, chapter or misc")
	exportCmd.Flags().StringVar(&exportYear, "year", "", "Only export notes with this publication year")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "Full-text search filter")
	rootCmd.AddCommand(exportCmd)
}

// ExportResult is the JSON output for export --output.
type ExportResult struct {
	Path     string   `json:"path"`
	Exported []string `json:"exported"`
	Skipped  []string `json:"skipped,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	filters := storage.ListFilters{Query: exportQuery, Year: exportYear}
	if exportKind != "" {
		k, err := reference.ParseKind(exportKind)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		filters.Kind = &k
	}

	cfg := mustLoadConfig()
	db, err := openIndex(cfg)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	defer db.Close()

	notes, err := db.List(filters)
	if err != nil {
		exitWithError(ExitError, "listing notes: %v", err)
	}

	idx := export.NewBibIndex()
	if exportOutput != "" {
		if idx, err = export.IndexBibFile(exportOutput); err != nil {
			exitWithError(ExitError, "reading %s: %v", exportOutput, err)
		}
	}

	result := ExportResult{Path: exportOutput, Exported: []string{}}
	var entries []string
	// List is newest first; export in import order.
	for i := len(notes) - 1; i >= 0; i-- {
		n := notes[i]
		if n.BibTeX == "" {
			continue
		}
		if idx.Has(n.Alias, n.DOI) {
			result.Skipped = append(result.Skipped, n.Alias)
			continue
		}
		idx.Add(n.Alias, n.DOI)
		entries = append(entries, n.BibTeX)
		result.Exported = append(result.Exported, n.Alias)
	}

	if exportOutput == "" {
		if len(entries) > 0 {
			fmt.Print(export.ToBibTeXList(entries))
		}
		return nil
	}

	if len(entries) > 0 {
		if err := export.AppendToBibFile(exportOutput, export.ToBibTeXList(entries)); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportOutput, err)
		}
	}

	if !humanOutput {
		return outputJSON(result)
	}
	fmt.Fprintf(os.Stdout, "Exported %d entries to %s", len(result.Exported), exportOutput)
	if len(result.Skipped) > 0 {
		fmt.Printf(" (%d already present)", len(result.Skipped))
	}
	fmt.Println()
	return nil
}
