package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litnote/litnote/internal/reference"
	"github.com/litnote/litnote/internal/storage"
)

var (
	listKind  string
	listYear  string
	listQuery string
	listLimit int
	listStats bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported notes",
	Long: `List imported notes, newest first.

The index is rebuilt from the import history on every run.

Examples:
  litnote list --human
  litnote list --kind journal --year 2023
  litnote list --query "gene networks" --limit 5
  litnote list --stats`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listKind, "kind", "", "Only show conference, journal, book, chapter or misc")
	listCmd.Flags().StringVar(&listYear, "year", "", "Only show notes with this publication year")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Full-text search over alias, title, authors and journal")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number of notes (0 for all)")
	listCmd.Flags().BoolVar(&listStats, "stats", false, "Show counts per kind instead of notes")
	rootCmd.AddCommand(listCmd)
}

// ListResult is the JSON output for the list command.
type ListResult struct {
	Count int                  `json:"count"`
	Notes []storage.NoteRecord `json:"notes"`
}

// StatsResult is the JSON output for list --stats.
type StatsResult struct {
	Total  int            `json:"total"`
	ByKind map[string]int `json:"by_kind"`
}

func runList(cmd *cobra.Command, args []string) error {
	filters := storage.ListFilters{Query: listQuery, Year: listYear, Limit: listLimit}
	if listKind != "" {
		k, err := reference.ParseKind(listKind)
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

	if listStats {
		return runStats(db)
	}

	notes, err := db.List(filters)
	if err != nil {
		exitWithError(ExitError, "listing notes: %v", err)
	}
	if notes == nil {
		notes = []storage.NoteRecord{}
	}

	if !humanOutput {
		return outputJSON(ListResult{Count: len(notes), Notes: notes})
	}
	if len(notes) == 0 {
		fmt.Println("No notes found")
		return nil
	}
	for _, n := range notes {
		fmt.Printf("%-20s %-10s %-4s %s\n", n.Alias, n.Kind, n.Year, truncateString(n.Title, ListTitleMaxLen))
	}
	fmt.Printf("\n%d note(s)\n", len(notes))
	return nil
}

func runStats(db *storage.DB) error {
	counts, err := db.CountByKind()
	if err != nil {
		exitWithError(ExitError, "counting notes: %v", err)
	}
	result := StatsResult{ByKind: make(map[string]int, len(counts))}
	for k, n := range counts {
		result.ByKind[k.String()] = n
		result.Total += n
	}

	if !humanOutput {
		return outputJSON(result)
	}
	for _, k := range reference.Kinds {
		fmt.Printf("%-12s %d\n", k.Label(), counts[k])
	}
	fmt.Printf("%-12s %d\n", "Total", result.Total)
	return nil
}
