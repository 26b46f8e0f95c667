package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litnote/litnote/internal/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal <name>",
	Short: "Look up a journal in the ranking table",
	Long: `Look up a journal in the SCImago ranking table.

The name is matched exactly after normalization first, then by similarity
above the fuzzy threshold.

Examples:
  litnote journal "Nature Communications"
  litnote journal "The Journal of Things" --ranking-table scimagojr.csv.gz --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().StringVar(&flagConfig.RankingTable, "ranking-table", "", "SCImago journal ranking CSV (overrides config)")
	rootCmd.AddCommand(journalCmd)
}

// JournalResult is the JSON output for the journal command.
type JournalResult struct {
	Query   string           `json:"query"`
	Found   bool             `json:"found"`
	Journal *journal.Metrics `json:"journal,omitempty"`
}

func runJournal(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if cfg.RankingTable == "" {
		exitWithError(ExitConfigError, "ranking_table is not configured")
	}
	table, err := loadRanking(cfg.RankingTable)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	name := strings.Join(args, " ")
	result := JournalResult{Query: name}
	if m, ok := table.Match(name); ok {
		result.Found = true
		result.Journal = &m
	}

	if !humanOutput {
		return outputJSON(result)
	}
	if !result.Found {
		fmt.Printf("Journal %q not found\n", name)
		return nil
	}
	m := result.Journal
	fmt.Printf("%s (%s match, ratio %.3f)\n", m.Title, m.Method, m.Ratio)
	fmt.Printf("  SJR best quartile: %s\n", m.Quartile)
	fmt.Printf("  H index: %s\n", m.HIndex)
	fmt.Printf("  Citations/doc (2y): %s\n", m.CitationsPerDoc)
	fmt.Printf("  Publisher: %s\n", m.Publisher)
	if len(m.Areas) > 0 {
		fmt.Printf("  Areas: %s\n", strings.Join(m.Areas, "; "))
	}
	return nil
}
