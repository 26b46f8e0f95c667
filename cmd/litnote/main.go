// Package main provides the litnote CLI entry point.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool
)

// log carries warnings and progress to stderr; stdout is reserved for results.
var log = logrus.New()

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(ExitError, "%v", err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "litnote",
	Short: "Turn DOIs into literature notes and BibTeX entries",
	Long: `litnote resolves a DOI, classifies the publication, and writes a
Markdown literature note from a per-kind template, together with a BibTeX
entry keyed by the same citation alias.

Journal articles are enriched with SCImago ranking metrics when a ranking
table is configured. Commands output JSON by default; use --human for
readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.InfoLevel)

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress details")
	rootCmd.Version = Version
}
