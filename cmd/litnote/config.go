package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/litnote/litnote/internal/config"
	"github.com/litnote/litnote/internal/render"
)

var configTemplates bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the configuration",
	Long: `Show the resolved configuration.

Settings are read from the config file, then directories.txt and .env in the
working directory, then LITNOTE_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the config file",
	Long: `Write the config file with the given settings.

Existing settings in the file are kept unless a flag overrides them. With
--templates the built-in note templates are written to template_dir so they
can be edited; existing template files are left alone.

Examples:
  litnote config init --markdown-dir ~/notes/papers --pdf-dir ~/papers
  litnote config init --template-dir ~/notes/templates --templates`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one key in the config file",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	f := configInitCmd.Flags()
	f.StringVar(&flagConfig.MarkdownDir, "markdown-dir", "", "Directory for notes")
	f.StringVar(&flagConfig.PDFDir, "pdf-dir", "", "Directory for PDFs")
	f.StringVar(&flagConfig.TemplateDir, "template-dir", "", "Directory with <kind>_template.md files")
	f.StringVar(&flagConfig.RankingTable, "ranking-table", "", "SCImago journal ranking CSV")
	f.StringVar(&flagConfig.Mailto, "mailto", "", "Contact address sent with metadata requests")
	f.StringVar(&flagConfig.PDFReader, "pdf-reader", "", fmt.Sprintf("PDF viewer %v", config.ValidReaders))
	f.BoolVar(&configTemplates, "templates", false, "Also write the default templates to template_dir")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigResult is the JSON output for config.
type ConfigResult struct {
	Path   string         `json:"path"`
	Config *config.Config `json:"config"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if !humanOutput {
		return outputJSON(ConfigResult{Path: config.Path(), Config: cfg})
	}
	fmt.Printf("Config file: %s\n", config.Path())
	for _, key := range config.Keys() {
		v, _ := cfg.Get(key)
		if v == "" {
			v = "(not set)"
		}
		fmt.Printf("  %-14s %s\n", key, v)
	}
	fmt.Printf("  %-14s %s\n", "history", cfg.HistoryPath())
	return nil
}

// loadConfigFile reads only the config file, so that saving it does not
// persist values that came from the environment.
func loadConfigFile(path string) *config.Config {
	cfg, err := config.LoadFrom(config.Sources{
		ConfigFile: path,
		LookupEnv:  func(string) (string, bool) { return "", false },
	})
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.Path()
	cfg := loadConfigFile(path)
	cfg.Merge(flagConfig)

	if err := config.ValidatePDFReader(cfg.PDFReader); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	for _, dir := range []string{cfg.MarkdownDir, cfg.PDFDir} {
		if dir == "" {
			continue
		}
		if err := config.ValidateDir(dir); err != nil {
			log.WithField("path", dir).Warn("directory does not exist yet, it is created on first import")
		}
	}

	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	paths := []string{path}

	if configTemplates {
		if cfg.TemplateDir == "" {
			exitWithError(ExitConfigError, "--templates needs template_dir")
		}
		written, err := render.WriteDefaults(cfg.TemplateDir)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		paths = append(paths, written...)
	}

	if !humanOutput {
		return outputJSON(StatusResponse{Status: "saved", Path: path, Paths: paths})
	}
	for _, p := range paths {
		fmt.Printf("Wrote %s\n", p)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := config.Path()
	cfg := loadConfigFile(path)
	if err := cfg.Set(args[0], args[1]); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if args[0] == "pdf_reader" {
		if err := config.ValidatePDFReader(cfg.PDFReader); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}
	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if !humanOutput {
		return outputJSON(StatusResponse{Status: "saved", Path: path})
	}
	v, _ := cfg.Get(args[0])
	fmt.Printf("%s = %s (%s)\n", args[0], v, filepath.Clean(path))
	return nil
}
