package main

import (
	"errors"
	"sync"

	"github.com/litnote/litnote/internal/config"
	"github.com/litnote/litnote/internal/journal"
	"github.com/litnote/litnote/internal/storage"
)

// flagConfig collects config values given on the command line.
var flagConfig config.Config

// mustLoadConfig resolves the configuration with command-line overrides
// applied last. It exits on failure.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	cfg.Merge(flagConfig)
	return cfg
}

var (
	rankingOnce  sync.Once
	rankingTable *journal.Table
	rankingErr   error
)

// loadRanking loads the ranking table at most once per process. A nil table
// with a nil error means none is configured.
func loadRanking(path string) (*journal.Table, error) {
	rankingOnce.Do(func() {
		if path == "" {
			return
		}
		rankingTable, rankingErr = journal.LoadFile(path)
		if rankingErr == nil {
			log.WithField("rows", rankingTable.Len()).Debug("loaded ranking table")
		}
	})
	return rankingTable, rankingErr
}

// openIndex rebuilds the SQLite index from the history and returns it.
func openIndex(cfg *config.Config) (*storage.DB, error) {
	db, err := storage.OpenDB(cfg.DBPath())
	if err != nil {
		return nil, err
	}
	if _, err := db.RebuildFromJSONL(cfg.HistoryPath()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

var errNoDOI = errors.New("no DOI given and none found in the local PDF")
