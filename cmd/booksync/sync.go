// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/booksync/internal/booksync"
	"github.com/pdiddy/booksync/internal/journal"
	"github.com/pdiddy/booksync/internal/naver"
	"github.com/pdiddy/booksync/internal/notion"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fill in metadata for every entry with an empty author",
	Long: `Sync queries the Notion database for entries whose author is empty, searches
the Naver book API for each entry's title, and writes the first result's
author, publisher, list price, page count and cover to the entry.

Entries are processed one at a time. A failed query, search or update is
logged and never stops the run, so sync exits successfully once started;
check the log, --report or --journal output for per-entry failures.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().Bool("dry-run", false, "search for matches but do not update entries")
	syncCmd.Flags().Int("limit", 0, "process at most this many entries (0 = all)")
	syncCmd.Flags().String("report", "", "write a YAML run report to this file")
	syncCmd.Flags().String("journal", "", "record the run in this SQLite journal (e.g. "+journal.DefaultPath+")")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	cfg.Limit, _ = cmd.Flags().GetInt("limit")

	if err := cfg.Validate(); err != nil {
		logger.Warn().Err(err).Msg("configuration incomplete; calls needing it will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := httpClient(cfg)
	s := booksync.New(cfg, notion.New(cfg, client), naver.New(cfg, client), logger)
	sum := s.Run(ctx)

	if path, _ := cmd.Flags().GetString("report"); path != "" {
		if err := booksync.WriteReport(path, sum); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("writing run report failed")
		} else {
			logger.Info().Str("path", path).Msg("run report written")
		}
	}

	journalPath, _ := cmd.Flags().GetString("journal")
	if journalPath == "" {
		journalPath = viper.GetString("journal")
	}
	if journalPath != "" {
		recordRun(journalPath, sum)
	}
	return nil
}

// recordRun appends sum to the journal. Journal failures are logged only;
// the sync itself has already happened.
func recordRun(path string, sum booksync.Summary) {
	j, err := journal.Open(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("opening journal failed")
		return
	}
	defer j.Close()

	if err := j.Record(context.Background(), sum); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("recording run failed")
		return
	}
	logger.Debug().Str("path", path).Str("run_id", sum.RunID).Msg("run recorded")
}
