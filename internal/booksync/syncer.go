// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package booksync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/booksync/pkg/types"
)

// Searcher looks up book metadata by title. *naver.Client implements it.
// A nil result with a nil error means no match.
type Searcher interface {
	SearchByTitle(ctx context.Context, title string) (*types.SearchResult, error)
}

// Status is the outcome of processing one entry.
type Status string

const (
	StatusUpdated      Status = "updated"
	StatusNoMatch      Status = "no_match"
	StatusLookupFailed Status = "lookup_failed"
	StatusUpdateFailed Status = "update_failed"
	StatusSkipped      Status = "skipped"
	StatusDryRun       Status = "dry_run"
)

// Outcome records what happened to one entry during a run.
type Outcome struct {
	EntryID      string `json:"entry_id" yaml:"entry_id"`
	Title        string `json:"title" yaml:"title"`
	Status       Status `json:"status" yaml:"status"`
	MatchedTitle string `json:"matched_title,omitempty" yaml:"matched_title,omitempty"`
	Detail       string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Summary describes one run.
type Summary struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	DryRun     bool      `json:"dry_run" yaml:"dry_run"`

	// Selected is the number of entries the selector returned.
	Selected int `json:"selected" yaml:"selected"`

	// SelectionError is set when the query failed and the run did nothing.
	SelectionError string `json:"selection_error,omitempty" yaml:"selection_error,omitempty"`

	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
}

// Count returns how many outcomes have status st.
func (s Summary) Count(st Status) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == st {
			n++
		}
	}
	return n
}

// Failed returns the number of entries whose lookup or update failed.
func (s Summary) Failed() int {
	return s.Count(StatusLookupFailed) + s.Count(StatusUpdateFailed)
}

// Syncer runs the select, lookup, update loop.
type Syncer struct {
	Selector *Selector
	Search   Searcher
	Updater  *Updater
	Log      zerolog.Logger

	// DryRun performs lookups but never calls the updater.
	DryRun bool

	// Limit caps the number of entries processed. Zero means all.
	Limit int

	// Now is the clock used for run timestamps.
	Now func() time.Time
}

// New wires a Syncer from cfg and the two services.
func New(cfg types.SyncConfig, store EntryStore, search Searcher, log zerolog.Logger) *Syncer {
	return &Syncer{
		Selector: &Selector{Store: store, Log: log},
		Search:   search,
		Updater:  &Updater{Store: store, Props: cfg.Properties},
		Log:      log,
		DryRun:   cfg.DryRun,
		Limit:    cfg.Limit,
		Now:      time.Now,
	}
}

// Run performs one full pass. No failure aborts the batch: a failed
// selection ends the run with nothing done, and a failed lookup or update
// only affects its own entry. Entries are processed one at a time in the
// order the store returned them.
func (s *Syncer) Run(ctx context.Context) Summary {
	sum := Summary{
		RunID:     uuid.NewString(),
		StartedAt: s.now(),
		DryRun:    s.DryRun,
	}
	log := s.Log.With().Str("run_id", sum.RunID).Logger()

	entries, err := s.Selector.FetchIncomplete(ctx)
	if err != nil {
		log.Error().Err(err).Msg("querying incomplete entries failed")
		sum.SelectionError = err.Error()
	}
	if s.Limit > 0 && len(entries) > s.Limit {
		entries = entries[:s.Limit]
	}
	sum.Selected = len(entries)

	if len(entries) == 0 {
		log.Info().Msg("nothing to do: no entries are missing metadata")
		sum.FinishedAt = s.now()
		return sum
	}

	for _, e := range entries {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Int("remaining", len(entries)-len(sum.Outcomes)).Msg("run interrupted")
			break
		}
		sum.Outcomes = append(sum.Outcomes, s.process(ctx, log, e))
	}

	sum.FinishedAt = s.now()
	log.Info().
		Int("selected", sum.Selected).
		Int("updated", sum.Count(StatusUpdated)).
		Int("no_match", sum.Count(StatusNoMatch)).
		Int("failed", sum.Failed()).
		Int("skipped", sum.Count(StatusSkipped)).
		Int("dry_run", sum.Count(StatusDryRun)).
		Msg("sync finished")
	return sum
}

// process handles a single entry and reports its outcome.
func (s *Syncer) process(ctx context.Context, log zerolog.Logger, e types.Entry) Outcome {
	out := Outcome{EntryID: e.ID, Title: e.Title}
	elog := log.With().Str("entry_id", e.ID).Str("title", e.Title).Logger()

	if e.Title == "" {
		elog.Warn().Msg("entry has no title; skipping")
		out.Status = StatusSkipped
		out.Detail = "empty title"
		return out
	}

	elog.Info().Msg("checking entry")

	result, err := s.Search.SearchByTitle(ctx, e.Title)
	if err != nil {
		elog.Error().Err(err).Msg("book search failed")
		out.Status = StatusLookupFailed
		out.Detail = err.Error()
		return out
	}
	if result == nil {
		elog.Warn().Msg("no match found for title")
		out.Status = StatusNoMatch
		return out
	}
	out.MatchedTitle = result.Title

	if s.DryRun {
		elog.Info().
			Str("matched_title", result.Title).
			Str("author", result.Author).
			Str("publisher", result.Publisher).
			Int("list_price", ParseCount(result.Price)).
			Int("page_count", ParseCount(result.PageCount)).
			Msg("dry run: would update entry")
		out.Status = StatusDryRun
		return out
	}

	if err := s.Updater.Apply(ctx, e.ID, *result); err != nil {
		elog.Error().Err(err).Str("matched_title", result.Title).Msg("updating entry failed")
		out.Status = StatusUpdateFailed
		out.Detail = err.Error()
		return out
	}

	elog.Info().Str("matched_title", result.Title).Msg("entry updated")
	out.Status = StatusUpdated
	return out
}

func (s *Syncer) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
