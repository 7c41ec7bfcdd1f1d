// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package booksync fills in missing book metadata: it selects Notion entries
// with an empty author, looks each title up in the Naver book search, and
// writes the first match back to the entry.
package booksync

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pdiddy/booksync/internal/notion"
	"github.com/pdiddy/booksync/pkg/types"
)

// EntryStore is the document store side of a sync. *notion.Client
// implements it.
type EntryStore interface {
	QueryIncomplete(ctx context.Context) (notion.QueryResult, error)
	UpdateProperties(ctx context.Context, pageID string, props notion.Properties) error
}

// Selector picks the entries that still need metadata.
type Selector struct {
	Store EntryStore
	Log   zerolog.Logger
}

// FetchIncomplete queries the store for entries with an empty author. Any
// returned entry whose author is in fact set is dropped, so callers only
// ever see entries the query predicate holds for.
func (s *Selector) FetchIncomplete(ctx context.Context) ([]types.Entry, error) {
	res, err := s.Store.QueryIncomplete(ctx)
	if err != nil {
		return nil, err
	}

	if res.HasMore {
		s.Log.Info().Int("returned", len(res.Entries)).
			Msg("more incomplete entries exist than one query returns; later runs will pick them up")
	}

	entries := make([]types.Entry, 0, len(res.Entries))
	for _, e := range res.Entries {
		if e.Author != "" {
			s.Log.Debug().Str("entry_id", e.ID).Str("author", e.Author).Msg("dropping entry with author already set")
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
