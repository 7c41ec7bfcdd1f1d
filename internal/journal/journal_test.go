// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/booksync/internal/booksync"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func summaryAt(id string, start time.Time, outcomes ...booksync.Outcome) booksync.Summary {
	return booksync.Summary{
		RunID:      id,
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
		Selected:   len(outcomes),
		Outcomes:   outcomes,
	}
}

func TestRecordAndRuns(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	first := summaryAt("run-1", base,
		booksync.Outcome{EntryID: "p1", Title: "Dune", Status: booksync.StatusUpdated, MatchedTitle: "Dune"},
		booksync.Outcome{EntryID: "p2", Title: "Unknown", Status: booksync.StatusNoMatch},
		booksync.Outcome{EntryID: "p3", Title: "Broken", Status: booksync.StatusLookupFailed, Detail: "HTTP 500"},
	)
	second := summaryAt("run-2", base.Add(time.Hour))
	second.SelectionError = "Notion API returned HTTP 503"

	require.NoError(t, j.Record(ctx, first))
	require.NoError(t, j.Record(ctx, second))

	runs, err := j.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "Notion API returned HTTP 503", runs[0].SelectionError)

	r := runs[1]
	assert.Equal(t, "run-1", r.ID)
	assert.True(t, base.Equal(r.StartedAt))
	assert.True(t, base.Add(2*time.Second).Equal(r.FinishedAt))
	assert.Equal(t, 3, r.Selected)
	assert.Equal(t, 1, r.Updated)
	assert.Equal(t, 1, r.NoMatch)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 0, r.Skipped)
	assert.False(t, r.DryRun)
}

func TestRunsLimit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, j.Record(ctx, summaryAt(id, base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err := j.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestOutcomes(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	want := []booksync.Outcome{
		{EntryID: "p1", Title: "Dune", Status: booksync.StatusUpdated, MatchedTitle: "Dune"},
		{EntryID: "p2", Status: booksync.StatusSkipped, Detail: "empty title"},
	}
	require.NoError(t, j.Record(ctx, summaryAt("run-1", time.Now(), want...)))

	got, err := j.Outcomes(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	none, err := j.Outcomes(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecordDuplicateRunFails(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	sum := summaryAt("run-1", time.Now(), booksync.Outcome{EntryID: "p1", Status: booksync.StatusNoMatch})

	require.NoError(t, j.Record(ctx, sum))
	err := j.Record(ctx, sum)
	require.Error(t, err)

	got, err := j.Outcomes(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, got, 1, "failed record must not leave partial outcomes")
}

func TestOpenReopensExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, summaryAt("run-1", time.Now())))
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()

	runs, err := j.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
