package history

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/chitx/cashflow"
)

func newTestSQLite(t *testing.T, maxEntries int) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewSQLite(path, maxEntries)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func sampleEntry(created time.Time, lump float64) Entry {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return Entry{
		Created: created,
		Inputs: Inputs{
			PeriodicAmount: 10000,
			Periods:        3,
			LumpSum:        lump,
			StartDate:      start,
			Frequency:      cashflow.Monthly,
		},
		Flows: cashflow.Generate(10000, 3, lump, start),
		Rate:  0.2,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t, 0)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('entries','cash_flows')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["entries"])
	assert.True(t, found["cash_flows"])
}

func TestSQLiteAddAndGet(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, 0)
	ctx := context.Background()

	created := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	saved, err := s.Add(ctx, sampleEntry(created, 31000))
	require.NoError(t, err)
	assert.Len(t, saved.ID, 26)

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)

	assert.Equal(t, saved.ID, got.ID)
	assert.True(t, created.Equal(got.Created))
	assert.Equal(t, cashflow.Monthly, got.Inputs.Frequency)
	assert.Equal(t, 3, got.Inputs.Periods)
	assert.InDelta(t, 31000, got.Inputs.LumpSum, 1e-9)
	assert.InDelta(t, 0.2, got.Rate, 1e-12)
	require.Len(t, got.Flows, 4)
	assert.True(t, got.Flows[3].Date.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 31000.0, got.Flows[3].Amount)
}

func TestSQLiteGetNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, 0)
	_, err := s.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLiteListNewestFirstAndTrim(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, 3)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		e, err := s.Add(ctx, sampleEntry(base.Add(time.Duration(i)*time.Hour), 30000+float64(i)))
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{ids[4], ids[3], ids[2]}, []string{all[0].ID, all[1].ID, all[2].ID})
	for _, e := range all {
		assert.Len(t, e.Flows, 4)
	}

	two, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)

	var orphans int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM cash_flows WHERE entry_id NOT IN (SELECT id FROM entries)`).Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestSQLiteDeleteRelabelClear(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, 0)
	ctx := context.Background()

	a, err := s.Add(ctx, sampleEntry(time.Time{}, 31000))
	require.NoError(t, err)
	b, err := s.Add(ctx, sampleEntry(time.Time{}, 32000))
	require.NoError(t, err)

	require.NoError(t, s.Relabel(ctx, a.ID, "  office chit "))
	got, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "office chit", got.Label)
	assert.True(t, errors.Is(s.Relabel(ctx, "missing", "x"), ErrNotFound))

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.True(t, errors.Is(s.Delete(ctx, a.ID), ErrNotFound))

	left, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, b.ID, left[0].ID)

	require.NoError(t, s.Clear(ctx))
	left, err = s.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, left)
}
