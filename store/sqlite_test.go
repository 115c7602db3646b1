package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "cache", "fundsim.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

var testSeries = fundsim.Series{
	{Date: date.New(2024, 1, 2), Close: 10},
	{Date: date.New(2024, 1, 3), Close: 11, Dividend: 0.2},
	{Date: date.New(2024, 1, 4), Close: 12},
}

func TestSQLite_PutSeries(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Series(ctx, "SPY")
	assert.ErrorIs(t, err, fundsim.ErrNotFound)
	_, ok, err := db.FetchedOn(ctx, "SPY")
	require.NoError(t, err)
	assert.False(t, ok)

	day := date.New(2024, 1, 5)
	require.NoError(t, db.Put(ctx, "SPY", testSeries, day))
	got, err := db.Series(ctx, "SPY")
	require.NoError(t, err)
	assert.Equal(t, testSeries, got)

	fetched, ok, err := db.FetchedOn(ctx, "SPY")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, day, fetched)

	// a new put replaces the series
	require.NoError(t, db.Put(ctx, "SPY", testSeries[:2], day.Add(1)))
	got, err = db.Series(ctx, "SPY")
	require.NoError(t, err)
	assert.Equal(t, testSeries[:2], got)
}

// countingProvider counts the calls and fails with 'err' when set.
type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Series(_ context.Context, fundID string) (fundsim.Series, error) {
	p.calls++
	if p.err != nil {
		return nil, &fundsim.FundError{Fund: fundID, Err: p.err}
	}
	return testSeries, nil
}

func TestCached(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	src := &countingProvider{}
	today := date.New(2024, 2, 1)
	c := &Cached{Cache: db, Source: src, Today: func() date.Date { return today }}

	for range 3 {
		s, err := c.Series(ctx, "SPY")
		require.NoError(t, err)
		assert.Equal(t, testSeries, s)
	}
	assert.Equal(t, 1, src.calls, "same day requests are served by the cache")

	today = today.Add(1)
	_, err := c.Series(ctx, "SPY")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls, "the cache expires every day")

	today = today.Add(1)
	src.err = fmt.Errorf("timeout: %w", fundsim.ErrUnavailable)
	s, err := c.Series(ctx, "SPY")
	require.NoError(t, err, "a stale series is better than none")
	assert.Equal(t, testSeries, s)

	src.err = fundsim.ErrNotFound
	_, err = c.Series(ctx, "SPY")
	assert.ErrorIs(t, err, fundsim.ErrNotFound)

	src.err = fundsim.ErrUnavailable
	_, err = c.Series(ctx, "QQQ")
	assert.ErrorIs(t, err, fundsim.ErrUnavailable, "nothing cached for that fund")
}
