package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
	"github.com/rs/zerolog/log"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS prices (
	fund     TEXT NOT NULL,
	day      TEXT NOT NULL,
	close    REAL NOT NULL,
	dividend REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (fund, day)
);
CREATE TABLE IF NOT EXISTS fetches (
	fund    TEXT PRIMARY KEY,
	fetched TEXT NOT NULL
);
`

// SQLite is a series cache in a SQLite database.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens, and creates if needed, the cache database at path.
func OpenSQLite(path string) (*SQLite, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// This is a cache: speed over durability.
	connStr := absPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(OFF)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", absPath, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema in %s: %w", absPath, err)
	}
	return &SQLite{db: db, path: absPath}, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// Put replaces the cached series of a fund and records it as fetched on 'day'.
func (s *SQLite) Put(ctx context.Context, fundID string, series fundsim.Series, day date.Date) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM prices WHERE fund = ?`, fundID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO prices (fund, day, close, dividend) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range series {
		if _, err = stmt.ExecContext(ctx, fundID, p.Date.String(), p.Close, p.Dividend); err != nil {
			return fmt.Errorf("cannot cache %s on %v: %w", fundID, p.Date, err)
		}
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO fetches (fund, fetched) VALUES (?, ?) ON CONFLICT(fund) DO UPDATE SET fetched = excluded.fetched`,
		fundID, day.String()); err != nil {
		return err
	}
	return tx.Commit()
}

// Series implements fundsim.SeriesProvider over the cached series.
func (s *SQLite) Series(ctx context.Context, fundID string) (fundsim.Series, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day, close, dividend FROM prices WHERE fund = ? ORDER BY day`, fundID)
	if err != nil {
		return nil, &fundsim.FundError{Fund: fundID, Err: err}
	}
	defer rows.Close()

	var series fundsim.Series
	for rows.Next() {
		var day string
		var p fundsim.PricePoint
		if err := rows.Scan(&day, &p.Close, &p.Dividend); err != nil {
			return nil, &fundsim.FundError{Fund: fundID, Err: err}
		}
		if p.Date, err = date.Parse(day); err != nil {
			return nil, &fundsim.FundError{Fund: fundID, Err: err}
		}
		series = append(series, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &fundsim.FundError{Fund: fundID, Err: err}
	}
	if len(series) == 0 {
		return nil, &fundsim.FundError{Fund: fundID, Err: fundsim.ErrNotFound}
	}
	return series, nil
}

// FetchedOn returns the day the fund's series was last cached.
func (s *SQLite) FetchedOn(ctx context.Context, fundID string) (date.Date, bool, error) {
	var day string
	err := s.db.QueryRowContext(ctx, `SELECT fetched FROM fetches WHERE fund = ?`, fundID).Scan(&day)
	if errors.Is(err, sql.ErrNoRows) {
		return date.Date{}, false, nil
	}
	if err != nil {
		return date.Date{}, false, err
	}
	d, err := date.Parse(day)
	if err != nil {
		return date.Date{}, false, err
	}
	return d, true, nil
}

// Cached is a read-through cache in front of another provider.
//
// A series cached today is served from the cache. Otherwise it is fetched
// from the Source and cached. When the Source is unavailable a stale cached
// series is served instead.
type Cached struct {
	Cache  *SQLite
	Source fundsim.SeriesProvider
	Today  func() date.Date // defaults to date.Today
}

func (c *Cached) today() date.Date {
	if c.Today != nil {
		return c.Today()
	}
	return date.Today()
}

// Series implements fundsim.SeriesProvider.
func (c *Cached) Series(ctx context.Context, fundID string) (fundsim.Series, error) {
	today := c.today()
	fetched, ok, err := c.Cache.FetchedOn(ctx, fundID)
	if err != nil {
		log.Warn().Err(err).Str("fund", fundID).Msg("cache lookup failed (ignored)")
	}
	if ok && fetched == today {
		if s, err := c.Cache.Series(ctx, fundID); err == nil {
			log.Debug().Str("fund", fundID).Msg("cache hit")
			return s, nil
		}
	}

	s, err := c.Source.Series(ctx, fundID)
	if err != nil {
		if ok && errors.Is(err, fundsim.ErrUnavailable) {
			if stale, cerr := c.Cache.Series(ctx, fundID); cerr == nil {
				log.Warn().Err(err).Str("fund", fundID).Str("fetched", fetched.String()).Msg("serving stale series")
				return stale, nil
			}
		}
		return nil, err
	}
	if err := c.Cache.Put(ctx, fundID, s, today); err != nil {
		log.Warn().Err(err).Str("fund", fundID).Msg("cache write failed (ignored)")
	}
	return s, nil
}
