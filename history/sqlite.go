package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/chitx/cashflow"
	"github.com/rustyeddy/chitx/pkg/id"
)

// SQLite is a Store backed by a SQLite file.
type SQLite struct {
	db         *sql.DB
	maxEntries int
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (and if needed creates) the database at path. A
// maxEntries of zero or less means DefaultMaxEntries.
func NewSQLite(path string, maxEntries int) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One writer at a time avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &SQLite{db: db, maxEntries: maxEntries}, nil
}

// Add stores e, filling in ID and Created when empty, then drops entries
// beyond the store's capacity.
func (s *SQLite) Add(ctx context.Context, e Entry) (Entry, error) {
	if e.Created.IsZero() {
		e.Created = time.Now()
	}
	e.Created = e.Created.UTC()
	if e.ID == "" {
		e.ID = id.NewAt(e.Created)
	}
	if e.Inputs.Frequency == "" {
		e.Inputs.Frequency = cashflow.Monthly
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entries
		(id, created, label, periodic_amount, periods, lump_sum, start_date, frequency, rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, formatTime(e.Created), e.Label,
		e.Inputs.PeriodicAmount, e.Inputs.Periods, e.Inputs.LumpSum,
		formatTime(e.Inputs.StartDate), string(e.Inputs.Frequency), e.Rate,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	for i, f := range e.Flows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cash_flows (entry_id, seq, date, amount)
			VALUES (?, ?, ?, ?)`,
			e.ID, i, formatTime(f.Date), f.Amount,
		); err != nil {
			return Entry{}, fmt.Errorf("insert cash flow %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM entries
		WHERE id NOT IN (SELECT id FROM entries ORDER BY id DESC LIMIT ?)`,
		s.maxEntries,
	); err != nil {
		return Entry{}, fmt.Errorf("trim entries: %w", err)
	}
	if err := deleteOrphanFlows(ctx, tx); err != nil {
		return Entry{}, err
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *SQLite) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created, label, periodic_amount, periods, lump_sum, start_date, frequency, rate
		FROM entries
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// Flows are loaded after the cursor is closed; the pool has a single
	// connection.
	for i := range out {
		if out[i].Flows, err = s.flows(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Get returns the entry with the given ID.
func (s *SQLite) Get(ctx context.Context, entryID string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created, label, periodic_amount, periods, lump_sum, start_date, frequency, rate
		FROM entries
		WHERE id = ?`, entryID)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
		}
		return Entry{}, err
	}
	if e.Flows, err = s.flows(ctx, e.ID); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Delete removes one entry and its cash flows.
func (s *SQLite) Delete(ctx context.Context, entryID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, entryID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cash_flows WHERE entry_id = ?`, entryID); err != nil {
		return err
	}
	return tx.Commit()
}

// Clear removes every entry.
func (s *SQLite) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cash_flows; DELETE FROM entries;`)
	return err
}

// Relabel replaces the label of an entry.
func (s *SQLite) Relabel(ctx context.Context, entryID, label string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE entries SET label = ? WHERE id = ?`, strings.TrimSpace(label), entryID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) flows(ctx context.Context, entryID string) (cashflow.Flows, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, amount
		FROM cash_flows
		WHERE entry_id = ?
		ORDER BY seq ASC`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out cashflow.Flows
	for rows.Next() {
		var (
			date string
			f    cashflow.CashFlow
		)
		if err := rows.Scan(&date, &f.Amount); err != nil {
			return nil, err
		}
		if f.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e              Entry
		created, start string
		freq           string
	)
	if err := sc.Scan(
		&e.ID,
		&created,
		&e.Label,
		&e.Inputs.PeriodicAmount,
		&e.Inputs.Periods,
		&e.Inputs.LumpSum,
		&start,
		&freq,
		&e.Rate,
	); err != nil {
		return Entry{}, err
	}

	var err error
	if e.Created, err = parseTime(created); err != nil {
		return Entry{}, err
	}
	if e.Inputs.StartDate, err = parseTime(start); err != nil {
		return Entry{}, err
	}
	e.Inputs.Frequency = cashflow.Frequency(freq)
	return e, nil
}

func deleteOrphanFlows(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM cash_flows
		WHERE entry_id NOT IN (SELECT id FROM entries)`); err != nil {
		return fmt.Errorf("trim cash flows: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}
