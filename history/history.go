// Package history keeps past calculations so they can be listed, relabelled
// and exported later.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/rustyeddy/chitx/cashflow"
)

// DefaultMaxEntries is how many calculations a store keeps before dropping
// the oldest.
const DefaultMaxEntries = 50

// ErrNotFound is returned for an unknown entry ID.
var ErrNotFound = errors.New("history entry not found")

// Inputs are the form values a calculation was run with.
type Inputs struct {
	PeriodicAmount float64
	Periods        int
	LumpSum        float64
	StartDate      time.Time
	Frequency      cashflow.Frequency
}

// Entry is one saved calculation.
type Entry struct {
	ID      string
	Created time.Time
	Label   string

	Inputs Inputs
	Flows  cashflow.Flows
	Rate   float64
}

// Store persists entries, newest first.
type Store interface {
	Add(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context, limit int) ([]Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Relabel(ctx context.Context, id, label string) error
	Close() error
}
