// Package id issues time-sortable identifiers for history entries.
package id

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// entropy is shared so that IDs minted in the same millisecond still sort in
// creation order. ulid.Monotonic is not safe for concurrent use.
var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a ULID for the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a ULID stamped with t.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), entropy)
	if err != nil {
		// Only possible if the entropy source fails or the monotonic
		// counter overflows within one millisecond.
		panic(err)
	}
	return id.String()
}

// Time returns the timestamp encoded in s.
func Time(s string) (time.Time, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse id %q: %w", s, err)
	}
	return ulid.Time(id.Time()).UTC(), nil
}
