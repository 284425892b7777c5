package cashflow

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the ISO-8601 layout used for cash-flow dates.
const DateFormat = "2006-01-02"

// Frequency is the spacing between two contributions.
type Frequency string

const (
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	HalfYearly Frequency = "half-yearly"
	Yearly     Frequency = "yearly"
)

// Months returns the number of calendar months in one period. Unknown values
// fall back to one month.
func (f Frequency) Months() int {
	switch f {
	case Quarterly:
		return 3
	case HalfYearly:
		return 6
	case Yearly:
		return 12
	default:
		return 1
	}
}

// ParseFrequency accepts the names above, case-insensitively. The empty string
// is monthly.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Monthly, nil
	case Monthly, Quarterly, HalfYearly, Yearly:
		return f, nil
	default:
		return "", fmt.Errorf("unknown frequency %q (want monthly|quarterly|half-yearly|yearly)", s)
	}
}

// AddMonths returns t shifted by n calendar months. Like Excel's EDATE the day
// is clamped to the last day of the target month, so Jan 31 + 1 month is the
// last day of February. t itself is never modified.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate parses a YYYY-MM-DD date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q want format %q: %w", s, DateFormat, err)
	}
	return t, nil
}
