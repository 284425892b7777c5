// Package cashflow builds the dated, signed payment series of a chit fund.
package cashflow

import (
	"fmt"
	"strings"
	"time"
)

// CashFlow is a single dated amount. Outflows are negative, inflows positive.
type CashFlow struct {
	Date   time.Time `json:"date" yaml:"date"`
	Amount float64   `json:"amount" yaml:"amount"`
}

// Flows is an ordered cash-flow series. Consumers treat it as read-only.
type Flows []CashFlow

// Dates returns the dates of the series in order.
func (fs Flows) Dates() []time.Time {
	out := make([]time.Time, len(fs))
	for i, f := range fs {
		out[i] = f.Date
	}
	return out
}

// Amounts returns the amounts of the series in order.
func (fs Flows) Amounts() []float64 {
	out := make([]float64, len(fs))
	for i, f := range fs {
		out[i] = f.Amount
	}
	return out
}

// HasBothSigns reports whether at least one amount is strictly negative and
// at least one strictly positive.
func (fs Flows) HasBothSigns() bool {
	var pos, neg bool
	for _, f := range fs {
		switch {
		case f.Amount > 0:
			pos = true
		case f.Amount < 0:
			neg = true
		}
	}
	return pos && neg
}

func (fs Flows) String() string {
	var b strings.Builder
	for i, f := range fs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %14.2f", f.Date.Format(DateFormat), f.Amount)
	}
	return b.String()
}

// Generate builds the series for a monthly chit: periods outflows of
// periodicAmount starting at start, then a single inflow of lumpSum one month
// after the last payment.
//
// Inputs are trusted; callers validate that the amounts are positive and
// finite and that periods is positive.
func Generate(periodicAmount float64, periods int, lumpSum float64, start time.Time) Flows {
	return GenerateEvery(Monthly, periodicAmount, periods, lumpSum, start)
}

// GenerateEvery is Generate with a configurable payment frequency.
func GenerateEvery(freq Frequency, periodicAmount float64, periods int, lumpSum float64, start time.Time) Flows {
	if periods < 0 {
		periods = 0
	}
	step := freq.Months()

	out := make(Flows, 0, periods+1)
	for i := 0; i < periods; i++ {
		out = append(out, CashFlow{
			Date:   AddMonths(start, i*step),
			Amount: -periodicAmount,
		})
	}

	// The payout lands one full period after the final contribution.
	out = append(out, CashFlow{
		Date:   AddMonths(start, periods*step),
		Amount: lumpSum,
	})
	return out
}
