package cashflow

import (
	"github.com/shopspring/decimal"
)

// Summary holds the undiscounted totals of a series.
type Summary struct {
	TotalPaid     decimal.Decimal
	TotalReceived decimal.Decimal
	Profit        decimal.Decimal
	// ProfitPct is Profit/TotalPaid, as a fraction. Zero when nothing was paid.
	ProfitPct float64
}

// Summarize adds up the series with exact decimal arithmetic so that totals
// like 24 x 10000.10 do not pick up float noise.
func Summarize(fs Flows) Summary {
	var s Summary
	for _, f := range fs {
		amt := decimal.NewFromFloat(f.Amount)
		if amt.IsNegative() {
			s.TotalPaid = s.TotalPaid.Add(amt.Neg())
		} else {
			s.TotalReceived = s.TotalReceived.Add(amt)
		}
	}
	s.Profit = s.TotalReceived.Sub(s.TotalPaid)
	if s.TotalPaid.IsPositive() {
		s.ProfitPct = s.Profit.Div(s.TotalPaid).InexactFloat64()
	}
	return s
}
