package xirr

import (
	"math"
	"time"
)

// YearFractions converts dates to elapsed years since dates[0]. The first
// offset is always 0; later dates before dates[0] give negative offsets.
func YearFractions(dates []time.Time, daysPerYear float64) []float64 {
	out := make([]float64, len(dates))
	if len(dates) == 0 {
		return out
	}
	t0 := dates[0]
	for i, d := range dates {
		out[i] = d.Sub(t0).Hours() / 24 / daysPerYear
	}
	return out
}

// NPV discounts amounts at annual rate r, with times in years.
func NPV(r float64, times, amounts []float64) float64 {
	f, _ := npvAndDerivative(r, times, amounts)
	return f
}

// npvAndDerivative returns f(r) and f'(r) in one pass:
//
//	f(r)  = Σ a_i / (1+r)^t_i
//	f'(r) = Σ -t_i · a_i / (1+r)^(t_i+1)
func npvAndDerivative(r float64, times, amounts []float64) (float64, float64) {
	base := 1 + r
	var f, df float64
	for i, a := range amounts {
		t := times[i]
		disc := math.Pow(base, t)
		f += a / disc
		df -= t * a / (disc * base)
	}
	return f, df
}
