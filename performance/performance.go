// Package performance grades an annualized return and lines it up against
// common investment benchmarks.
package performance

import (
	"fmt"
	"sort"
)

// Level is a grade for rates at or above Threshold.
type Level struct {
	Threshold   float64 `json:"threshold" yaml:"threshold"`
	Label       string  `json:"label" yaml:"label"`
	Description string  `json:"description" yaml:"description"`
}

// DefaultLevels returns the grades from best to worst.
func DefaultLevels() []Level {
	return []Level{
		{0.25, "Exceptional Returns", "Outperforming most investment options"},
		{0.20, "Excellent Choice", "Your money is working hard"},
		{0.15, "Smart Investment", "Better returns than most traditional options"},
		{0.12, "Decent Returns", "Beating fixed deposit rates"},
		{0.08, "Moderate Returns", "Consider exploring other options for better returns"},
		{0, "Low Returns", "There are ways to improve these returns"},
	}
}

// Classify returns the first level whose threshold is at or below rate.
// levels must be ordered by descending threshold; rates below every threshold
// get the last level.
func Classify(rate float64, levels []Level) Level {
	if len(levels) == 0 {
		return Level{}
	}
	for _, l := range levels {
		if rate >= l.Threshold {
			return l
		}
	}
	return levels[len(levels)-1]
}

// Benchmark is a reference annual return.
type Benchmark struct {
	Name        string  `json:"name" yaml:"name"`
	Rate        float64 `json:"rate" yaml:"rate"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// DefaultBenchmarks returns typical long-run annual returns.
func DefaultBenchmarks() []Benchmark {
	return []Benchmark{
		{"Large Cap Stocks", 0.12, "Top 100 companies by market cap"},
		{"Mid Cap Stocks", 0.15, "101-250 ranked companies"},
		{"Small Cap Stocks", 0.18, "Beyond top 250 companies"},
		{"Gold", 0.10, "Historical gold returns"},
		{"Fixed Deposit", 0.06, "Bank FD returns"},
	}
}

// YourName labels the caller's own rate in a comparison.
const YourName = "Your Chit"

// Comparison is one row of a benchmark table.
type Comparison struct {
	Name  string
	Rate  float64
	Yours bool
	// Beats is true for benchmarks the caller's rate exceeds.
	Beats bool
}

func (c Comparison) String() string {
	return fmt.Sprintf("%-18s %7.2f%%", c.Name, c.Rate*100)
}

// Compare returns rate and every benchmark sorted by rate, highest first.
// Ties keep the caller's row first.
func Compare(rate float64, benchmarks []Benchmark) []Comparison {
	out := make([]Comparison, 0, len(benchmarks)+1)
	out = append(out, Comparison{Name: YourName, Rate: rate, Yours: true})
	for _, b := range benchmarks {
		out = append(out, Comparison{Name: b.Name, Rate: b.Rate, Beats: rate > b.Rate})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rate > out[j].Rate })
	return out
}

// Beaten counts the benchmarks below rate.
func Beaten(rate float64, benchmarks []Benchmark) int {
	n := 0
	for _, b := range benchmarks {
		if rate > b.Rate {
			n++
		}
	}
	return n
}
