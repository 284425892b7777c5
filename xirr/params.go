package xirr

import "fmt"

// Params are the numerical knobs of the solver. DefaultParams returns the
// values the calculator ships with; tests shrink them to force edge paths.
type Params struct {
	// Tolerance is the |NPV| below which a rate is accepted, and the bracket
	// width below which bisection stops.
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
	// MaxIterations caps the hybrid Newton/bisection loop.
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"`

	// LowerBound is the fixed floor of the search. Must be > -1.
	LowerBound float64 `json:"lower_bound" yaml:"lower_bound"`
	// The upper bound is BoundScale x rough guess, clamped to
	// [UpperBoundMin, UpperBoundMax].
	UpperBoundMin float64 `json:"upper_bound_min" yaml:"upper_bound_min"`
	UpperBoundMax float64 `json:"upper_bound_max" yaml:"upper_bound_max"`
	BoundScale    float64 `json:"bound_scale" yaml:"bound_scale"`

	// DerivativeFloor disables the Newton step when |f'| is not above it.
	DerivativeFloor float64 `json:"derivative_floor" yaml:"derivative_floor"`

	// A best guess that did not meet Tolerance is still accepted when its
	// residual is below FallbackTolerance and it lies in (-1, FallbackMaxRate).
	FallbackTolerance float64 `json:"fallback_tolerance" yaml:"fallback_tolerance"`
	FallbackMaxRate   float64 `json:"fallback_max_rate" yaml:"fallback_max_rate"`

	// DaysPerYear converts day offsets to year fractions.
	DaysPerYear float64 `json:"days_per_year" yaml:"days_per_year"`

	// When f(lower) and f(upper) share a sign the bracket width is multiplied
	// by BracketGrowth up to BracketExpansions times.
	BracketExpansions int     `json:"bracket_expansions" yaml:"bracket_expansions"`
	BracketGrowth     float64 `json:"bracket_growth" yaml:"bracket_growth"`
}

// maxUpperBound is the hard ceiling for bracket expansion.
const maxUpperBound = 1e6

// DefaultParams returns the production solver settings.
func DefaultParams() Params {
	return Params{
		Tolerance:         1e-7,
		MaxIterations:     50,
		LowerBound:        -0.99,
		UpperBoundMin:     1,
		UpperBoundMax:     100,
		BoundScale:        10,
		DerivativeFloor:   1e-7,
		FallbackTolerance: 0.01,
		FallbackMaxRate:   100,
		DaysPerYear:       365,
		BracketExpansions: 20,
		BracketGrowth:     2,
	}
}

// Validate reports the first inconsistent setting.
func (p Params) Validate() error {
	switch {
	case p.Tolerance <= 0:
		return fmt.Errorf("tolerance must be positive")
	case p.MaxIterations <= 0:
		return fmt.Errorf("max_iterations must be positive")
	case p.LowerBound <= -1:
		return fmt.Errorf("lower_bound must be greater than -1")
	case p.UpperBoundMin <= p.LowerBound:
		return fmt.Errorf("upper_bound_min must be greater than lower_bound")
	case p.UpperBoundMax < p.UpperBoundMin:
		return fmt.Errorf("upper_bound_max must be at least upper_bound_min")
	case p.BoundScale <= 0:
		return fmt.Errorf("bound_scale must be positive")
	case p.DerivativeFloor < 0:
		return fmt.Errorf("derivative_floor must not be negative")
	case p.FallbackTolerance < 0:
		return fmt.Errorf("fallback_tolerance must not be negative")
	case p.FallbackMaxRate <= p.LowerBound:
		return fmt.Errorf("fallback_max_rate must be greater than lower_bound")
	case p.DaysPerYear <= 0:
		return fmt.Errorf("days_per_year must be positive")
	case p.BracketExpansions < 0:
		return fmt.Errorf("bracket_expansions must not be negative")
	case p.BracketExpansions > 0 && p.BracketGrowth <= 1:
		return fmt.Errorf("bracket_growth must be greater than 1")
	}
	return nil
}
