// Package xirr finds the annualized internal rate of return of an irregularly
// dated cash-flow series.
//
// The root of the NPV function is searched with Newton-Raphson steps that are
// only kept when they stay inside the current bracket and reduce |NPV|;
// otherwise the round falls back to bisection. Time is measured in years from
// the first flow, so the root is already an annual rate.
package xirr

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/rustyeddy/chitx/cashflow"
)

// Method records which step produced the accepted rate.
type Method string

const (
	MethodExact     Method = "exact" // the initial guess was already a root
	MethodNewton    Method = "newton"
	MethodBisection Method = "bisection"
	MethodFallback  Method = "fallback"
)

// Result is the accepted rate plus diagnostics.
//
// Rate is the lowest-residual iterate seen during the search, not
// necessarily the last one. Under relaxed acceptance an earlier Newton or
// bisection point can therefore be returned when later steps did worse.
type Result struct {
	Rate       float64
	Iterations int
	Residual   float64 // |NPV| at Rate
	Method     Method

	// Final search bracket and whether it held a sign change at the start.
	Lower, Upper float64
	Bracketed    bool
}

// Solver is safe for concurrent use; Solve keeps all state on the stack.
type Solver struct {
	Params Params
	Logger *zap.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) { s.Logger = l }
}

// New returns a solver using p.
func New(p Params, opts ...Option) *Solver {
	s := &Solver{Params: p}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Solve returns the XIRR of flows using DefaultParams.
func Solve(flows cashflow.Flows) (float64, error) {
	res, err := New(DefaultParams()).Solve(flows)
	if err != nil {
		return 0, err
	}
	return res.Rate, nil
}

func (s *Solver) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Solve returns the annual rate at which the NPV of flows is zero.
//
// Malformed input fails with *InvalidInputError before any iteration. When
// neither the strict nor the relaxed acceptance test passes the error is a
// *NonConvergenceError; a default rate is never substituted.
func (s *Solver) Solve(flows cashflow.Flows) (Result, error) {
	p := s.Params
	if err := p.Validate(); err != nil {
		return Result{}, fmt.Errorf("xirr: invalid params: %w", err)
	}
	if err := validate(flows); err != nil {
		return Result{}, err
	}

	log := s.log()
	times := YearFractions(flows.Dates(), p.DaysPerYear)
	amounts := flows.Amounts()

	guess := roughGuess(times, amounts)
	lower := p.LowerBound
	upper := math.Min(p.UpperBoundMax, math.Max(p.UpperBoundMin, guess*p.BoundScale))
	upper, bracketed := s.bracket(lower, upper, times, amounts)
	if math.IsNaN(guess) || guess <= lower || guess >= upper {
		guess = (lower + upper) / 2
	}

	log.Debug("xirr start",
		zap.Int("flows", len(flows)),
		zap.Float64("guess", guess),
		zap.Float64("lower", lower),
		zap.Float64("upper", upper),
		zap.Bool("bracketed", bracketed),
	)

	fx, dfx := npvAndDerivative(guess, times, amounts)
	curErr := math.Abs(fx)
	method := MethodExact

	best, bestErr, bestMethod := guess, math.Inf(1), method
	track := func() {
		if curErr < bestErr {
			best, bestErr, bestMethod = guess, curErr, method
		}
	}
	track()

	res := Result{Bracketed: bracketed}
	for iter := 1; iter <= p.MaxIterations; iter++ {
		res.Iterations = iter
		if curErr < p.Tolerance {
			res.Iterations = iter - 1
			break
		}

		if math.Abs(dfx) > p.DerivativeFloor {
			next := guess - fx/dfx
			if next > lower && next < upper {
				nf, ndf := npvAndDerivative(next, times, amounts)
				if math.Abs(nf) < curErr {
					guess, fx, dfx, curErr, method = next, nf, ndf, math.Abs(nf), MethodNewton
					track()
					log.Debug("xirr newton", zap.Int("iter", iter), zap.Float64("rate", guess), zap.Float64("npv", fx))
					continue
				}
			}
		}

		// Without a sign change bisection would narrow toward a non-root.
		if !bracketed {
			log.Debug("xirr newton rejected without bracket", zap.Int("iter", iter))
			break
		}

		mid := (lower + upper) / 2
		fl := NPV(lower, times, amounts)
		fm, dfm := npvAndDerivative(mid, times, amounts)
		if fl*fm <= 0 {
			upper = mid
		} else {
			lower = mid
		}
		guess, fx, dfx, curErr, method = mid, fm, dfm, math.Abs(fm), MethodBisection
		track()
		log.Debug("xirr bisection", zap.Int("iter", iter), zap.Float64("rate", guess), zap.Float64("npv", fx))

		if upper-lower < p.Tolerance {
			break
		}
	}

	res.Lower, res.Upper = lower, upper
	res.Rate, res.Residual, res.Method = best, bestErr, bestMethod

	if bestErr < p.Tolerance {
		return res, nil
	}
	if bestErr < p.FallbackTolerance && best > -1 && best < p.FallbackMaxRate {
		res.Method = MethodFallback
		log.Debug("xirr relaxed acceptance", zap.Float64("rate", best), zap.Float64("npv", bestErr))
		return res, nil
	}
	return Result{}, &NonConvergenceError{
		Iterations: res.Iterations,
		BestRate:   best,
		Residual:   bestErr,
	}
}

// bracket widens [lower, upper] until NPV changes sign across it, growing the
// width geometrically. It reports whether a sign change was found.
func (s *Solver) bracket(lower, upper float64, times, amounts []float64) (float64, bool) {
	p := s.Params
	fl := NPV(lower, times, amounts)
	if math.IsNaN(fl) {
		return upper, false
	}
	fu := NPV(upper, times, amounts)
	for i := 0; fl*fu > 0 && i < p.BracketExpansions && upper < maxUpperBound; i++ {
		upper = math.Min(lower+(upper-lower)*p.BracketGrowth, maxUpperBound)
		fu = NPV(upper, times, amounts)
	}
	return upper, fl*fu <= 0
}

// roughGuess annualizes the undiscounted multiple over the longest horizon:
// (in/out)^(1/maxYears) - 1.
func roughGuess(times, amounts []float64) float64 {
	var in, out, maxYears float64
	for i, a := range amounts {
		if a > 0 {
			in += a
		} else {
			out -= a
		}
		if times[i] > maxYears {
			maxYears = times[i]
		}
	}
	simple := in/out - 1
	if maxYears <= 0 {
		return simple
	}
	return math.Pow(1+simple, 1/maxYears) - 1
}

func validate(flows cashflow.Flows) error {
	if len(flows) < 2 {
		return &InvalidInputError{Reason: fmt.Sprintf("need at least 2 cash flows, got %d", len(flows))}
	}
	if !flows.HasBothSigns() {
		var pos bool
		for _, f := range flows {
			if f.Amount > 0 {
				pos = true
				break
			}
		}
		if !pos {
			return &InvalidInputError{Reason: "no positive cash flow"}
		}
		return &InvalidInputError{Reason: "no negative cash flow"}
	}
	for i, f := range flows {
		if math.IsNaN(f.Amount) || math.IsInf(f.Amount, 0) {
			return &InvalidInputError{Reason: fmt.Sprintf("amount %d is not finite", i)}
		}
		if f.Date.IsZero() {
			return &InvalidInputError{Reason: fmt.Sprintf("cash flow %d has no date", i)}
		}
	}
	return nil
}
