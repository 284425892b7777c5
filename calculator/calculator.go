// Package calculator runs a chit-fund calculation end to end: validate the
// form values, build the cash flows, solve for the XIRR and grade it.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/chitx/cashflow"
	"github.com/rustyeddy/chitx/history"
	"github.com/rustyeddy/chitx/performance"
	"github.com/rustyeddy/chitx/xirr"
)

// ErrNoStore is returned by Save on a calculator without a history store.
var ErrNoStore = errors.New("calculator: no history store configured")

// Input holds the values collected from the user.
type Input struct {
	PeriodicAmount float64
	Periods        int
	LumpSum        float64
	StartDate      time.Time
	Frequency      cashflow.Frequency
}

// Validate rejects values the generator and solver are not designed for.
func (in Input) Validate() error {
	if !positiveFinite(in.PeriodicAmount) {
		return fmt.Errorf("periodic amount must be a positive number, got %v", in.PeriodicAmount)
	}
	if in.Periods <= 0 {
		return fmt.Errorf("periods must be a positive integer, got %d", in.Periods)
	}
	if !positiveFinite(in.LumpSum) {
		return fmt.Errorf("lump sum must be a positive number, got %v", in.LumpSum)
	}
	if in.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if _, err := cashflow.ParseFrequency(string(in.Frequency)); err != nil {
		return err
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Result is everything a caller needs to display one calculation.
type Result struct {
	Input   Input
	Flows   cashflow.Flows
	Summary cashflow.Summary
	XIRR    xirr.Result
	Level   performance.Level
}

// Rate is the annualized XIRR.
func (r Result) Rate() float64 { return r.XIRR.Rate }

// Calculator wires the generator, solver and optional history store.
type Calculator struct {
	Solver *xirr.Solver
	Store  history.Store
	Levels []performance.Level
	Logger *zap.Logger
}

// New returns a calculator with default grading levels. store may be nil.
func New(solver *xirr.Solver, store history.Store, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if solver == nil {
		solver = xirr.New(xirr.DefaultParams(), xirr.WithLogger(logger))
	}
	return &Calculator{
		Solver: solver,
		Store:  store,
		Levels: performance.DefaultLevels(),
		Logger: logger,
	}
}

// Calculate validates in, generates its cash flows and solves them.
func (c *Calculator) Calculate(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if in.Frequency == "" {
		in.Frequency = cashflow.Monthly
	}
	if err := in.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid input: %w", err)
	}

	flows := cashflow.GenerateEvery(in.Frequency, in.PeriodicAmount, in.Periods, in.LumpSum, in.StartDate)
	res, err := c.Solver.Solve(flows)
	if err != nil {
		c.Logger.Warn("xirr failed",
			zap.Float64("periodic_amount", in.PeriodicAmount),
			zap.Int("periods", in.Periods),
			zap.Float64("lump_sum", in.LumpSum),
			zap.Error(err),
		)
		return Result{}, fmt.Errorf("solve: %w", err)
	}

	c.Logger.Debug("xirr solved",
		zap.Float64("rate", res.Rate),
		zap.Int("iterations", res.Iterations),
		zap.String("method", string(res.Method)),
	)

	return Result{
		Input:   in,
		Flows:   flows,
		Summary: cashflow.Summarize(flows),
		XIRR:    res,
		Level:   performance.Classify(res.Rate, c.Levels),
	}, nil
}

// Save stores res in the history under label.
func (c *Calculator) Save(ctx context.Context, res Result, label string) (history.Entry, error) {
	if c.Store == nil {
		return history.Entry{}, ErrNoStore
	}
	e, err := c.Store.Add(ctx, history.Entry{
		Label: label,
		Inputs: history.Inputs{
			PeriodicAmount: res.Input.PeriodicAmount,
			Periods:        res.Input.Periods,
			LumpSum:        res.Input.LumpSum,
			StartDate:      res.Input.StartDate,
			Frequency:      res.Input.Frequency,
		},
		Flows: res.Flows,
		Rate:  res.Rate(),
	})
	if err != nil {
		return history.Entry{}, fmt.Errorf("save history: %w", err)
	}
	c.Logger.Info("saved calculation", zap.String("id", e.ID))
	return e, nil
}

// Recalculate reruns a saved entry with the current solver.
func (c *Calculator) Recalculate(ctx context.Context, e history.Entry) (Result, error) {
	return c.Calculate(ctx, Input{
		PeriodicAmount: e.Inputs.PeriodicAmount,
		Periods:        e.Inputs.Periods,
		LumpSum:        e.Inputs.LumpSum,
		StartDate:      e.Inputs.StartDate,
		Frequency:      e.Inputs.Frequency,
	})
}
