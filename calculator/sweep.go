package calculator

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// SweepPoint is the outcome for one lump-sum value. Err is set instead of
// Result when that point could not be solved.
type SweepPoint struct {
	LumpSum float64
	Result  Result
	Err     error
}

// Sweep solves base once per lump sum, running up to workers calculations at
// a time. Points are returned in the order of lumpSums. A failing point does
// not stop the others; only context cancellation aborts the sweep.
func (c *Calculator) Sweep(ctx context.Context, base Input, lumpSums []float64, workers int) ([]SweepPoint, error) {
	if workers <= 0 {
		workers = 1
	}

	out := make([]SweepPoint, len(lumpSums))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, lump := range lumpSums {
		i, lump := i, lump
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in := base
			in.LumpSum = lump
			res, err := c.Calculate(gctx, in)
			out[i] = SweepPoint{LumpSum: lump, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Steps returns from, from+step, ... up to and including to. A non-positive
// step or to < from yields just from.
func Steps(from, to, step float64) []float64 {
	if step <= 0 || to < from {
		return []float64{from}
	}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}
