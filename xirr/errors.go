package xirr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every *InvalidInputError.
	ErrInvalidInput = errors.New("xirr: invalid cash flows")
	// ErrNonConvergence matches every *NonConvergenceError.
	ErrNonConvergence = errors.New("xirr: did not converge")
)

// InvalidInputError is returned before any iteration when the series cannot
// have a root.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("xirr: invalid cash flows: %s", e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// NonConvergenceError is returned when the iteration budget is spent and the
// best guess fails the relaxed acceptance test.
type NonConvergenceError struct {
	Iterations int
	BestRate   float64
	Residual   float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("xirr: did not converge after %d iterations (best rate %.6f, |npv| %.3g)",
		e.Iterations, e.BestRate, e.Residual)
}

func (e *NonConvergenceError) Is(target error) bool { return target == ErrNonConvergence }
