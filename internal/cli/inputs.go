package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/chitx/calculator"
	"github.com/rustyeddy/chitx/cashflow"
)

// inputFlags are the calculation inputs shared by calc, export and sweep.
type inputFlags struct {
	amount    float64
	periods   int
	lumpSum   float64
	start     string
	frequency string
}

func (f *inputFlags) register(cmd *cobra.Command, withLumpSum bool) {
	cmd.Flags().Float64VarP(&f.amount, "amount", "a", 0, "amount paid each period (required)")
	cmd.Flags().IntVarP(&f.periods, "periods", "n", 0, "number of payments (required)")
	cmd.Flags().StringVarP(&f.start, "start", "s", "", "first payment date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&f.frequency, "frequency", "f", "", "monthly|quarterly|half-yearly|yearly (default from config)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("periods")

	if withLumpSum {
		cmd.Flags().Float64VarP(&f.lumpSum, "lump-sum", "l", 0, "amount received after the last payment (required)")
		_ = cmd.MarkFlagRequired("lump-sum")
	}
}

func (f *inputFlags) input(rc *RootConfig) (calculator.Input, error) {
	start := today()
	if f.start != "" {
		d, err := cashflow.ParseDate(f.start)
		if err != nil {
			return calculator.Input{}, fmt.Errorf("bad --start: %w", err)
		}
		start = d
	}

	freq := rc.Config.Calculator.Frequency
	if f.frequency != "" {
		parsed, err := cashflow.ParseFrequency(f.frequency)
		if err != nil {
			return calculator.Input{}, fmt.Errorf("bad --frequency: %w", err)
		}
		freq = parsed
	}

	return calculator.Input{
		PeriodicAmount: f.amount,
		Periods:        f.periods,
		LumpSum:        f.lumpSum,
		StartDate:      start,
		Frequency:      freq,
	}, nil
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
