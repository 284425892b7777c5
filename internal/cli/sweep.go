package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/chitx/calculator"
)

func newSweepCmd(rc *RootConfig) *cobra.Command {
	var (
		in      inputFlags
		from    float64
		to      float64
		step    float64
		workers int
	)

	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Show how the XIRR changes across a range of lump sums",
		Example: `  chitx sweep --amount 10000 --periods 24 --start 2024-01-01 --from 250000 --to 350000 --step 10000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if step <= 0 {
				return fmt.Errorf("--step must be positive")
			}
			if to < from {
				return fmt.Errorf("--to must not be below --from")
			}
			input, err := in.input(rc)
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = rc.Config.Calculator.SweepWorkers
			}

			lumps := calculator.Steps(from, to, step)
			rc.Logger.Debug("sweep",
				zap.Int("points", len(lumps)),
				zap.Int("workers", workers),
			)

			points, err := rc.calculator(nil).Sweep(cmd.Context(), input, lumps, workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := newStyles(out, rc.Config.Log.NoColor)
			fmt.Fprintln(out, st.Title.Render(fmt.Sprintf("%14s  %9s  %s", "LUMP SUM", "XIRR", "LEVEL")))
			for _, p := range points {
				if p.Err != nil {
					fmt.Fprintf(out, "%14.2f  %9s  %s\n", p.LumpSum, "-", st.Bad.Render(p.Err.Error()))
					continue
				}
				fmt.Fprintf(out, "%14.2f  %9s  %s\n", p.LumpSum, pct(p.Result.Rate()), p.Result.Level.Label)
			}
			return nil
		},
	}

	in.register(cmd, false)
	cmd.Flags().Float64Var(&from, "from", 0, "First lump sum (required)")
	cmd.Flags().Float64Var(&to, "to", 0, "Last lump sum (required)")
	cmd.Flags().Float64Var(&step, "step", 0, "Lump sum increment (required)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel calculations (default from config)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("step")

	return cmd
}
