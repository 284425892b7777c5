package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/chitx/cashflow"
)

func newExportCmd(rc *RootConfig) *cobra.Command {
	var (
		in      inputFlags
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the generated cash flows as CSV (date,amount)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := in.input(rc)
			if err != nil {
				return err
			}
			if input.Frequency == "" {
				input.Frequency = cashflow.Monthly
			}
			if err := input.Validate(); err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}

			flows := cashflow.GenerateEvery(input.Frequency, input.PeriodicAmount, input.Periods, input.LumpSum, input.StartDate)

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}

			if err := cashflow.WriteCSV(w, flows); err != nil {
				return err
			}
			if outPath != "-" {
				rc.Logger.Info("exported cash flows", zap.String("path", outPath), zap.Int("count", len(flows)))
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d cash flows to %s\n", len(flows), outPath)
			}
			return nil
		},
	}

	in.register(cmd, true)
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "Output CSV path (- for stdout)")
	return cmd
}
