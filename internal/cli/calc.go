package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/chitx/history"
)

func newCalcCmd(rc *RootConfig) *cobra.Command {
	var (
		in        inputFlags
		save      bool
		label     string
		showFlows bool
		noCompare bool
	)

	cmd := &cobra.Command{
		Use:     "calc",
		Short:   "Calculate the XIRR of a chit fund",
		Example: `  chitx calc --amount 10000 --periods 24 --lump-sum 300000 --start 2024-01-01
  chitx calc -a 5000 -n 8 -l 45000 -f quarterly --save --label "office chit"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := in.input(rc)
			if err != nil {
				return err
			}

			var store history.Store
			if save {
				s, err := rc.openStore()
				if err != nil {
					return err
				}
				defer s.Close()
				store = s
			}

			calc := rc.calculator(store)
			res, err := calc.Calculate(cmd.Context(), input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			benchmarks := rc.Config.Benchmarks
			if noCompare {
				benchmarks = nil
			}
			renderResult(out, newStyles(out, rc.Config.Log.NoColor), res, benchmarks, showFlows)

			if save {
				e, err := calc.Save(cmd.Context(), res, label)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nsaved as %s\n", e.ID)
			}
			return nil
		},
	}

	in.register(cmd, true)
	cmd.Flags().BoolVar(&save, "save", false, "Save the calculation to history")
	cmd.Flags().StringVar(&label, "label", "", "Label for the saved calculation")
	cmd.Flags().BoolVar(&showFlows, "flows", false, "Print the generated cash flows")
	cmd.Flags().BoolVar(&noCompare, "no-compare", false, "Skip the benchmark comparison")

	return cmd
}
