package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/chitx/cashflow"
	"github.com/rustyeddy/chitx/performance"
)

func newSolveCmd(rc *RootConfig) *cobra.Command {
	var showFlows bool

	cmd := &cobra.Command{
		Use:   "solve <flows.csv|->",
		Short: "Solve the XIRR of arbitrary dated cash flows from CSV (date,amount)",
		Long:  `Reads dated cash flows as CSV with a date,amount pair per row and prints
their XIRR. Payments are negative and receipts positive. Use - for stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			flows, err := cashflow.ReadCSV(r)
			if err != nil {
				return err
			}

			res, err := rc.solver().Solve(flows)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := newStyles(out, rc.Config.Log.NoColor)
			sum := cashflow.Summarize(flows)
			level := performance.Classify(res.Rate, rc.Config.Levels)

			fmt.Fprintln(out, "  "+st.Label.Render("Cash flows")+st.Value.Render(fmt.Sprintf("%d", len(flows))))
			fmt.Fprintln(out, "  "+st.Label.Render("Total paid")+st.Value.Render(sum.TotalPaid.StringFixed(2)))
			fmt.Fprintln(out, "  "+st.Label.Render("Total received")+st.Value.Render(sum.TotalReceived.StringFixed(2)))
			fmt.Fprintln(out, "  "+st.Label.Render("XIRR")+st.Good.Render(pct(res.Rate))+"  "+st.Value.Render(level.Label))
			fmt.Fprintln(out, "  "+st.Label.Render("Solver")+st.Muted.Render(
				fmt.Sprintf("%s, %d iterations", res.Method, res.Iterations)))

			if showFlows {
				fmt.Fprintln(out)
				renderFlows(out, st, flows)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showFlows, "flows", false, "Echo the parsed cash flows")
	return cmd
}
