package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/chitx/history"
)

func newHistoryCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved calculations",
	}

	cmd.AddCommand(
		newHistoryListCmd(rc),
		newHistoryShowCmd(rc),
		newHistoryDeleteCmd(rc),
		newHistoryClearCmd(rc),
		newHistoryLabelCmd(rc),
	)

	return cmd
}

// withStore opens the history database for the duration of fn.
func withStore(rc *RootConfig, fn func(*history.SQLite) error) error {
	s, err := rc.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func newHistoryListCmd(rc *RootConfig) *cobra.Command {
	var (
		limit int
		org   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rc, func(s *history.SQLite) error {
				entries, err := s.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if org {
					fmt.Fprint(out, history.FormatEntriesOrg(entries))
					return nil
				}
				renderEntries(out, newStyles(out, rc.Config.Log.NoColor), entries)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries to show (0 = all)")
	cmd.Flags().BoolVar(&org, "org", false, "Print as Org-mode")
	return cmd
}

func newHistoryShowCmd(rc *RootConfig) *cobra.Command {
	var (
		org       bool
		showFlows bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Recalculate and show a saved calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rc, func(s *history.SQLite) error {
				e, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if org {
					fmt.Fprint(out, history.FormatEntryOrg(e))
					return nil
				}

				res, err := rc.calculator(s).Recalculate(cmd.Context(), e)
				if err != nil {
					return err
				}
				st := newStyles(out, rc.Config.Log.NoColor)
				if e.Label != "" {
					fmt.Fprintln(out, st.Muted.Render(e.Label))
				}
				renderResult(out, st, res, rc.Config.Benchmarks, showFlows)
				fmt.Fprintln(out, "  "+st.Label.Render("Saved XIRR")+st.Muted.Render(
					fmt.Sprintf("%s on %s", pct(e.Rate), e.Created.Local().Format("2006-01-02 15:04"))))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&org, "org", false, "Print the stored entry as Org-mode")
	cmd.Flags().BoolVar(&showFlows, "flows", false, "Print the cash flows")
	return cmd
}

func newHistoryDeleteCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rc, func(s *history.SQLite) error {
				if err := s.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newHistoryClearCmd(rc *RootConfig) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved calculation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear history without --yes")
			}
			return withStore(rc, func(s *history.SQLite) error {
				if err := s.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm")
	return cmd
}

func newHistoryLabelCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "label <id> <label>",
		Short: "Set the label of a saved calculation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rc, func(s *history.SQLite) error {
				if err := s.Relabel(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "labelled %s\n", args[0])
				return nil
			})
		},
	}
}
