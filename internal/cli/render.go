package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rustyeddy/chitx/calculator"
	"github.com/rustyeddy/chitx/cashflow"
	"github.com/rustyeddy/chitx/history"
	"github.com/rustyeddy/chitx/performance"
)

type styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Good  lipgloss.Style
	Bad   lipgloss.Style
	Muted lipgloss.Style
}

// newStyles binds styles to w so colour is only emitted for terminals.
func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		plain := r.NewStyle()
		return styles{
			Title: plain.Bold(true),
			Label: plain.Width(18),
			Value: plain,
			Good:  plain,
			Bad:   plain,
			Muted: plain,
		}
	}
	return styles{
		Title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#9333ea")),
		Label: r.NewStyle().Width(18).Foreground(lipgloss.Color("245")),
		Value: r.NewStyle().Bold(true),
		Good:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#10b981")),
		Bad:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#f59e0b")),
		Muted: r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func pct(r float64) string {
	return fmt.Sprintf("%.2f%%", r*100)
}

func renderResult(w io.Writer, st styles, res calculator.Result, benchmarks []performance.Benchmark, showFlows bool) {
	in := res.Input
	last := res.Flows[len(res.Flows)-1]

	row := func(label, value string) {
		fmt.Fprintln(w, "  "+st.Label.Render(label)+st.Value.Render(value))
	}

	fmt.Fprintln(w, st.Title.Render("Chit fund XIRR"))
	row("Payment", fmt.Sprintf("%.2f x %d (%s from %s)", in.PeriodicAmount, in.Periods, in.Frequency, in.StartDate.Format(cashflow.DateFormat)))
	row("Lump sum", fmt.Sprintf("%.2f on %s", last.Amount, last.Date.Format(cashflow.DateFormat)))
	row("Total paid", res.Summary.TotalPaid.StringFixed(2))
	row("Profit", fmt.Sprintf("%s (%s)", res.Summary.Profit.StringFixed(2), pct(res.Summary.ProfitPct)))

	rateStyle := st.Good
	if res.Rate() < 0.08 {
		rateStyle = st.Bad
	}
	fmt.Fprintln(w, "  "+st.Label.Render("XIRR")+rateStyle.Render(pct(res.Rate()))+"  "+st.Value.Render(res.Level.Label))
	if res.Level.Description != "" {
		fmt.Fprintln(w, "  "+st.Label.Render("")+st.Muted.Render(res.Level.Description))
	}
	fmt.Fprintln(w, "  "+st.Label.Render("Solver")+st.Muted.Render(
		fmt.Sprintf("%s, %d iterations, |npv| %.2g", res.XIRR.Method, res.XIRR.Iterations, res.XIRR.Residual)))

	if len(benchmarks) > 0 {
		fmt.Fprintln(w)
		renderComparison(w, st, res.Rate(), benchmarks)
	}
	if showFlows {
		fmt.Fprintln(w)
		renderFlows(w, st, res.Flows)
	}
}

func renderComparison(w io.Writer, st styles, rate float64, benchmarks []performance.Benchmark) {
	fmt.Fprintln(w, st.Title.Render("Compared with"))
	for _, c := range performance.Compare(rate, benchmarks) {
		marker := "  "
		s := st.Muted
		if c.Yours {
			marker = "> "
			s = st.Value
		}
		fmt.Fprintln(w, "  "+marker+s.Render(c.String()))
	}
	fmt.Fprintf(w, "  %s\n", st.Muted.Render(fmt.Sprintf("beats %d of %d benchmarks", performance.Beaten(rate, benchmarks), len(benchmarks))))
}

func renderFlows(w io.Writer, st styles, flows cashflow.Flows) {
	fmt.Fprintln(w, st.Title.Render("Cash flows"))
	for _, f := range flows {
		s := st.Bad
		if f.Amount > 0 {
			s = st.Good
		}
		fmt.Fprintf(w, "  %s  %s\n", f.Date.Format(cashflow.DateFormat), s.Render(fmt.Sprintf("%14.2f", f.Amount)))
	}
}

func renderEntries(w io.Writer, st styles, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, st.Muted.Render("no saved calculations"))
		return
	}
	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("%-26s  %-20s  %9s  %s", "ID", "CREATED", "XIRR", "LABEL")))
	for _, e := range entries {
		label := e.Label
		if label == "" {
			label = st.Muted.Render(fmt.Sprintf("%.0f x %d -> %.0f", e.Inputs.PeriodicAmount, e.Inputs.Periods, e.Inputs.LumpSum))
		}
		fmt.Fprintf(w, "%-26s  %-20s  %9s  %s\n",
			e.ID, e.Created.Local().Format("2006-01-02 15:04"), pct(e.Rate), strings.TrimSpace(label))
	}
}
