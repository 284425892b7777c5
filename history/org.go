package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/chitx/cashflow"
)

// FormatEntryOrg renders an entry as an Org-mode block: facts in a
// PROPERTIES drawer, the cash flows as a table.
func FormatEntryOrg(e Entry) string {
	title := e.Label
	if title == "" {
		title = fmt.Sprintf("%.0f x %d", e.Inputs.PeriodicAmount, e.Inputs.Periods)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "** Chit: %s (%s)\n", title, shortID(e.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", e.ID)
	fmt.Fprintf(&b, ":CREATED: %s\n", e.Created.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":PERIODIC_AMOUNT: %.2f\n", e.Inputs.PeriodicAmount)
	fmt.Fprintf(&b, ":PERIODS: %d\n", e.Inputs.Periods)
	fmt.Fprintf(&b, ":FREQUENCY: %s\n", e.Inputs.Frequency)
	fmt.Fprintf(&b, ":LUMP_SUM: %.2f\n", e.Inputs.LumpSum)
	fmt.Fprintf(&b, ":START_DATE: %s\n", e.Inputs.StartDate.Format(cashflow.DateFormat))
	fmt.Fprintf(&b, ":XIRR: %.2f%%\n", e.Rate*100)
	b.WriteString(":END:\n")

	if len(e.Flows) > 0 {
		b.WriteString("\n| Date | Amount |\n|------+--------|\n")
		for _, f := range e.Flows {
			fmt.Fprintf(&b, "| %s | %.2f |\n", f.Date.Format(cashflow.DateFormat), f.Amount)
		}
	}
	return b.String()
}

// FormatEntriesOrg renders multiple entries separated by blank lines.
func FormatEntriesOrg(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatEntryOrg(e))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
