package cashflow

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{"date", "amount"}

// WriteCSV writes the series as date,amount rows preceded by a header.
// Amounts are written with two decimals.
func WriteCSV(w io.Writer, fs Flows) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range fs {
		if err := cw.Write([]string{
			f.Date.Format(DateFormat),
			decimal.NewFromFloat(f.Amount).StringFixed(2),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a date,amount series. The header row is optional. Blank
// lines are skipped by encoding/csv.
func ReadCSV(r io.Reader) (Flows, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var out Flows
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if line == 1 && strings.EqualFold(rec[0], csvHeader[0]) {
			continue
		}

		date, err := ParseDate(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		amt, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q: %w", line, rec[1], err)
		}
		v := amt.InexactFloat64()
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("line %d: amount %q out of range", line, rec[1])
		}
		out = append(out, CashFlow{Date: date, Amount: v})
	}
	return out, nil
}
