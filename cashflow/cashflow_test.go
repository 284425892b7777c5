package cashflow

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_ChitExample(t *testing.T) {
	t.Parallel()

	start := day(2024, 1, 1)
	fs := Generate(10000, 24, 300000, start)

	require.Len(t, fs, 25)
	assert.Equal(t, CashFlow{Date: day(2024, 1, 1), Amount: -10000}, fs[0])
	assert.Equal(t, CashFlow{Date: day(2025, 12, 1), Amount: -10000}, fs[23])
	assert.Equal(t, CashFlow{Date: day(2026, 1, 1), Amount: 300000}, fs[24])

	// start must be untouched
	assert.Equal(t, day(2024, 1, 1), start)
}

func TestGenerate_LengthAndSigns(t *testing.T) {
	t.Parallel()

	for _, periods := range []int{1, 2, 12, 60} {
		fs := Generate(100, periods, 1300, day(2024, 3, 15))
		assert.Len(t, fs, periods+1)
		assert.True(t, fs.HasBothSigns())
		for _, f := range fs[:periods] {
			assert.Equal(t, -100.0, f.Amount)
		}
		assert.Equal(t, 1300.0, fs[periods].Amount)
	}
}

func TestGenerateEvery_Quarterly(t *testing.T) {
	t.Parallel()

	fs := GenerateEvery(Quarterly, 500, 4, 2200, day(2024, 1, 10))
	require.Len(t, fs, 5)
	assert.Equal(t, day(2024, 4, 10), fs[1].Date)
	assert.Equal(t, day(2024, 10, 10), fs[3].Date)
	assert.Equal(t, day(2025, 1, 10), fs[4].Date)
}

func TestAddMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"simple", day(2024, 1, 15), 1, day(2024, 2, 15)},
		{"leap clamp", day(2024, 1, 31), 1, day(2024, 2, 29)},
		{"non-leap clamp", day(2023, 1, 31), 1, day(2023, 2, 28)},
		{"year rollover", day(2024, 11, 30), 3, day(2025, 2, 28)},
		{"zero", day(2024, 5, 5), 0, day(2024, 5, 5)},
		{"negative", day(2024, 3, 31), -1, day(2024, 2, 29)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}

func TestParseFrequency(t *testing.T) {
	t.Parallel()

	f, err := ParseFrequency("")
	require.NoError(t, err)
	assert.Equal(t, Monthly, f)

	f, err = ParseFrequency("Quarterly")
	require.NoError(t, err)
	assert.Equal(t, 3, f.Months())

	_, err = ParseFrequency("weekly")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(Generate(10000.10, 24, 300000, day(2024, 1, 1)))
	assert.Equal(t, "240002.4", s.TotalPaid.String())
	assert.Equal(t, "300000", s.TotalReceived.String())
	assert.Equal(t, "59997.6", s.Profit.String())
	assert.InDelta(t, 0.24998, s.ProfitPct, 1e-5)
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	fs := Generate(1000, 3, 3100, day(2024, 1, 1))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, fs))
	assert.True(t, strings.HasPrefix(buf.String(), "date,amount\n2024-01-01,-1000.00\n"))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, fs, got)
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("2024-13-01,100\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("2024-01-01,abc\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("2024-01-01\n"))
	assert.Error(t, err)

	fs, err := ReadCSV(strings.NewReader("2024-01-01,-5\n2024-06-01, 6\n"))
	require.NoError(t, err)
	assert.Len(t, fs, 2)
}
