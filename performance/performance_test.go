package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rate float64
		want string
	}{
		{"exceptional", 0.31, "Exceptional Returns"},
		{"boundary", 0.20, "Excellent Choice"},
		{"smart", 0.16, "Smart Investment"},
		{"decent", 0.125, "Decent Returns"},
		{"moderate", 0.08, "Moderate Returns"},
		{"low", 0.01, "Low Returns"},
		{"negative", -0.3, "Low Returns"},
	}

	levels := DefaultLevels()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.rate, levels).Label)
		})
	}
}

func TestClassify_NoLevels(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Level{}, Classify(0.5, nil))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	rows := Compare(0.16, DefaultBenchmarks())
	require.Len(t, rows, 6)

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	assert.Equal(t, []string{
		"Small Cap Stocks", YourName, "Mid Cap Stocks", "Large Cap Stocks", "Gold", "Fixed Deposit",
	}, names)

	assert.True(t, rows[1].Yours)
	assert.False(t, rows[0].Beats)
	assert.True(t, rows[2].Beats)
	assert.Equal(t, 4, Beaten(0.16, DefaultBenchmarks()))
}

func TestCompare_TieKeepsYoursFirst(t *testing.T) {
	t.Parallel()

	rows := Compare(0.10, []Benchmark{{Name: "Gold", Rate: 0.10}})
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Yours)
	assert.False(t, rows[1].Beats)
}
