package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/chitx/history"
	"github.com/rustyeddy/chitx/xirr"
)

type runner struct {
	t  *testing.T
	db string
}

func newRunner(t *testing.T) *runner {
	t.Helper()
	return &runner{t: t, db: filepath.Join(t.TempDir(), "history.sqlite")}
}

func (r *runner) run(stdin string, args ...string) (string, error) {
	r.t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color", "--log-level=error", "--db=" + r.db}, args...))

	err := cmd.Execute()
	return out.String(), err
}

var chitArgs = []string{"--amount=10000", "--periods=24", "--lump-sum=300000", "--start=2024-01-01"}

func savedID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "saved as ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "saved as "))
		}
	}
	t.Fatalf("no saved id in output:\n%s", out)
	return ""
}

func storedRate(t *testing.T, db, id string) float64 {
	t.Helper()

	s, err := history.NewSQLite(db, 0)
	require.NoError(t, err)
	defer s.Close()

	e, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	return e.Rate
}

func TestVersion(t *testing.T) {
	out, err := newRunner(t).run("", "version")
	require.NoError(t, err)
	assert.Equal(t, "chitx dev\n", out)
}

func TestCalc(t *testing.T) {
	out, err := newRunner(t).run("", append([]string{"calc", "--flows"}, chitArgs...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Chit fund XIRR")
	assert.Contains(t, out, "240000.00")
	assert.Contains(t, out, "60000.00")
	assert.Contains(t, out, "2026-01-01")
	assert.Contains(t, out, "Your Chit")
	assert.Contains(t, out, "Cash flows")
	assert.NotContains(t, out, "saved as")
}

func TestCalc_RequiresFlags(t *testing.T) {
	_, err := newRunner(t).run("", "calc", "--amount=10000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestCalc_BadInput(t *testing.T) {
	r := newRunner(t)

	_, err := r.run("", "calc", "--amount=0", "--periods=24", "--lump-sum=300000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input")

	_, err = r.run("", append([]string{"calc", "--frequency=weekly"}, chitArgs...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--frequency")

	_, err = r.run("", "calc", "--amount=1", "--periods=2", "--lump-sum=3", "--start=01/02/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start")
}

func TestHistoryLifecycle(t *testing.T) {
	r := newRunner(t)

	out, err := r.run("", append([]string{"calc", "--save", "--label=office"}, chitArgs...)...)
	require.NoError(t, err)
	id := savedID(t, out)

	out, err = r.run("", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "office")

	out, err = r.run("", "history", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "office")
	assert.Contains(t, out, "Chit fund XIRR")
	assert.Contains(t, out, "Saved XIRR")
	assert.Contains(t, out, pct(storedRate(t, r.db, id)))

	out, err = r.run("", "history", "show", "--org", id)
	require.NoError(t, err)
	assert.Contains(t, out, ":ID: "+id)

	out, err = r.run("", "history", "label", id, "family")
	require.NoError(t, err)
	assert.Equal(t, "labelled "+id+"\n", out)
	out, err = r.run("", "history", "list", "--org")
	require.NoError(t, err)
	assert.Contains(t, out, "family")

	out, err = r.run("", "history", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted "+id)

	_, err = r.run("", "history", "show", id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, history.ErrNotFound))
}

func TestHistoryClear(t *testing.T) {
	r := newRunner(t)

	_, err := r.run("", append([]string{"calc", "--save"}, chitArgs...)...)
	require.NoError(t, err)

	_, err = r.run("", "history", "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	_, err = r.run("", "history", "clear", "--yes")
	require.NoError(t, err)

	out, err := r.run("", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no saved calculations")
}

func TestSolve_Stdin(t *testing.T) {
	csv := "date,amount\n2023-01-01,-1000\n2024-01-01,1100\n"

	out, err := newRunner(t).run(csv, "solve", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "10.00%")
	assert.Contains(t, out, "1000.00")
}

func TestSolve_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flows.csv")
	require.NoError(t, os.WriteFile(path, []byte("2023-01-01,-1000\n2024-01-01,1100\n"), 0o644))

	out, err := newRunner(t).run("", "solve", path)
	require.NoError(t, err)
	assert.Contains(t, out, "10.00%")
}

func TestSolve_InvalidFlows(t *testing.T) {
	_, err := newRunner(t).run("2023-01-01,-1000\n2024-01-01,-1100\n", "solve", "-")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xirr.ErrInvalidInput))
}

func TestExport(t *testing.T) {
	r := newRunner(t)

	out, err := r.run("", append([]string{"export"}, chitArgs...)...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 26)
	assert.Equal(t, "date,amount", lines[0])
	assert.Equal(t, "2024-01-01,-10000.00", lines[1])
	assert.Equal(t, "2026-01-01,300000.00", lines[25])

	// Round trip through solve.
	path := filepath.Join(t.TempDir(), "flows.csv")
	_, err = r.run("", append([]string{"export", "--out=" + path}, chitArgs...)...)
	require.NoError(t, err)

	solved, err := r.run("", "solve", path)
	require.NoError(t, err)
	calc, err := r.run("", append([]string{"calc", "--no-compare"}, chitArgs...)...)
	require.NoError(t, err)

	i := strings.Index(calc, "XIRR ")
	require.GreaterOrEqual(t, i, 0)
	rate := strings.Fields(calc[i+len("XIRR"):])[0]
	assert.Contains(t, solved, rate)
}

func TestSweep(t *testing.T) {
	out, err := newRunner(t).run("", "sweep",
		"--amount=10000", "--periods=24", "--start=2024-01-01",
		"--from=250000", "--to=350000", "--step=50000", "--workers=2")
	require.NoError(t, err)

	assert.Contains(t, out, "250000.00")
	assert.Contains(t, out, "300000.00")
	assert.Contains(t, out, "350000.00")
	assert.NotContains(t, out, "400000.00")
}

func TestSweep_BadRange(t *testing.T) {
	_, err := newRunner(t).run("", "sweep",
		"--amount=10000", "--periods=24", "--from=300000", "--to=200000", "--step=1000")
	require.Error(t, err)
}

func TestConfigInitAndValidate(t *testing.T) {
	r := newRunner(t)
	path := filepath.Join(t.TempDir(), "chitx.yaml")

	out, err := r.run("", "config", "init", "--output="+path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	out, err = r.run("", "config", "validate", "--file="+path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	_, err = r.run("", "--config="+path, "calc", "--amount=10000", "--periods=24", "--lump-sum=300000", "--start=2024-01-01")
	require.NoError(t, err)
}

func TestConfigValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver:\n  max_iterations: 0\n"), 0o644))

	_, err := newRunner(t).run("", "config", "validate", "--file="+path)
	require.Error(t, err)
}
