package report_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticelab/kscreen/internal/policy"
	"github.com/latticelab/kscreen/internal/report"
	"github.com/latticelab/kscreen/internal/screen"
	"github.com/latticelab/kscreen/internal/testutil"
)

func testPolicy() policy.Policy {
	p := policy.Default()
	p.PairCutoffs = map[string]float64{"H-H": 0.8, "Li-Li": 1.5}
	return p
}

func testOutcomes(t *testing.T) []screen.Outcome {
	t.Helper()
	outcomes, err := screen.Batch([]screen.Item{
		{Name: "H2", Structure: testutil.Chain(t, "H", 2, 0.74)},
		{Name: "LiNet", Structure: testutil.SquareNet(t, "Li", 2.0)},
		{Name: "He", Structure: testutil.Isolated(t, "He")},
		{Name: "bad", Err: errors.New("unreadable structure file")},
	}, testPolicy())
	require.NoError(t, err)
	return outcomes
}

func TestWriteText_H2(t *testing.T) {
	pol := testPolicy()
	res, err := screen.Screen(testutil.Chain(t, "H", 2, 0.74), pol)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, "H2-molecule", res, pol))

	g := goldie.New(t)
	g.Assert(t, "report_h2", buf.Bytes())
}

func TestWriteText_NoBonds(t *testing.T) {
	pol := policy.Default()
	res, err := screen.Screen(testutil.Isolated(t, "He"), pol)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, "lone-helium", res, pol))

	g := goldie.New(t)
	g.Assert(t, "report_nobonds", buf.Bytes())
}

func TestWriteCSV(t *testing.T) {
	rows := make([]report.Row, 0, 4)
	for _, o := range testOutcomes(t) {
		rows = append(rows, report.RowFromOutcome(o))
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, rows))

	g := goldie.New(t)
	g.Assert(t, "batch_csv", buf.Bytes())
}

func TestWriteBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteBatchSummary(&buf, testOutcomes(t)))

	g := goldie.New(t)
	g.Assert(t, "batch_summary", buf.Bytes())
}

func TestRowFromOutcome_Error(t *testing.T) {
	row := report.RowFromOutcome(screen.Outcome{
		Name: "broken",
		Err:  errors.New("bad lattice"),
	})
	assert.Equal(t, "broken", row.Name)
	assert.Equal(t, "bad lattice", row.Error)
	assert.Empty(t, row.Formula)
	assert.False(t, row.HasBond)
}
