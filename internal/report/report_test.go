package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtse/marketing-engine/internal/engine"
)

func sampleAnalysis(t *testing.T) (*engine.Dataset, *engine.Analysis) {
	t.Helper()
	table := engine.Table{
		Columns: []string{"campaign", "spend", "revenue"},
		Rows: [][]string{
			{"A", "100", "50"},
			{"B", "100", "300"},
		},
	}
	ds, err := engine.NormalizeAndValidate(table, []string{engine.ColCampaign, engine.ColSpend, engine.ColRevenue})
	require.NoError(t, err)
	a, err := engine.Analyze(ds)
	require.NoError(t, err)
	return ds, a
}

func TestWritePDF(t *testing.T) {
	_, a := sampleAnalysis(t)
	var buf bytes.Buffer
	meta := Meta{Platform: "MTSE Analytics", Username: "alice", Filename: "q3.csv"}
	require.NoError(t, WritePDF(&buf, meta, a))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "pdf magic header")
	assert.Greater(t, buf.Len(), 500)
}

func TestWriteCSV(t *testing.T) {
	ds, a := sampleAnalysis(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds, a))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"campaign", "spend", "revenue", "ctr", "cpc", "roas", "engagement_rate", "profit"}, rows[0])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "0.5", rows[1][5], "roas column")
	assert.Equal(t, "3", rows[2][5])
	assert.Equal(t, "-50", rows[1][7], "profit column")
}
