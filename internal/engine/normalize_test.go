package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalSynonyms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ad Name", "campaign"},
		{"campaign_name", "campaign"},
		{"Campaign", "campaign"},
		{"Amount_Spent", "spend"},
		{"Cost", "spend"},
		{"cost_per_day", "spend"},
		{"Sales", "revenue"},
		{"Revenue ", "revenue"},
		{"  Impressions", "impressions"},
		{"Search Volume", "search_volume"},
		{"clicks", "clicks"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Canonical(tt.in), "Canonical(%q)", tt.in)
	}
}

func TestCanonicalPriorityFirstMatchWins(t *testing.T) {
	// Header matches both campaign-like and cost-like; campaign has priority.
	assert.Equal(t, "campaign", Canonical("campaign_cost_center"))
}

func TestNormalizeAndValidate(t *testing.T) {
	table := Table{
		Columns: []string{"Ad Name", "Amount_Spent", "Sales"},
		Rows: [][]string{
			{"Spring Promo", "100", "50"},
			{"Summer Promo", "$1,200.50", "300"},
		},
	}
	ds, err := NormalizeAndValidate(table, []string{ColCampaign, ColSpend, ColRevenue})
	require.NoError(t, err)
	assert.Equal(t, []string{"campaign", "spend", "revenue"}, ds.Columns)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "Spring Promo", ds.Records[0].Campaign)
	assert.Equal(t, 1200.50, ds.Records[1].Field(ColSpend))
	assert.Zero(t, ds.ParseWarnings)
}

func TestNormalizeMissingColumns(t *testing.T) {
	table := Table{Columns: []string{"campaign", "spend"}}
	_, err := NormalizeAndValidate(table, []string{ColCampaign, ColSpend, ColRevenue})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{ColRevenue}, verr.Missing)
}

func TestNormalizeLenientCoercion(t *testing.T) {
	table := Table{
		Columns: []string{"campaign", "spend", "revenue"},
		Rows: [][]string{
			{"A", "abc", "50"}, // unparseable spend -> 0 plus a warning
			{"B", "", "10"},    // empty cell -> 0, no warning
			{"C", "-5", "10"},  // negative clamped to 0, no warning
		},
	}
	ds, err := NormalizeAndValidate(table, []string{ColCampaign, ColSpend, ColRevenue})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.ParseWarnings)
	assert.Zero(t, ds.Records[0].Field(ColSpend))
	assert.Zero(t, ds.Records[1].Field(ColSpend))
	assert.Zero(t, ds.Records[2].Field(ColSpend))
	assert.Len(t, ds.Records, 3, "bad numbers never drop rows")
}

func TestNormalizeDuplicateCanonicalFirstWins(t *testing.T) {
	table := Table{
		Columns: []string{"Cost", "Amount_Spent", "campaign", "revenue"},
		Rows:    [][]string{{"10", "99", "A", "5"}},
	}
	ds, err := NormalizeAndValidate(table, []string{ColCampaign, ColSpend, ColRevenue})
	require.NoError(t, err)
	assert.Equal(t, 10.0, ds.Records[0].Field(ColSpend))
	assert.Equal(t, []string{"spend", "campaign", "revenue"}, ds.Columns)
}

func TestNormalizeShortRowsPadWithZero(t *testing.T) {
	table := Table{
		Columns: []string{"campaign", "spend", "revenue"},
		Rows:    [][]string{{"A", "10"}},
	}
	ds, err := NormalizeAndValidate(table, []string{ColCampaign, ColSpend, ColRevenue})
	require.NoError(t, err)
	assert.Zero(t, ds.Records[0].Field(ColRevenue))
}
