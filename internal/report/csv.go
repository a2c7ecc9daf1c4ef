package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mtse/marketing-engine/internal/engine"
)

// WriteCSV re-exports the dataset with the derived ratios appended as extra
// columns, one row per input record in original order.
func WriteCSV(w io.Writer, ds *engine.Dataset, a *engine.Analysis) error {
	cw := csv.NewWriter(w)

	header := append([]string{}, ds.Columns...)
	header = append(header, "ctr", "cpc", "roas", "engagement_rate", "profit")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, rec := range ds.Records {
		row := make([]string, 0, len(header))
		for _, c := range ds.Columns {
			switch c {
			case engine.ColCampaign:
				row = append(row, rec.Campaign)
			case engine.ColKeyword:
				row = append(row, rec.Keyword)
			default:
				row = append(row, formatNum(rec.Field(c)))
			}
		}
		m := a.PerRecord[i]
		row = append(row,
			formatNum(m.CTR), formatNum(round2(m.CPC)), formatNum(round2(m.ROAS)),
			formatNum(m.EngagementRate), formatNum(round2(m.Profit)))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
