// Package report renders engine output for download. It reads only the
// Analysis structure; rounding happens here, at the presentation boundary.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/mtse/marketing-engine/internal/engine"
)

func round2(f float64) float64 { return math.Round(f*100) / 100 }

// Meta labels a report with who asked for it and which file it covers.
type Meta struct {
	Platform string
	Username string
	Filename string
}

// WritePDF renders the enterprise report: header, client/file lines,
// aggregate metric table, best/worst campaigns and recommendations.
func WritePDF(w io.Writer, meta Meta, a *engine.Analysis) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, meta.Platform)
	pdf.Ln(12)
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Enterprise Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, "Client: "+meta.Username)
	pdf.Ln(6)
	pdf.Cell(0, 6, "File: "+meta.Filename)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Channel: "+string(a.Classification))
	pdf.Ln(10)

	rows := [][2]string{
		{"Total Spend", fmt.Sprintf("%.2f", round2(a.Aggregate.TotalSpend))},
		{"Total Revenue", fmt.Sprintf("%.2f", round2(a.Aggregate.TotalRevenue))},
		{"Overall ROAS", fmt.Sprintf("%.2f", round2(a.Aggregate.OverallROAS))},
		{"Avg CTR", fmt.Sprintf("%.4f", a.Aggregate.AvgCTR)},
		{"Avg CPC", fmt.Sprintf("%.2f", round2(a.Aggregate.AvgCPC))},
		{"Avg Engagement Rate", fmt.Sprintf("%.4f", a.Aggregate.AvgEngagementRate)},
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(31, 41, 55)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(90, 8, "Metric", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Value", "1", 1, "R", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range rows {
		pdf.CellFormat(90, 8, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, r[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Highlights")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Best campaign: %s", label(a.Best)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Worst campaign: %s", label(a.Worst)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Recommendations")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, rec := range a.Recommendations {
		pdf.MultiCell(0, 6, "- "+rec, "", "L", false)
	}
	if a.ParseWarnings > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, fmt.Sprintf(
			"Note: %d cell value(s) could not be parsed as numbers and were treated as 0.",
			a.ParseWarnings), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func label(r engine.Record) string {
	if r.Campaign != "" {
		return r.Campaign
	}
	if r.Keyword != "" {
		return r.Keyword
	}
	return "(unnamed)"
}
