package engine

import (
	"strconv"
	"strings"
)

func norm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

// Canonical maps a free-form column header onto its canonical name. Synonym
// matching is substring-based on the lowered, underscored header, checked in
// fixed priority: campaign-like, then spend/cost-like, then revenue/sales-like.
// First match wins, so a header never maps to two canonical names.
func Canonical(name string) string {
	n := norm(name)
	switch {
	case strings.Contains(n, "campaign") || strings.Contains(n, "ad_name"):
		return ColCampaign
	case strings.Contains(n, "spend") || strings.Contains(n, "spent") || strings.Contains(n, "cost"):
		return ColSpend
	case strings.Contains(n, "revenue") || strings.Contains(n, "sales"):
		return ColRevenue
	}
	return n
}

// NormalizeAndValidate canonicalizes the table's headers, checks the caller's
// required set, and coerces numeric cells. A cell that fails to parse becomes
// 0 and bumps Dataset.ParseWarnings; rows are never dropped for bad numbers.
// When two headers collapse onto the same canonical name the first occurrence
// wins and later duplicates are ignored.
func NormalizeAndValidate(t Table, required []string) (*Dataset, error) {
	cols := make([]string, 0, len(t.Columns))
	colIdx := make(map[string]int, len(t.Columns)) // canonical name -> source column index
	for i, c := range t.Columns {
		cn := Canonical(c)
		if cn == "" {
			continue
		}
		if _, dup := colIdx[cn]; dup {
			continue
		}
		colIdx[cn] = i
		cols = append(cols, cn)
	}

	var missing []string
	for _, req := range required {
		if _, ok := colIdx[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	ds := &Dataset{Columns: cols, Records: make([]Record, 0, len(t.Rows))}
	for _, row := range t.Rows {
		rec := Record{Fields: make(map[string]float64, len(cols))}
		for _, cn := range cols {
			idx := colIdx[cn]
			var cell string
			if idx < len(row) {
				cell = strings.TrimSpace(row[idx])
			}
			switch cn {
			case ColCampaign:
				rec.Campaign = cell
			case ColKeyword:
				rec.Keyword = cell
			default:
				v, ok := parseNumber(cell)
				if !ok {
					ds.ParseWarnings++
				}
				rec.Fields[cn] = v
			}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// parseNumber parses a cell leniently: currency symbols, thousands commas and
// percent signs are stripped first. An empty cell is 0 without a warning; a
// non-empty cell that still fails to parse is 0 with ok=false. Negative
// values are clamped to 0, matching the non-negative field contract.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, true
	}
	cleaned := strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if v < 0 {
		return 0, true
	}
	return v, true
}
