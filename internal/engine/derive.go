package engine

// safeDiv implements the engine-wide zero-denominator policy: a ratio whose
// denominator is 0 evaluates to exactly 0.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Derive computes the performance ratios for one record.
func Derive(r Record) Metrics {
	engagement := r.Field(ColLikes) + r.Field(ColComments) + r.Field(ColShares)
	return Metrics{
		CTR:            safeDiv(r.Field(ColClicks), r.Field(ColImpressions)),
		CPC:            safeDiv(r.Field(ColSpend), r.Field(ColClicks)),
		ROAS:           safeDiv(r.Field(ColRevenue), r.Field(ColSpend)),
		Engagement:     engagement,
		EngagementRate: safeDiv(engagement, r.Field(ColReach)),
		Profit:         r.Field(ColRevenue) - r.Field(ColSpend),
	}
}

// DeriveAll computes per-record metrics in row order.
func DeriveAll(ds *Dataset) []Metrics {
	out := make([]Metrics, 0, len(ds.Records))
	for _, r := range ds.Records {
		out = append(out, Derive(r))
	}
	return out
}

// Aggregates computes dataset-level totals and arithmetic means. Unlike the
// per-row ratios, an empty dataset here is a fatal input error.
func Aggregates(ds *Dataset) (Aggregate, error) {
	if len(ds.Records) == 0 {
		return Aggregate{}, ErrEmptyDataset
	}
	var agg Aggregate
	var sumCTR, sumCPC, sumEng float64
	for _, r := range ds.Records {
		m := Derive(r)
		agg.TotalSpend += r.Field(ColSpend)
		agg.TotalRevenue += r.Field(ColRevenue)
		sumCTR += m.CTR
		sumCPC += m.CPC
		sumEng += m.EngagementRate
	}
	n := float64(len(ds.Records))
	agg.OverallROAS = safeDiv(agg.TotalRevenue, agg.TotalSpend)
	agg.AvgCTR = sumCTR / n
	agg.AvgCPC = sumCPC / n
	agg.AvgEngagementRate = sumEng / n
	return agg, nil
}
