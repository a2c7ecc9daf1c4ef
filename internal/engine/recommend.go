package engine

// Band thresholds for the recommendation rules. Inherited values; treat as
// configuration, not sacred.
const (
	ROASBreakEven = 1.0
	ROASStrong    = 2.0

	EngagementWeak   = 0.02
	EngagementHooks  = 0.04
	EngagementStrong = 0.06
)

// Recommend produces the ordered rule-based recommendations for a dataset.
// The ROAS ladder applies when both revenue and spend columns are present;
// otherwise a single channel-appropriate fallback fires. The engagement
// ladder runs independently for organic social datasets. Within each ladder
// the first matching band wins.
func Recommend(ds *Dataset, agg Aggregate, class Classification) []string {
	var recs []string

	switch {
	case ds.HasColumn(ColRevenue) && ds.HasColumn(ColSpend):
		switch {
		case agg.OverallROAS < ROASBreakEven:
			recs = append(recs, "ROAS is below profitability. Pause or rework the campaigns losing money before adding spend.")
		case agg.OverallROAS < ROASStrong:
			recs = append(recs, "ROAS is moderate. Scale budget into your best performing campaigns and cut the laggards.")
		default:
			recs = append(recs, "ROAS is strong. Increase budget to capture more volume while efficiency holds.")
		}
	case class == PaidAds:
		recs = append(recs, "Improve click-through rate: refresh ad creatives and tighten audience targeting.")
	case ds.HasColumn(ColSessions):
		recs = append(recs, "Improve conversion: review landing pages to turn existing sessions into outcomes.")
	default:
		recs = append(recs, "Focus on trend analysis: track these metrics over time to find what moves performance.")
	}

	if class == OrganicSocial {
		rate := agg.AvgEngagementRate
		switch {
		case rate > EngagementStrong:
			recs = append(recs, "Engagement is viral territory. Double down on this content format.")
		case rate > EngagementHooks:
			recs = append(recs, "Strong growth: engagement is healthy, keep the current content cadence.")
		case rate > EngagementWeak:
			recs = append(recs, "Content needs better hooks: test stronger openings and clearer calls to action.")
		default:
			recs = append(recs, "Weak content strategy: engagement is low, rethink formats and posting times.")
		}
	}

	return recs
}
