package engine

// Canonical column names the rest of the engine depends on. Uploaded files
// carry arbitrary headers; the normalizer maps them onto these.
const (
	ColCampaign     = "campaign"
	ColImpressions  = "impressions"
	ColClicks       = "clicks"
	ColSpend        = "spend"
	ColRevenue      = "revenue"
	ColLikes        = "likes"
	ColComments     = "comments"
	ColShares       = "shares"
	ColReach        = "reach"
	ColKeyword      = "keyword"
	ColSearchVolume = "search_volume"
	ColSessions     = "sessions"
)

// Table is the raw tabular input contract: an ordered header and string
// cells, exactly as decoded from an uploaded CSV/Excel file.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Record is one normalized row. Numeric fields live in Fields keyed by
// canonical column name; only columns present in the upload have entries.
type Record struct {
	Campaign string             `json:"campaign,omitempty"`
	Keyword  string             `json:"keyword,omitempty"`
	Fields   map[string]float64 `json:"fields"`
}

// Field returns the named numeric field, 0 when the column was absent.
func (r Record) Field(name string) float64 { return r.Fields[name] }

// Dataset is the normalized form of one upload. ParseWarnings counts cell
// values that failed numeric parsing and were coerced to 0.
type Dataset struct {
	Columns       []string
	Records       []Record
	ParseWarnings int
}

// HasColumn reports whether the canonical column survived normalization.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Metrics are the per-record performance ratios. Every ratio with a zero
// denominator is exactly 0, never Inf or NaN.
type Metrics struct {
	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	ROAS           float64 `json:"roas"`
	Engagement     float64 `json:"engagement"`
	EngagementRate float64 `json:"engagement_rate"`
	Profit         float64 `json:"profit"`
}

// Aggregate holds dataset-level totals and means. OverallROAS is total
// revenue over total spend, not the mean of per-row ROAS.
type Aggregate struct {
	TotalSpend        float64 `json:"total_spend"`
	TotalRevenue      float64 `json:"total_revenue"`
	OverallROAS       float64 `json:"overall_roas"`
	AvgCTR            float64 `json:"avg_ctr"`
	AvgCPC            float64 `json:"avg_cpc"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

// Classification tags a dataset by marketing channel, derived once from the
// normalized column set.
type Classification string

const (
	PaidAds       Classification = "paid_ads"
	OrganicSocial Classification = "organic_social"
	SEO           Classification = "seo"
	Generic       Classification = "generic"
)

// RatioField selects which derived ratio the ranker compares on.
type RatioField string

const (
	ByCTR            RatioField = "ctr"
	ByCPC            RatioField = "cpc"
	ByROAS           RatioField = "roas"
	ByEngagementRate RatioField = "engagement_rate"
	ByProfit         RatioField = "profit"
)

func (f RatioField) valueOf(m Metrics) float64 {
	switch f {
	case ByCTR:
		return m.CTR
	case ByCPC:
		return m.CPC
	case ByEngagementRate:
		return m.EngagementRate
	case ByProfit:
		return m.Profit
	default:
		return m.ROAS
	}
}
