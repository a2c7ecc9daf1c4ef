package engine

// Classify assigns exactly one channel classification from the normalized
// column set. Rules run top to bottom, first match wins, Generic is the
// fallback. Pure function of the names; cell values are never inspected.
func Classify(columns []string) Classification {
	has := make(map[string]bool, len(columns))
	for _, c := range columns {
		has[c] = true
	}
	switch {
	case has[ColImpressions] && has[ColClicks]:
		return PaidAds
	case has[ColLikes] && has[ColComments]:
		return OrganicSocial
	case has[ColKeyword] && has[ColSearchVolume]:
		return SEO
	default:
		return Generic
	}
}
