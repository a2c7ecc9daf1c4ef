package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		cols []string
		want Classification
	}{
		{"paid ads", []string{ColCampaign, ColImpressions, ColClicks, ColSpend}, PaidAds},
		{"organic social", []string{ColLikes, ColComments, ColShares}, OrganicSocial},
		{"seo", []string{ColKeyword, ColSearchVolume}, SEO},
		{"generic", []string{ColCampaign, ColSpend, ColRevenue}, Generic},
		{"empty", nil, Generic},
		{"paid beats social", []string{ColImpressions, ColClicks, ColLikes, ColComments}, PaidAds},
		{"social beats seo", []string{ColLikes, ColComments, ColKeyword, ColSearchVolume}, OrganicSocial},
		{"impressions alone is not paid", []string{ColImpressions}, Generic},
		{"keyword alone is not seo", []string{ColKeyword}, Generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.cols))
			// total and idempotent: same input, same answer
			assert.Equal(t, Classify(tt.cols), Classify(tt.cols))
		})
	}
}
