package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashogale30/rfp-responder/internal/tender"
)

var now = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func deadlineIn(days int) string {
	return now.AddDate(0, 0, days).Format("2006-01-02")
}

func TestSelectBestEmpty(t *testing.T) {
	_, err := SelectBest(&tender.Tenders{}, now)
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, err = SelectBest(nil, now)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestSelectBestUrgencyDominates(t *testing.T) {
	// Identical text and category, only the deadline differs: the closer
	// deadline must win.
	ts := &tender.Tenders{Items: []*tender.Tender{
		{
			Reference:          "FAR",
			Title:              "Power cable supply",
			Category:           "Power Infrastructure",
			SubmissionDeadline: deadlineIn(60),
		},
		{
			Reference:          "NEAR",
			Title:              "Power cable supply",
			Category:           "Power Infrastructure",
			SubmissionDeadline: deadlineIn(5),
		},
	}}

	best, err := SelectBest(ts, now)
	require.NoError(t, err)
	assert.Equal(t, "NEAR", best.Reference)
}

func TestSelectBestKeywordRelevance(t *testing.T) {
	ts := &tender.Tenders{Items: []*tender.Tender{
		{Reference: "OFFICE", Title: "Office furniture procurement"},
		{
			Reference: "CABLE",
			Title:     "Power cable supply for metro substation",
			Sections:  tender.Sections{Overview: "electrical infrastructure"},
		},
	}}

	best, err := SelectBest(ts, now)
	require.NoError(t, err)
	assert.Equal(t, "CABLE", best.Reference)
}

func TestSelectBestStableTieBreak(t *testing.T) {
	ts := &tender.Tenders{Items: []*tender.Tender{
		{Reference: "FIRST", Title: "cable works"},
		{Reference: "SECOND", Title: "cable works"},
	}}

	best, err := SelectBest(ts, now)
	require.NoError(t, err)
	assert.Equal(t, "FIRST", best.Reference)
}

func TestUrgencyScore(t *testing.T) {
	tests := []struct {
		name     string
		deadline string
		want     float64
	}{
		{"no deadline", "", 0},
		{"unparseable", "soonish", 0},
		{"lapsed deadline scores zero, not negative", deadlineIn(-10), 0},
		{"far deadline floors at zero", deadlineIn(120), 0},
		{"near deadline", deadlineIn(10), 30 - 10*0.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := &tender.Tender{SubmissionDeadline: tt.deadline}
			assert.InDelta(t, tt.want, urgencyScore(tn, now), 1e-9)
		})
	}
}

func TestCategoryBonus(t *testing.T) {
	withBonus := &tender.Tender{Category: "Electrical Works"}
	without := &tender.Tender{Category: "Catering Services"}

	assert.Equal(t, 20.0, categoryScore(withBonus))
	assert.Equal(t, 0.0, categoryScore(without))
}

func TestRankOrdering(t *testing.T) {
	ts := &tender.Tenders{Items: []*tender.Tender{
		{Reference: "LOW", Title: "stationery"},
		{Reference: "HIGH", Title: "power cable electrical substation metro supply", Category: "power"},
	}}

	ranked, err := Rank(ts, now)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "HIGH", ranked[0].Tender.Reference)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}
