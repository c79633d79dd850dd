// Package selection scores candidate tenders and picks the one most worth
// responding to.
package selection

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/yashogale30/rfp-responder/internal/tender"
	"github.com/yashogale30/rfp-responder/internal/textnorm"
)

// ErrNoCandidates is returned when the candidate list is empty. Callers
// treat it as "skip this cycle", not as a fatal condition.
var ErrNoCandidates = errors.New("no candidate tenders available")

const (
	keywordPoints   = 5.0
	keywordScoreCap = 50.0
	urgencyBase     = 30.0
	urgencySlope    = 0.33
	categoryBonus   = 20.0
)

// relevanceKeywords is the fixed sales-relevance vocabulary.
var relevanceKeywords = []string{
	"power", "cable", "electrical", "supply",
	"infrastructure", "metro", "substation",
}

// priorityCategories trigger the category bonus.
var priorityCategories = []string{"power", "electrical", "cable", "infrastructure"}

// Scored pairs a tender with its selection score, for reporting.
type Scored struct {
	Tender *tender.Tender
	Score  float64
}

// SelectBest scores every tender and returns the highest-scoring one.
// Ties keep the earliest tender in input order.
func SelectBest(tenders *tender.Tenders, now time.Time) (*tender.Tender, error) {
	scored, err := Rank(tenders, now)
	if err != nil {
		return nil, err
	}
	return scored[0].Tender, nil
}

// Rank returns all tenders with their scores, best first. The sort is
// stable, so equal scores preserve input order.
func Rank(tenders *tender.Tenders, now time.Time) ([]Scored, error) {
	if tenders == nil || tenders.Len() == 0 {
		return nil, ErrNoCandidates
	}

	scored := make([]Scored, 0, tenders.Len())
	for _, t := range tenders.Items {
		scored = append(scored, Scored{Tender: t, Score: score(t, now)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored, nil
}

func score(t *tender.Tender, now time.Time) float64 {
	return keywordScore(t) + urgencyScore(t, now) + categoryScore(t)
}

// keywordScore gives 5 points per relevance keyword found in the tender
// text, capped at 50.
func keywordScore(t *tender.Tender) float64 {
	text := textnorm.Normalize(strings.Join([]string{
		t.Title,
		t.Sections.Overview,
		t.Sections.ScopeOfSupply,
		t.Category,
	}, " "))

	s := 0.0
	for _, k := range relevanceKeywords {
		if strings.Contains(text, k) {
			s += keywordPoints
		}
	}
	if s > keywordScoreCap {
		s = keywordScoreCap
	}
	return s
}

// urgencyScore rewards near deadlines. Unparseable deadlines score 0.
// Lapsed deadlines also score 0 rather than being excluded or penalized:
// slightly overdue postings stay in the pool on their other merits.
func urgencyScore(t *tender.Tender, now time.Time) float64 {
	deadline, ok := t.Deadline()
	if !ok {
		return 0
	}

	days := tender.DaysUntil(deadline, now)
	if days < 0 {
		return 0
	}

	s := urgencyBase - days*urgencySlope
	if s < 0 {
		return 0
	}
	return s
}

func categoryScore(t *tender.Tender) float64 {
	category := textnorm.Normalize(t.Category)
	for _, term := range priorityCategories {
		if strings.Contains(category, term) {
			return categoryBonus
		}
	}
	return 0
}
