package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tplWith(id, category, taskType string) Template {
	return Template{
		ID:       id,
		Title:    "Task " + id,
		Category: category,
		Type:     taskType,
		Priority: PriorityMedium,
		Impact:   ImpactMedium,
		Points:   10,
	}
}

func TestBalanceSmallPoolReturnsAll(t *testing.T) {
	// 4 templates across 2 categories: all returned, no padding
	candidates := []Template{
		tplWith("a1", CategoryBasicInfo, TypeProfile),
		tplWith("a2", CategoryBasicInfo, TypeProfile),
		tplWith("b1", CategoryVisual, TypePhotos),
		tplWith("b2", CategoryVisual, TypePhotos),
	}

	got := Balance(candidates)
	assert.Len(t, got, 4)
	assert.Equal(t, candidates, got)
}

func TestBalanceNeverExceedsTarget(t *testing.T) {
	var candidates []Template
	for i := 0; i < 30; i++ {
		candidates = append(candidates, tplWith(fmt.Sprintf("t%02d", i), CategoryContent, TypePosts))
	}

	got := Balance(candidates)
	assert.Len(t, got, SelectionTarget)
}

func TestBalanceDiversityCap(t *testing.T) {
	// 8 posts tasks ranked highest, then enough variety to fill the batch.
	// Only 4 posts tasks may survive the diversity pass; the rest of the
	// batch must come from other categories.
	var candidates []Template
	for i := 0; i < 8; i++ {
		candidates = append(candidates, tplWith(fmt.Sprintf("p%d", i), CategoryContent, TypePosts))
	}
	for i := 0; i < 4; i++ {
		candidates = append(candidates, tplWith(fmt.Sprintf("v%d", i), CategoryVisual, TypePhotos))
	}
	for i := 0; i < 4; i++ {
		candidates = append(candidates, tplWith(fmt.Sprintf("r%d", i), CategoryEngagement, TypeReviews))
	}

	got := Balance(candidates)
	assert.Len(t, got, SelectionTarget)

	counts := map[string]int{}
	for _, tpl := range got {
		counts[tpl.Category]++
	}
	assert.Equal(t, 4, counts[CategoryContent])
	assert.Equal(t, 4, counts[CategoryVisual])
	assert.Equal(t, 2, counts[CategoryEngagement])
}

func TestBalanceCriticalTierBypassesCaps(t *testing.T) {
	// The first three candidates are admitted even when they would
	// otherwise blow a cap together with later admissions.
	var candidates []Template
	for i := 0; i < 5; i++ {
		candidates = append(candidates, tplWith(fmt.Sprintf("c%d", i), CategoryBasicInfo, TypeProfile))
	}

	got := Balance(candidates)
	// 3 unconditional + 1 under the cap of 4, last one backfilled
	assert.Len(t, got, 5)
}

func TestBalancePreservesScoreOrderAmongAdmitted(t *testing.T) {
	// Candidates arrive score-descending; two candidates that both pass
	// the caps must keep their relative order.
	candidates := []Template{
		tplWith("a", CategoryBasicInfo, TypeProfile),
		tplWith("b", CategoryVisual, TypePhotos),
		tplWith("c", CategoryEngagement, TypeReviews),
		tplWith("d", CategoryContent, TypePosts),
		tplWith("e", CategoryAttributes, TypeQuestions),
	}

	got := Balance(candidates)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, idsOf(got))
}

func idsOf(tpls []Template) []string {
	ids := make([]string, 0, len(tpls))
	for _, tpl := range tpls {
		ids = append(ids, tpl.ID)
	}
	return ids
}

func TestOrderBucketsCriticalFirst(t *testing.T) {
	analysis := Analysis{
		CriticalIssues: []Issue{{Tag: IssueNoPhotos, Text: "Your profile has no photos"}},
	}

	low := Template{ID: "low", Priority: PriorityLow, Impact: ImpactLow, Points: 5}
	high := Template{ID: "high", Priority: PriorityHigh, Impact: ImpactHigh, Points: 30}
	criticalFix := Template{ID: "photos", Type: TypePhotos, Priority: PriorityLow, Impact: ImpactMedium, Points: 10}

	got := Order([]Template{low, high, criticalFix}, analysis)
	assert.Equal(t, []string{"photos", "high", "low"}, idsOf(got))
}

func TestOrderWithinBucketByImpactThenPoints(t *testing.T) {
	analysis := Analysis{}
	a := Template{ID: "a", Priority: PriorityHigh, Impact: ImpactMedium, Points: 40}
	b := Template{ID: "b", Priority: PriorityHigh, Impact: ImpactHigh, Points: 10}
	c := Template{ID: "c", Priority: PriorityHigh, Impact: ImpactMedium, Points: 50}

	got := Order([]Template{a, b, c}, analysis)
	assert.Equal(t, []string{"b", "c", "a"}, idsOf(got))
}

func TestOrderIsStableForEqualTasks(t *testing.T) {
	analysis := Analysis{}
	a := Template{ID: "first", Priority: PriorityMedium, Impact: ImpactMedium, Points: 10}
	b := Template{ID: "second", Priority: PriorityMedium, Impact: ImpactMedium, Points: 10}

	got := Order([]Template{a, b}, analysis)
	assert.Equal(t, []string{"first", "second"}, idsOf(got))
}
