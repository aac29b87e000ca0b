package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []Template {
	return []Template{
		{ID: "add_business_hours", Title: "Add opening hours", Type: TypeProfile, Category: CategoryBasicInfo, Priority: PriorityHigh, Impact: ImpactHigh, Points: 30, EstimatedTime: "10 minutes"},
		{ID: "upload_photos", Title: "Upload 5 new photos", Type: TypePhotos, Category: CategoryVisual, Priority: PriorityHigh, Impact: ImpactHigh, Points: 25, Repeatable: true, RepeatFrequency: "monthly", EstimatedTime: "20 minutes"},
		{ID: "respond_reviews", Title: "Respond to recent reviews", Type: TypeReviews, Category: CategoryEngagement, Priority: PriorityHigh, Impact: ImpactMedium, Points: 15, Repeatable: true, RepeatFrequency: "weekly", EstimatedTime: "15 minutes"},
		{ID: "create_post", Title: "Publish a weekly post", Type: TypePosts, Category: CategoryContent, Priority: PriorityMedium, Impact: ImpactMedium, Points: 20, Repeatable: true, RepeatFrequency: "weekly", EstimatedTime: "15 minutes"},
		{ID: "add_website", Title: "Add your website", Type: TypeProfile, Category: CategoryBasicInfo, Priority: PriorityMedium, Impact: ImpactHigh, Points: 20, EstimatedTime: "5 minutes"},
		{ID: "check_insights", Title: "Review your monthly insights", Type: TypeInsights, Category: CategoryContent, Priority: PriorityLow, Impact: ImpactLow, Points: 10, Repeatable: true, RepeatFrequency: "monthly", EstimatedTime: "10 minutes"},
	}
}

func testInput() Input {
	return Input{
		Catalog: testCatalog(),
		Snapshot: Snapshot{
			Name:        "Kopi Selatan",
			Address:     "12 Jalan Riau",
			Rating:      3.8,
			ReviewCount: 12,
			PhotoCount:  2,
		},
		Weights: DefaultWeights(),
		Now:     time.Date(2025, 10, 30, 9, 0, 0, 0, time.UTC),
	}
}

func TestGenerateFullPipeline(t *testing.T) {
	result := Generate(testInput())

	require.Equal(t, StatusOK, result.Status)
	require.NotEmpty(t, result.Tasks)
	assert.Len(t, result.Recommendations, len(result.Tasks))
	assert.Greater(t, result.TotalEstimatedMinutes, 0)

	// Missing hours is a critical issue; its fix must lead the batch
	assert.Equal(t, "add_business_hours", result.Tasks[0].ID)
}

func TestGenerateDeterministic(t *testing.T) {
	first := Generate(testInput())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Generate(testInput()))
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	in := testInput()
	in.Catalog = nil

	result := Generate(in)
	assert.Equal(t, StatusNoAvailableTasks, result.Status)
	assert.Empty(t, result.Tasks)
}

func TestGenerateExcludesActiveTitles(t *testing.T) {
	in := testInput()
	in.ActiveTitles = []string{"Add opening hours"}

	result := Generate(in)
	assert.NotContains(t, idsOf(result.Tasks), "add_business_hours")
}

func TestGenerateNonRepeatableExclusion(t *testing.T) {
	in := testInput()
	in.Completions = map[string]time.Time{
		"Add your website": in.Now.AddDate(0, -2, 0),
	}

	result := Generate(in)
	assert.NotContains(t, idsOf(result.Tasks), "add_website")
}

func TestGenerateRepeatableGating(t *testing.T) {
	in := testInput()
	// Now is Thursday 2025-10-30; this week started Monday 2025-10-27
	in.Completions = map[string]time.Time{
		"Publish a weekly post":     time.Date(2025, 10, 28, 10, 0, 0, 0, time.UTC), // this week
		"Respond to recent reviews": time.Date(2025, 10, 24, 10, 0, 0, 0, time.UTC), // last week
	}

	result := Generate(in)
	ids := idsOf(result.Tasks)
	assert.NotContains(t, ids, "create_post")
	assert.Contains(t, ids, "respond_reviews")
}

func TestGenerateAllTemplatesExhausted(t *testing.T) {
	in := testInput()
	var titles []string
	for _, tpl := range in.Catalog {
		titles = append(titles, tpl.Title)
	}
	in.ActiveTitles = titles

	result := Generate(in)
	assert.Equal(t, StatusNoAvailableTasks, result.Status)
}

func TestGenerateAssignAllBypassesSelection(t *testing.T) {
	in := testInput()
	in.AssignAll = true

	result := Generate(in)
	assert.Len(t, result.Tasks, len(in.Catalog))
}

func TestParseEstimatedMinutes(t *testing.T) {
	assert.Equal(t, 15, parseEstimatedMinutes("15 minutes"))
	assert.Equal(t, 60, parseEstimatedMinutes("1 hour"))
	assert.Equal(t, 120, parseEstimatedMinutes("2 hours"))
	assert.Equal(t, 0, parseEstimatedMinutes(""))
	assert.Equal(t, 0, parseEstimatedMinutes("a while"))
}
