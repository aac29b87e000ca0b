package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmptySnapshot(t *testing.T) {
	a := Analyze(Snapshot{})

	assert.Equal(t, 0, a.ProfileCompleteness)
	assert.Equal(t, 0, a.ReputationHealth)
	assert.Equal(t, 0, a.VisualAppeal)

	tags := make([]IssueTag, 0, len(a.CriticalIssues))
	for _, issue := range a.CriticalIssues {
		tags = append(tags, issue.Tag)
	}
	assert.Contains(t, tags, IssueMissingHours)
	assert.Contains(t, tags, IssueNoPhotos)
	assert.Contains(t, tags, IssueLowReviewCount)
}

func TestAnalyzeHighPerformer(t *testing.T) {
	a := Analyze(Snapshot{
		Name:        "Kopi Selatan",
		Address:     "12 Jalan Riau",
		HasHours:    true,
		Website:     "https://kopiselatan.example",
		Rating:      4.8,
		ReviewCount: 120,
		PhotoCount:  60,
	})

	assert.Equal(t, 100, a.ProfileCompleteness)
	assert.Equal(t, 100, a.ReputationHealth)
	assert.Equal(t, 100, a.VisualAppeal)
	assert.Equal(t, 90, a.EngagementLevel)
	assert.Empty(t, a.CriticalIssues)
	assert.Empty(t, a.RecommendedFocus)
}

func TestAnalyzeReputationSteps(t *testing.T) {
	cases := []struct {
		rating float64
		want   int
	}{
		{4.5, 100},
		{4.0, 75},
		{3.5, 50},
		{2.1, 25},
		{0, 0},
	}

	for _, tc := range cases {
		a := Analyze(Snapshot{Rating: tc.rating, ReviewCount: 30})
		assert.Equal(t, tc.want, a.ReputationHealth, "rating %.1f", tc.rating)
	}
}

func TestAnalyzeVisualSteps(t *testing.T) {
	cases := []struct {
		photos int
		want   int
	}{
		{0, 0},
		{3, 30},
		{7, 60},
		{10, 100},
		{200, 100},
	}

	for _, tc := range cases {
		a := Analyze(Snapshot{PhotoCount: tc.photos})
		assert.Equal(t, tc.want, a.VisualAppeal, "photos %d", tc.photos)
	}
}

func TestAnalyzeLowEngagementRecommendsPosts(t *testing.T) {
	a := Analyze(Snapshot{ReviewCount: 4})
	assert.Equal(t, 30, a.EngagementLevel)
	assert.Contains(t, a.RecommendedFocus, TypePosts)
}

func TestAnalyzeScoreBounds(t *testing.T) {
	// Sweep a synthetic grid; every component score must stay in [0,100].
	ratings := []float64{0, 1.0, 3.4, 3.5, 4.0, 4.49, 4.5, 5.0}
	reviews := []int{0, 4, 9, 19, 21, 50, 51, 500}
	photos := []int{0, 1, 4, 5, 9, 10, 99}

	for _, r := range ratings {
		for _, rc := range reviews {
			for _, pc := range photos {
				snap := Snapshot{
					Name:        "x",
					HasHours:    pc%2 == 0,
					Rating:      r,
					ReviewCount: rc,
					PhotoCount:  pc,
				}
				a := Analyze(snap)
				for name, score := range map[string]int{
					"completeness": a.ProfileCompleteness,
					"reputation":   a.ReputationHealth,
					"visual":       a.VisualAppeal,
					"engagement":   a.EngagementLevel,
				} {
					require.GreaterOrEqual(t, score, 0, fmt.Sprintf("%s for %+v", name, snap))
					require.LessOrEqual(t, score, 100, fmt.Sprintf("%s for %+v", name, snap))
				}
			}
		}
	}
}

func TestAnalyzeMissingWebsiteIsOpportunityNotCritical(t *testing.T) {
	a := Analyze(Snapshot{Name: "x", HasHours: true, PhotoCount: 12, Rating: 4.6, ReviewCount: 40})

	for _, issue := range a.CriticalIssues {
		assert.NotContains(t, issue.Text, "website")
	}
	assert.NotEmpty(t, a.Opportunities)
}
