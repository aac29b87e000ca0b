package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// healthyContext returns a context in which no bonus applies: strong
// snapshot, strong ledger, nothing in focus.
func healthyContext() Context {
	snap := Snapshot{
		Name:        "Kopi Selatan",
		Address:     "12 Jalan Riau",
		HasHours:    true,
		Website:     "https://kopiselatan.example",
		Rating:      4.8,
		ReviewCount: 120,
		PhotoCount:  60,
	}
	return Context{
		Analysis: Analyze(snap),
		Snapshot: snap,
		Progress: Progress{ProfileScore: 80, EngagementScore: 80, ContentScore: 80},
		Weights:  DefaultWeights(),
	}
}

func TestScoreBaseComposition(t *testing.T) {
	ctx := healthyContext()
	tpl := Template{
		ID:       "create_post",
		Title:    "Publish a weekly post",
		Type:     TypePosts,
		Category: CategoryContent,
		Priority: PriorityHigh,
		Impact:   ImpactMedium,
		Points:   20,
	}

	// priority 30 + impact 15 + points 20, nothing else fires
	assert.Equal(t, 65, Score(tpl, ctx))
}

func TestScoreCriticalBonusDominates(t *testing.T) {
	snap := Snapshot{Name: "x", Address: "y", HasHours: true, Website: "https://x", Rating: 4.6, ReviewCount: 80}
	ctx := Context{
		Analysis: Analyze(snap), // no photos -> critical issue + visual focus
		Snapshot: snap,
		Progress: Progress{ProfileScore: 80, EngagementScore: 80, ContentScore: 80},
		Weights:  DefaultWeights(),
	}

	photoTask := Template{
		ID: "upload_photos", Title: "Upload photos", Type: TypePhotos, Category: CategoryVisual,
		Priority: PriorityLow, Impact: ImpactLow, Points: 10,
	}
	postTask := Template{
		ID: "create_post", Title: "Publish a post", Type: TypePosts, Category: CategoryContent,
		Priority: PriorityHigh, Impact: ImpactHigh, Points: 30,
	}

	// A low-priority task fixing a critical issue must outrank a
	// high-priority task that does not.
	assert.Greater(t, Score(photoTask, ctx), Score(postTask, ctx))
}

func TestScoreFocusAlignment(t *testing.T) {
	ctx := healthyContext()
	ctx.Analysis.RecommendedFocus = []string{CategoryBasicInfo}

	tpl := Template{
		ID: "verify_address", Title: "Verify address", Type: TypeProfile, Category: CategoryBasicInfo,
		Priority: PriorityMedium, Impact: ImpactMedium, Points: 10,
	}
	base := Template{
		ID: "check_insights", Title: "Check insights", Type: TypeInsights, Category: CategoryContent,
		Priority: PriorityMedium, Impact: ImpactMedium, Points: 10,
	}

	assert.Equal(t, ctx.Weights.FocusCategoryBonus, Score(tpl, ctx)-Score(base, ctx))
}

func TestScoreProgressGapBonus(t *testing.T) {
	ctx := healthyContext()
	tpl := Template{
		ID: "create_post", Title: "Publish a post", Type: TypePosts, Category: CategoryContent,
		Priority: PriorityMedium, Impact: ImpactMedium, Points: 10,
	}

	without := Score(tpl, ctx)
	ctx.Progress.ContentScore = 10
	with := Score(tpl, ctx)

	assert.Equal(t, ctx.Weights.ProgressGapBonus, with-without)
}

func TestScoreBusinessTypeMatch(t *testing.T) {
	ctx := healthyContext()
	ctx.Snapshot.Types = []string{"cafe", "point_of_interest"}

	tpl := Template{
		ID: "add_menu", Title: "Add menu link", Type: TypeProfile, Category: CategoryAttributes,
		Priority: PriorityMedium, Impact: ImpactMedium, Points: 10,
		BusinessType: "restaurant",
	}
	base := tpl
	base.BusinessType = ""

	assert.Equal(t, ctx.Weights.BusinessTypeBonus, Score(tpl, ctx)-Score(base, ctx))
}

func TestScoreDeterministic(t *testing.T) {
	ctx := healthyContext()
	tpl := Template{
		ID: "create_post", Title: "Publish a post", Type: TypePosts, Category: CategoryContent,
		Priority: PriorityHigh, Impact: ImpactHigh, Points: 25,
	}

	first := Score(tpl, ctx)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Score(tpl, ctx))
	}
}

func TestDefaultWeightsTierOrdering(t *testing.T) {
	w := DefaultWeights()

	// critical > focus > component threshold > raw signal
	assert.Greater(t, w.CriticalBonus, w.FocusCategoryBonus)
	assert.GreaterOrEqual(t, w.FocusCategoryBonus, w.FocusTypeBonus)
	assert.Greater(t, w.FocusTypeBonus, w.ThresholdBonus)
	assert.Greater(t, w.ThresholdBonus, w.RawSignalBonus)
}
