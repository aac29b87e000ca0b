package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuditReversesCheatedPhotoTask(t *testing.T) {
	completed := []CompletedRecord{{
		ID:         "c1",
		TemplateID: "upload_photos",
		Title:      "Upload 5 new photos",
		Type:       TypePhotos,
		Category:   CategoryVisual,
		Points:     25,
	}}

	// Current snapshot shows only 3 photos: the completion cannot hold
	result := Audit(completed, Snapshot{PhotoCount: 3})
	assert.Empty(t, result.Verified)
	assert.Len(t, result.Reversed, 1)

	// And with enough photos it verifies
	result = Audit(completed, Snapshot{PhotoCount: 14})
	assert.Len(t, result.Verified, 1)
	assert.Empty(t, result.Reversed)
}

func TestAuditHoursTask(t *testing.T) {
	completed := []CompletedRecord{{
		ID:         "c2",
		TemplateID: "add_business_hours",
		Title:      "Add opening hours",
		Type:       TypeProfile,
		Category:   CategoryBasicInfo,
		Points:     30,
	}}

	result := Audit(completed, Snapshot{HasHours: false})
	assert.Len(t, result.Reversed, 1)

	result = Audit(completed, Snapshot{HasHours: true})
	assert.Len(t, result.Verified, 1)
}

func TestAuditWebsiteTask(t *testing.T) {
	completed := []CompletedRecord{{
		ID:         "c3",
		TemplateID: "add_website",
		Title:      "Add your website",
		Type:       TypeProfile,
		Category:   CategoryBasicInfo,
		Points:     20,
	}}

	result := Audit(completed, Snapshot{HasHours: true})
	assert.Len(t, result.Reversed, 1)

	result = Audit(completed, Snapshot{Website: "https://x.example"})
	assert.Len(t, result.Verified, 1)
}

func TestAuditReviewTaskNeedsCountAndRating(t *testing.T) {
	completed := []CompletedRecord{{
		ID:         "c4",
		TemplateID: "respond_reviews",
		Title:      "Respond to recent reviews",
		Type:       TypeReviews,
		Category:   CategoryEngagement,
		Points:     15,
	}}

	assert.Len(t, Audit(completed, Snapshot{ReviewCount: 30, Rating: 3.2}).Reversed, 1)
	assert.Len(t, Audit(completed, Snapshot{ReviewCount: 5, Rating: 4.8}).Reversed, 1)
	assert.Len(t, Audit(completed, Snapshot{ReviewCount: 30, Rating: 4.2}).Verified, 1)
}

func TestAuditNonVerifiableTasksNeverReverse(t *testing.T) {
	completed := []CompletedRecord{{
		ID:          "c5",
		TemplateID:  "check_insights",
		Title:       "Review your monthly insights",
		Type:        TypeInsights,
		Category:    CategoryContent,
		Points:      10,
		CompletedAt: time.Now(),
	}}

	result := Audit(completed, Snapshot{})
	assert.Len(t, result.Verified, 1)
	assert.Empty(t, result.Reversed)
}

func TestReissuePoints(t *testing.T) {
	assert.Equal(t, 12, ReissuePoints(25))
	assert.Equal(t, 10, ReissuePoints(20))
	assert.Equal(t, 0, ReissuePoints(1))
}
