package engine

import "strings"

var (
	restaurantKeywords = []string{"restaurant", "cafe", "food", "bakery", "bar", "meal_takeaway"}
	retailKeywords     = []string{"store", "shop", "retail", "clothing", "supermarket"}
)

// Score assigns a priority score to one template for one location.
// Deterministic and side-effect free; higher means assign sooner. Ties are
// broken by the balancer's stable insertion order, so equal scores are safe.
func Score(tpl Template, ctx Context) int {
	w := ctx.Weights
	a := ctx.Analysis
	snap := ctx.Snapshot

	score := w.priorityWeight(tpl.Priority) + w.impactWeight(tpl.Impact) + tpl.Points

	// Critical-issue alignment dominates everything else
	for _, issue := range a.CriticalIssues {
		if criticalMatches(issue.Tag, tpl) {
			score += w.CriticalBonus
			break
		}
	}

	// Focus alignment
	if a.hasFocus(tpl.Category) {
		score += w.FocusCategoryBonus
	}
	if a.hasFocus(tpl.Type) {
		score += w.FocusTypeBonus
	}

	// Component-score thresholds
	if a.ProfileCompleteness < w.CompletenessThreshold && tpl.Category == CategoryBasicInfo {
		score += w.ThresholdBonus
	}
	if a.VisualAppeal < w.VisualThreshold && tpl.Type == TypePhotos {
		score += w.ThresholdBonus
	}
	if a.ReputationHealth < w.ReputationThreshold && tpl.Type == TypeReviews {
		score += w.ThresholdBonus
	}
	if a.EngagementLevel < w.EngagementThreshold && tpl.Type == TypePosts {
		score += w.ThresholdBonus
	}

	// Raw snapshot signals, independent of the analysis thresholds
	if snap.Rating > 0 && snap.Rating < 4.0 && tpl.Type == TypeReviews {
		score += w.RawSignalBonus
	}
	if snap.ReviewCount < 10 && tpl.Type == TypeReviews {
		score += w.RawSignalBonus
	}
	if snap.PhotoCount < 10 && tpl.Type == TypePhotos {
		score += w.RawSignalBonus
	}

	// Business-type match
	if matchesBusinessType(tpl.BusinessType, snap.Types) {
		score += w.BusinessTypeBonus
	}

	// Progress gaps: reward categories the location has neglected
	p := ctx.Progress
	if p.ProfileScore < w.ProgressGapThreshold && tpl.Category == CategoryBasicInfo {
		score += w.ProgressGapBonus
	}
	if p.ContentScore < w.ProgressGapThreshold && (tpl.Type == TypePosts || tpl.Type == TypePhotos) {
		score += w.ProgressGapBonus
	}
	if p.EngagementScore < w.ProgressGapThreshold && (tpl.Type == TypeReviews || tpl.Category == CategoryEngagement) {
		score += w.ProgressGapBonus
	}

	return score
}

// criticalMatches maps a structured issue tag to the templates that address
// it. This is the only coupling between analyzer findings and templates.
func criticalMatches(tag IssueTag, tpl Template) bool {
	switch tag {
	case IssueMissingHours:
		return tpl.Category == CategoryBasicInfo && strings.Contains(tpl.ID, "hours")
	case IssueNoPhotos:
		return tpl.Type == TypePhotos
	case IssueLowReviewCount, IssueLowRating:
		return tpl.Type == TypeReviews
	default:
		return false
	}
}

func matchesBusinessType(businessType string, placeTypes []string) bool {
	if businessType == "" || len(placeTypes) == 0 {
		return false
	}

	var keywords []string
	switch businessType {
	case "restaurant":
		keywords = restaurantKeywords
	case "retail":
		keywords = retailKeywords
	default:
		keywords = []string{businessType}
	}

	for _, pt := range placeTypes {
		lower := strings.ToLower(pt)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
