package engine

import "fmt"

// Profile completeness point values per present field. They sum to 100.
const (
	completenessName    = 20
	completenessAddress = 15
	completenessHours   = 25
	completenessWebsite = 20
	completenessPhotos  = 20
)

// Analyze turns a raw snapshot into a normalized analysis. It never fails:
// missing fields contribute zero signal, lower scores and issue flags.
func Analyze(snap Snapshot) Analysis {
	var a Analysis

	// 1. Profile completeness: fixed points per present field
	if snap.Name != "" {
		a.ProfileCompleteness += completenessName
	}
	if snap.Address != "" {
		a.ProfileCompleteness += completenessAddress
	}
	if snap.HasHours {
		a.ProfileCompleteness += completenessHours
	} else {
		a.CriticalIssues = append(a.CriticalIssues, Issue{
			Tag:  IssueMissingHours,
			Text: "Opening hours are missing from your profile",
		})
	}
	if snap.Website != "" {
		a.ProfileCompleteness += completenessWebsite
	} else {
		a.Opportunities = append(a.Opportunities, "Add a website link to your profile")
	}
	if snap.PhotoCount >= 1 {
		a.ProfileCompleteness += completenessPhotos
	}

	// 2. Reputation health: step function of rating
	switch {
	case snap.Rating >= 4.5:
		a.ReputationHealth = 100
		a.Strengths = append(a.Strengths, fmt.Sprintf("Excellent rating (%.1f/5)", snap.Rating))
	case snap.Rating >= 4.0:
		a.ReputationHealth = 75
	case snap.Rating >= 3.5:
		a.ReputationHealth = 50
	case snap.Rating > 0:
		a.ReputationHealth = 25
		a.CriticalIssues = append(a.CriticalIssues, Issue{
			Tag:  IssueLowRating,
			Text: fmt.Sprintf("Low rating (%.1f/5) is hurting your visibility", snap.Rating),
		})
	default:
		a.ReputationHealth = 0
	}

	// Review count flags apply regardless of rating
	if snap.ReviewCount < 5 {
		a.CriticalIssues = append(a.CriticalIssues, Issue{
			Tag:  IssueLowReviewCount,
			Text: fmt.Sprintf("Only %d reviews - customers trust profiles with more feedback", snap.ReviewCount),
		})
	} else if snap.ReviewCount < 20 {
		a.Opportunities = append(a.Opportunities, fmt.Sprintf("Grow your %d reviews past 20 to build trust", snap.ReviewCount))
	}

	// 3. Visual appeal: step function of photo count
	switch {
	case snap.PhotoCount == 0:
		a.VisualAppeal = 0
		a.CriticalIssues = append(a.CriticalIssues, Issue{
			Tag:  IssueNoPhotos,
			Text: "Your profile has no photos",
		})
	case snap.PhotoCount < 5:
		a.VisualAppeal = 30
		a.Opportunities = append(a.Opportunities, fmt.Sprintf("Only %d photos - profiles with 10+ get more clicks", snap.PhotoCount))
	case snap.PhotoCount < 10:
		a.VisualAppeal = 60
	default:
		a.VisualAppeal = 100
		a.Strengths = append(a.Strengths, fmt.Sprintf("Strong photo gallery (%d photos)", snap.PhotoCount))
	}

	// 4. Engagement level
	a.EngagementLevel = 50
	switch {
	case snap.ReviewCount > 50 && snap.Rating >= 4.0:
		a.EngagementLevel = 90
		a.Strengths = append(a.Strengths, "High customer engagement")
	case snap.ReviewCount > 20:
		a.EngagementLevel = 70
	case snap.ReviewCount < 10:
		a.EngagementLevel = 30
		a.RecommendedFocus = append(a.RecommendedFocus, TypePosts)
	}

	// 5. Recommended focus from component scores
	if a.ProfileCompleteness < 70 {
		a.RecommendedFocus = append(a.RecommendedFocus, CategoryBasicInfo)
	}
	if a.VisualAppeal < 60 {
		a.RecommendedFocus = append(a.RecommendedFocus, CategoryVisual)
	}
	if a.ReputationHealth < 70 {
		a.RecommendedFocus = append(a.RecommendedFocus, CategoryEngagement)
	}

	return a
}
