package engine

import (
	"fmt"
	"sort"
)

// Explain produces a human-readable justification and urgency tag per task,
// sorted critical-first. Urgency only ever escalates: a recommended task can
// become important because of a weak progress ledger, never the other way.
// Output is display text only - no other component depends on it.
func Explain(tasks []Template, ctx Context) []Recommendation {
	recs := make([]Recommendation, 0, len(tasks))
	for _, tpl := range tasks {
		recs = append(recs, Recommendation{
			Template: tpl,
			Reason:   reasonFor(tpl, ctx),
			Urgency:  urgencyFor(tpl, ctx),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return urgencyRank(recs[i].Urgency) < urgencyRank(recs[j].Urgency)
	})

	return recs
}

func reasonFor(tpl Template, ctx Context) string {
	a := ctx.Analysis
	snap := ctx.Snapshot

	// Critical issue text takes precedence over everything
	for _, issue := range a.CriticalIssues {
		if criticalMatches(issue.Tag, tpl) {
			return issue.Text + " - this task fixes it directly."
		}
	}

	switch {
	case tpl.Type == TypeReviews && snap.Rating > 0 && snap.Rating < 4.0:
		return fmt.Sprintf("Low rating (%.1f/5) detected - responding to and earning new reviews is the fastest way to recover.", snap.Rating)
	case tpl.Type == TypeReviews:
		return fmt.Sprintf("With %d reviews, fresh feedback keeps your reputation signal strong.", snap.ReviewCount)
	case tpl.Type == TypePhotos && snap.PhotoCount < 10:
		return fmt.Sprintf("Your profile has %d photos - listings with 10+ photos get significantly more clicks.", snap.PhotoCount)
	case tpl.Type == TypePhotos:
		return "Fresh photos keep your listing looking active and current."
	case tpl.Category == CategoryBasicInfo && a.ProfileCompleteness < 100:
		return fmt.Sprintf("Profile completeness is at %d%% - complete profiles rank higher in local search.", a.ProfileCompleteness)
	case tpl.Type == TypePosts:
		return fmt.Sprintf("Engagement level is %d/100 - regular posts keep your profile in front of customers.", a.EngagementLevel)
	case tpl.Type == TypeQuestions:
		return "Answering questions publicly saves customers a call and improves conversion."
	case tpl.Type == TypeInsights:
		return "Reviewing your performance data helps you spot what is working."
	default:
		return fmt.Sprintf("Recommended for your profile this week (+%d points).", tpl.Points)
	}
}

func urgencyFor(tpl Template, ctx Context) Urgency {
	a := ctx.Analysis

	for _, issue := range a.CriticalIssues {
		if criticalMatches(issue.Tag, tpl) {
			return UrgencyCritical
		}
	}

	urgency := UrgencyRecommended

	// Focus alignment or a weak component score escalates to important
	if a.hasFocus(tpl.Category) || a.hasFocus(tpl.Type) {
		urgency = UrgencyImportant
	}
	if tpl.Category == CategoryBasicInfo && a.ProfileCompleteness < ctx.Weights.CompletenessThreshold {
		urgency = UrgencyImportant
	}
	if tpl.Type == TypePhotos && a.VisualAppeal < ctx.Weights.VisualThreshold {
		urgency = UrgencyImportant
	}
	if tpl.Type == TypeReviews && a.ReputationHealth < ctx.Weights.ReputationThreshold {
		urgency = UrgencyImportant
	}

	// Weak ledger sub-scores escalate as well
	p := ctx.Progress
	gap := ctx.Weights.ProgressGapThreshold
	if (tpl.Category == CategoryBasicInfo && p.ProfileScore < gap) ||
		(tpl.Type == TypePosts && p.ContentScore < gap) ||
		(tpl.Type == TypeReviews && p.EngagementScore < gap) {
		urgency = UrgencyImportant
	}

	return urgency
}

func urgencyRank(u Urgency) int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyImportant:
		return 1
	default:
		return 2
	}
}
