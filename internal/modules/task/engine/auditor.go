package engine

import "strings"

// ReissueDiscount is applied to a reversed task's points when it is
// reissued the following month: floor(points * 0.5).
func ReissuePoints(original int) int {
	return original / 2
}

// Audit re-verifies previously completed tasks against the CURRENT
// snapshot, not the snapshot at completion time. A completion whose
// criteria no longer hold is "cheated" and lands in Reversed; applying the
// reversal (ledger decrement, row deletion, reissue) is the caller's job
// and must be all-or-nothing per record.
func Audit(records []CompletedRecord, snap Snapshot) AuditResult {
	var result AuditResult
	for _, rec := range records {
		if verifyCompletion(rec, snap) {
			result.Verified = append(result.Verified, rec)
		} else {
			result.Reversed = append(result.Reversed, rec)
		}
	}
	return result
}

// verifyCompletion runs the per-category verification predicate. Tasks
// without a verifiable signal default to verified: only provable cheats
// are reversed.
func verifyCompletion(rec CompletedRecord, snap Snapshot) bool {
	switch {
	case rec.Category == CategoryBasicInfo && (strings.Contains(rec.TemplateID, "hours") || strings.Contains(strings.ToLower(rec.Title), "opening hours")):
		return snap.HasHours
	case strings.Contains(rec.TemplateID, "website") || rec.VerificationType == "website":
		return snap.Website != ""
	case rec.Type == TypePhotos || rec.Category == CategoryVisual:
		return snap.PhotoCount >= 10
	case rec.Type == TypeReviews || rec.Category == CategoryEngagement:
		return snap.ReviewCount >= 10 && snap.Rating >= 4.0
	default:
		return true
	}
}
