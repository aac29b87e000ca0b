package engine

const (
	// SelectionTarget is the number of tasks one weekly batch aims for.
	SelectionTarget = 10

	criticalTierSize = 3
	maxPerCategory   = 4
	maxPerType       = 4
)

// Balance selects a bounded, diverse subset from candidates, which must
// already be sorted by score descending. The first three (the critical
// tier) are admitted unconditionally; the rest pass per-category and
// per-type caps. If the diverse pool comes up short, the highest-scored
// skipped candidates backfill regardless of caps. Returns fewer than the
// target when the pool itself is smaller - never pads.
func Balance(candidates []Template) []Template {
	if len(candidates) == 0 {
		return nil
	}

	selected := make([]Template, 0, SelectionTarget)
	categoryCount := make(map[string]int)
	typeCount := make(map[string]int)

	admit := func(tpl Template) {
		selected = append(selected, tpl)
		categoryCount[tpl.Category]++
		typeCount[tpl.Type]++
	}

	var skipped []Template
	for i, tpl := range candidates {
		if len(selected) >= SelectionTarget {
			break
		}
		if i < criticalTierSize {
			admit(tpl)
			continue
		}
		if categoryCount[tpl.Category] < maxPerCategory && typeCount[tpl.Type] < maxPerType {
			admit(tpl)
		} else {
			skipped = append(skipped, tpl)
		}
	}

	// Backfill: relax diversity caps rather than return a short batch
	for _, tpl := range skipped {
		if len(selected) >= SelectionTarget {
			break
		}
		admit(tpl)
	}

	return selected
}
