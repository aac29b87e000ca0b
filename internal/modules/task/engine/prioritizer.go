package engine

import "sort"

// Presentation buckets, in fixed order.
const (
	bucketCritical = iota
	bucketHigh
	bucketMedium
	bucketLow
)

// Order sorts an already-selected task set for presentation: tasks that
// address a critical issue first, then by template priority; within each
// bucket by impact descending, then points descending. The sort is stable
// so equal tasks keep their selection order.
func Order(tasks []Template, analysis Analysis) []Template {
	ordered := make([]Template, len(tasks))
	copy(ordered, tasks)

	sort.SliceStable(ordered, func(i, j int) bool {
		bi, bj := bucket(ordered[i], analysis), bucket(ordered[j], analysis)
		if bi != bj {
			return bi < bj
		}
		ii, ij := impactRank(ordered[i].Impact), impactRank(ordered[j].Impact)
		if ii != ij {
			return ii > ij
		}
		return ordered[i].Points > ordered[j].Points
	})

	return ordered
}

func bucket(tpl Template, analysis Analysis) int {
	for _, issue := range analysis.CriticalIssues {
		if criticalMatches(issue.Tag, tpl) {
			return bucketCritical
		}
	}
	switch tpl.Priority {
	case PriorityHigh:
		return bucketHigh
	case PriorityMedium:
		return bucketMedium
	default:
		return bucketLow
	}
}

func impactRank(i Impact) int {
	switch i {
	case ImpactHigh:
		return 3
	case ImpactMedium:
		return 2
	default:
		return 1
	}
}
