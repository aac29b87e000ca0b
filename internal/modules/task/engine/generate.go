package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"lokalpulse.com/gbpdashboard/pkg/period"
)

// Generation outcome tokens. Empty results carry a status for the caller
// to surface instead of an error.
const (
	StatusOK               = "ok"
	StatusNoAvailableTasks = "no_available_tasks"
	StatusSelectionFailed  = "selection_failed"
)

// Input carries everything one generation cycle needs. The catalog and
// weights are injected so synthetic catalogs test deterministically.
type Input struct {
	Catalog  []Template
	Snapshot Snapshot
	Progress Progress
	Weights  Weights

	// ActiveTitles are titles of non-completed tasks for this
	// (user, location); their templates are never reassigned.
	ActiveTitles []string

	// Completions maps task title to the most recent completion time,
	// used to gate repeatable templates by their repeat frequency.
	Completions map[string]time.Time

	Now time.Time

	// AssignAll bypasses selection and assigns every eligible template.
	// Debug/ops escape hatch only.
	AssignAll bool
}

// Result is the ordered weekly batch plus its presentation annotations.
type Result struct {
	Status                string
	Tasks                 []Template
	Recommendations       []Recommendation
	Analysis              Analysis
	TotalEstimatedMinutes int
}

// Generate runs the full pipeline: eligibility filter, analysis, scoring,
// balancing, ordering, explanation. Pure and deterministic for identical
// inputs.
func Generate(in Input) Result {
	analysis := Analyze(in.Snapshot)
	ctx := Context{
		Analysis: analysis,
		Snapshot: in.Snapshot,
		Progress: in.Progress,
		Weights:  in.Weights,
	}

	eligible := filterEligible(in)
	if len(eligible) == 0 {
		return Result{Status: StatusNoAvailableTasks, Analysis: analysis}
	}

	// Stable sort by score descending; insertion order breaks ties
	type scored struct {
		tpl   Template
		score int
	}
	ranked := make([]scored, 0, len(eligible))
	for _, tpl := range eligible {
		ranked = append(ranked, scored{tpl: tpl, score: Score(tpl, ctx)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	candidates := make([]Template, 0, len(ranked))
	for _, s := range ranked {
		candidates = append(candidates, s.tpl)
	}

	var selected []Template
	if in.AssignAll {
		selected = candidates
	} else {
		selected = Balance(candidates)
	}
	if len(selected) == 0 {
		return Result{Status: StatusSelectionFailed, Analysis: analysis}
	}

	ordered := Order(selected, analysis)

	return Result{
		Status:                StatusOK,
		Tasks:                 ordered,
		Recommendations:       Explain(ordered, ctx),
		Analysis:              analysis,
		TotalEstimatedMinutes: totalEstimatedMinutes(ordered),
	}
}

// filterEligible drops templates that are already assigned, or completed
// and not yet due again.
func filterEligible(in Input) []Template {
	active := make(map[string]struct{}, len(in.ActiveTitles))
	for _, t := range in.ActiveTitles {
		active[t] = struct{}{}
	}

	var eligible []Template
	for _, tpl := range in.Catalog {
		if _, ok := active[tpl.Title]; ok {
			continue
		}
		completedAt, completed := in.Completions[tpl.Title]
		if completed {
			if !tpl.Repeatable {
				continue
			}
			if !repeatDue(tpl.RepeatFrequency, completedAt, in.Now) {
				continue
			}
		}
		eligible = append(eligible, tpl)
	}
	return eligible
}

// repeatDue reports whether a repeatable template completed at completedAt
// is due again at now.
func repeatDue(frequency string, completedAt, now time.Time) bool {
	switch frequency {
	case "weekly":
		return completedAt.Before(period.StartOfWeek(now))
	case "monthly":
		return completedAt.Before(period.StartOfMonth(now))
	case "quarterly":
		return now.Sub(completedAt) >= 90*24*time.Hour
	default:
		// No cadence hint: treat like weekly
		return completedAt.Before(period.StartOfWeek(now))
	}
}

// totalEstimatedMinutes sums the parseable estimated times ("15 minutes",
// "1 hour"). Unparseable values contribute zero.
func totalEstimatedMinutes(tasks []Template) int {
	total := 0
	for _, tpl := range tasks {
		total += parseEstimatedMinutes(tpl.EstimatedTime)
	}
	return total
}

func parseEstimatedMinutes(s string) int {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) < 2 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	switch {
	case strings.HasPrefix(fields[1], "hour"):
		return n * 60
	case strings.HasPrefix(fields[1], "min"):
		return n
	default:
		return 0
	}
}
