package engine

// Weights is the scoring configuration. The contract is the relative tier
// ordering, not the literal values:
//
//	critical issue > focus alignment > component threshold > raw signal
//
// Critical bonuses must stay larger than any other single term so tasks
// addressing a critical issue dominate the sort order.
type Weights struct {
	// Static template weights
	PriorityHigh   int
	PriorityMedium int
	PriorityLow    int
	ImpactHigh     int
	ImpactMedium   int
	ImpactLow      int

	// Tiered bonuses, largest first
	CriticalBonus      int
	FocusCategoryBonus int
	FocusTypeBonus     int
	ThresholdBonus     int
	ProgressGapBonus   int
	RawSignalBonus     int
	BusinessTypeBonus  int

	// Component score thresholds that trigger ThresholdBonus
	CompletenessThreshold int
	ReputationThreshold   int
	VisualThreshold       int
	EngagementThreshold   int

	// Progress sub-score threshold that triggers ProgressGapBonus
	ProgressGapThreshold int
}

// DefaultWeights returns the hand-tuned production weight table.
func DefaultWeights() Weights {
	return Weights{
		PriorityHigh:   30,
		PriorityMedium: 20,
		PriorityLow:    10,
		ImpactHigh:     25,
		ImpactMedium:   15,
		ImpactLow:      5,

		CriticalBonus:      90,
		FocusCategoryBonus: 50,
		FocusTypeBonus:     45,
		ThresholdBonus:     40,
		ProgressGapBonus:   35,
		RawSignalBonus:     30,
		BusinessTypeBonus:  15,

		CompletenessThreshold: 70,
		ReputationThreshold:   70,
		VisualThreshold:       60,
		EngagementThreshold:   60,

		ProgressGapThreshold: 40,
	}
}

func (w Weights) priorityWeight(p Priority) int {
	switch p {
	case PriorityHigh:
		return w.PriorityHigh
	case PriorityMedium:
		return w.PriorityMedium
	default:
		return w.PriorityLow
	}
}

func (w Weights) impactWeight(i Impact) int {
	switch i {
	case ImpactHigh:
		return w.ImpactHigh
	case ImpactMedium:
		return w.ImpactMedium
	default:
		return w.ImpactLow
	}
}
