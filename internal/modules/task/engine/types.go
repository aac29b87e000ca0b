// Package engine implements the weekly task recommendation engine: it
// analyzes a location profile snapshot, scores the task template catalog
// against it, selects a balanced weekly set and re-verifies historical
// completions. Everything in this package is a pure, deterministic
// computation over in-memory data; persistence and API calls live in the
// surrounding task service.
package engine

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Task type axis
const (
	TypeProfile   = "profile"
	TypePhotos    = "photos"
	TypeReviews   = "reviews"
	TypePosts     = "posts"
	TypeQuestions = "questions"
	TypeInsights  = "insights"
)

// Task category axis
const (
	CategoryBasicInfo  = "basic_info"
	CategoryVisual     = "visual"
	CategoryEngagement = "engagement"
	CategoryAttributes = "attributes"
	CategoryContent    = "content"
)

// Template is an immutable catalog entry. The catalog is parsed once at
// startup and injected into every engine entry point.
type Template struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"`
	Impact      Impact   `json:"impact"`
	Points      int      `json:"points"`
	Repeatable  bool     `json:"repeatable"`
	// RepeatFrequency is only consulted when Repeatable is true:
	// "weekly", "monthly" or "quarterly".
	RepeatFrequency   string   `json:"repeat_frequency,omitempty"`
	EstimatedTime     string   `json:"estimated_time,omitempty"`
	ActionType        string   `json:"action_type,omitempty"`
	VerificationType  string   `json:"verification_type,omitempty"`
	BusinessType      string   `json:"business_type,omitempty"`
	Caution           string   `json:"caution,omitempty"`
	EditableViaAPI    bool     `json:"editable_via_api,omitempty"`
	Prerequisites     []string `json:"prerequisites,omitempty"`
	SeasonalRelevance []string `json:"seasonal_relevance,omitempty"`
}

// Snapshot is the read-only business profile view for one generation cycle.
// Any field may be absent; zero values mean "no signal", never an error.
type Snapshot struct {
	Name           string
	Address        string
	HasHours       bool
	Website        string
	Rating         float64
	ReviewCount    int
	PhotoCount     int
	Types          []string
	PriceLevel     int
	BusinessStatus string
}

// IssueTag is a closed set of analyzer findings. The scorer keys its
// critical bonuses off these tags rather than matching issue text.
type IssueTag string

const (
	IssueMissingHours   IssueTag = "missing_hours"
	IssueNoPhotos       IssueTag = "no_photos"
	IssueLowReviewCount IssueTag = "low_review_count"
	IssueLowRating      IssueTag = "low_rating"
)

// Issue pairs a structured tag with its display text.
type Issue struct {
	Tag  IssueTag `json:"tag"`
	Text string   `json:"text"`
}

// Analysis is the normalized result of analyzing one snapshot. All four
// component scores are in [0,100]. Recomputed every cycle, never persisted
// as authoritative state.
type Analysis struct {
	ProfileCompleteness int      `json:"profile_completeness"`
	ReputationHealth    int      `json:"reputation_health"`
	VisualAppeal        int      `json:"visual_appeal"`
	EngagementLevel     int      `json:"engagement_level"`
	CriticalIssues      []Issue  `json:"critical_issues"`
	Strengths           []string `json:"strengths"`
	Opportunities       []string `json:"opportunities"`
	RecommendedFocus    []string `json:"recommended_focus"`
}

// HasCritical reports whether the analysis flagged the given tag.
func (a Analysis) HasCritical(tag IssueTag) bool {
	for _, issue := range a.CriticalIssues {
		if issue.Tag == tag {
			return true
		}
	}
	return false
}

func (a Analysis) hasFocus(token string) bool {
	for _, f := range a.RecommendedFocus {
		if f == token {
			return true
		}
	}
	return false
}

// Progress mirrors the persisted location ledger for scoring input.
type Progress struct {
	TotalPoints     int
	WeeklyPoints    int
	MonthlyPoints   int
	TasksCompleted  int
	CurrentStreak   int
	LongestStreak   int
	ProfileScore    int
	EngagementScore int
	ContentScore    int
	Level           int
}

// Context bundles everything the scorer and explainer consume for one
// location. Weights must be non-zero; use DefaultWeights().
type Context struct {
	Analysis Analysis
	Snapshot Snapshot
	Progress Progress
	Weights  Weights
}

type Urgency string

const (
	UrgencyCritical    Urgency = "critical"
	UrgencyImportant   Urgency = "important"
	UrgencyRecommended Urgency = "recommended"
)

// Recommendation annotates a selected template with a human-readable
// justification for the dashboard.
type Recommendation struct {
	Template Template `json:"template"`
	Reason   string   `json:"reason"`
	Urgency  Urgency  `json:"urgency"`
}

// CompletedRecord is the engine's view of a persisted CompletedTask.
type CompletedRecord struct {
	ID               string
	TemplateID       string
	Title            string
	Type             string
	Category         string
	VerificationType string
	Points           int
	CompletedAt      time.Time
}

// AuditResult splits re-verified completions into those that still hold
// and those whose criteria no longer hold against the current snapshot.
type AuditResult struct {
	Verified []CompletedRecord
	Reversed []CompletedRecord
}
