package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"lokalpulse.com/gbpdashboard/internal/modules/task/engine"
)

//go:embed templates.json
var templatesJSON []byte

// fallbackTitle is assigned to records whose title is missing or unreadable.
// Such records never reach the engine; they end up in the load report.
const fallbackTitle = "Unknown Task"

// Reject records one catalog entry that failed validation and the reason it
// was dropped.
type Reject struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// LoadReport summarizes one catalog load. Rejects are reported instead of
// silently dropped so a broken deploy is visible in the logs.
type LoadReport struct {
	Loaded  int      `json:"loaded"`
	Rejects []Reject `json:"rejects,omitempty"`
}

var (
	validTypes = map[string]struct{}{
		engine.TypeProfile:   {},
		engine.TypePhotos:    {},
		engine.TypeReviews:   {},
		engine.TypePosts:     {},
		engine.TypeQuestions: {},
		engine.TypeInsights:  {},
	}
	validCategories = map[string]struct{}{
		engine.CategoryBasicInfo:  {},
		engine.CategoryVisual:     {},
		engine.CategoryEngagement: {},
		engine.CategoryAttributes: {},
		engine.CategoryContent:    {},
	}
	validPriorities = map[engine.Priority]struct{}{
		engine.PriorityHigh:   {},
		engine.PriorityMedium: {},
		engine.PriorityLow:    {},
	}
	validImpacts = map[engine.Impact]struct{}{
		engine.ImpactHigh:   {},
		engine.ImpactMedium: {},
		engine.ImpactLow:    {},
	}
)

// LoadCatalog parses the embedded template catalog record by record. A bad
// record never fails the load; it is dropped and reported. Only a catalog
// that is unreadable as a whole returns an error.
func LoadCatalog() ([]engine.Template, LoadReport, error) {
	return parseCatalog(templatesJSON)
}

func parseCatalog(data []byte) ([]engine.Template, LoadReport, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, LoadReport{}, fmt.Errorf("catalog is not a valid JSON array: %w", err)
	}

	templates := make([]engine.Template, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	var report LoadReport

	for i, raw := range records {
		tpl, err := parseTemplate(raw)
		if err != nil {
			report.Rejects = append(report.Rejects, Reject{Index: i, ID: tpl.ID, Reason: err.Error()})
			continue
		}
		if _, dup := seen[tpl.ID]; dup {
			report.Rejects = append(report.Rejects, Reject{Index: i, ID: tpl.ID, Reason: "duplicate template id"})
			continue
		}
		seen[tpl.ID] = struct{}{}
		templates = append(templates, tpl)
	}

	report.Loaded = len(templates)
	return templates, report, nil
}

// parseTemplate decodes and validates one record. On failure the returned
// template still carries whatever identity could be recovered, so the
// reject entry can name the offender.
func parseTemplate(raw json.RawMessage) (engine.Template, error) {
	var tpl engine.Template
	if err := json.Unmarshal(raw, &tpl); err != nil {
		tpl.Title = fallbackTitle
		return tpl, fmt.Errorf("malformed record: %v", err)
	}
	if tpl.Title == "" {
		tpl.Title = fallbackTitle
	}
	return tpl, validateTemplate(tpl)
}

func validateTemplate(tpl engine.Template) error {
	if tpl.ID == "" {
		return fmt.Errorf("missing id")
	}
	if tpl.Title == fallbackTitle {
		return fmt.Errorf("missing title")
	}
	if _, ok := validTypes[tpl.Type]; !ok {
		return fmt.Errorf("unknown type %q", tpl.Type)
	}
	if _, ok := validCategories[tpl.Category]; !ok {
		return fmt.Errorf("unknown category %q", tpl.Category)
	}
	if _, ok := validPriorities[tpl.Priority]; !ok {
		return fmt.Errorf("unknown priority %q", tpl.Priority)
	}
	if _, ok := validImpacts[tpl.Impact]; !ok {
		return fmt.Errorf("unknown impact %q", tpl.Impact)
	}
	if tpl.Points <= 0 {
		return fmt.Errorf("points must be positive, got %d", tpl.Points)
	}
	if tpl.Repeatable {
		switch tpl.RepeatFrequency {
		case "weekly", "monthly", "quarterly":
		default:
			return fmt.Errorf("repeatable template has invalid repeat_frequency %q", tpl.RepeatFrequency)
		}
	}
	return nil
}
