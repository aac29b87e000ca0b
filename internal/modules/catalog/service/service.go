package catalog

import (
	"log"

	"lokalpulse.com/gbpdashboard/internal/modules/task/engine"
)

// Service exposes the parsed template catalog. The catalog is loaded once at
// startup and immutable afterwards; everything returns copies of the slice
// header, never a mutable reference the caller could corrupt.
type Service interface {
	Templates() []engine.Template
	TemplateByID(id string) (engine.Template, bool)
	Report() LoadReport
}

type service struct {
	templates []engine.Template
	byID      map[string]engine.Template
	report    LoadReport
}

func NewService() (Service, error) {
	templates, report, err := LoadCatalog()
	if err != nil {
		return nil, err
	}

	for _, rej := range report.Rejects {
		log.Printf("catalog: rejected template index=%d id=%q: %s", rej.Index, rej.ID, rej.Reason)
	}
	log.Printf("catalog: loaded %d task templates (%d rejected)", report.Loaded, len(report.Rejects))

	byID := make(map[string]engine.Template, len(templates))
	for _, tpl := range templates {
		byID[tpl.ID] = tpl
	}

	return &service{templates: templates, byID: byID, report: report}, nil
}

func (s *service) Templates() []engine.Template {
	out := make([]engine.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *service) TemplateByID(id string) (engine.Template, bool) {
	tpl, ok := s.byID[id]
	return tpl, ok
}

func (s *service) Report() LoadReport {
	return s.report
}
