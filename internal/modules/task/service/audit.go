package task

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lokalpulse.com/gbpdashboard/internal/entity"
	"lokalpulse.com/gbpdashboard/internal/modules/task/engine"
	repo "lokalpulse.com/gbpdashboard/internal/modules/task/repository"
	"lokalpulse.com/gbpdashboard/pkg/period"
)

// auditWindow bounds how far back the background sweep re-verifies
// completions. Weekly generation audits the full history for its location.
const auditWindow = 30 * 24 * time.Hour

// applyReversals re-verifies completions against the current snapshot and
// unwinds the ones that no longer hold. Each reversal runs in its own
// transaction: ledger decrement, audit-trail delete and replacement task
// stand or fall together, and one failure never blocks the rest.
// Returns the IDs of successfully reversed completions.
func (s *service) applyReversals(ctx context.Context, userID, locationID uuid.UUID, completed []entity.CompletedTask, snap engine.Snapshot, now time.Time) map[uuid.UUID]struct{} {
	reversed := make(map[uuid.UUID]struct{})
	if len(completed) == 0 {
		return reversed
	}

	records := make([]engine.CompletedRecord, 0, len(completed))
	byID := make(map[string]entity.CompletedTask, len(completed))
	for _, c := range completed {
		records = append(records, engine.CompletedRecord{
			ID:               c.ID.String(),
			TemplateID:       c.TemplateID,
			Title:            c.Title,
			Type:             c.Type,
			Category:         c.Category,
			VerificationType: c.VerificationType,
			Points:           c.Points,
			CompletedAt:      c.CompletedAt,
		})
		byID[c.ID.String()] = c
	}

	result := engine.Audit(records, snap)

	for _, rec := range result.Reversed {
		orig := byID[rec.ID]

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txRepo := repo.WithTx(tx)

			if err := s.progressService.ReverseCompletion(ctx, tx, locationID, orig.Points, orig.Category, orig.CompletedAt, now); err != nil {
				return err
			}
			if err := txRepo.DeleteCompleted(ctx, orig.ID); err != nil {
				return err
			}
			return txRepo.CreateBatch(ctx, []*entity.Task{s.reissueTask(userID, locationID, orig, now)})
		})
		if err != nil {
			log.Printf("tasks: reversal failed for completion %s: %v", orig.ID, err)
			continue
		}

		reversed[orig.ID] = struct{}{}
		s.notify(ctx, &entity.Notification{
			UserID:     userID,
			LocationID: locationID,
			EntityID:   orig.TaskID,
			EntityType: "task",
			Type:       entity.NotificationTypeTaskReversed,
			Message:    fmt.Sprintf("%q no longer checks out on your profile. Points were removed and the task was rescheduled.", orig.Title),
		})
	}

	return reversed
}

// reissueTask rebuilds the reversed task for the first week of next month at
// half the original points. Template display fields come from the catalog
// when the template still exists, otherwise from the audit-trail copy.
func (s *service) reissueTask(userID, locationID uuid.UUID, orig entity.CompletedTask, now time.Time) *entity.Task {
	task := &entity.Task{
		UserID:     userID,
		LocationID: locationID,
		TemplateID: orig.TemplateID,
		Title:      orig.Title,
		Type:       orig.Type,
		Category:   orig.Category,
		Points:     engine.ReissuePoints(orig.Points),
		Status:     entity.TaskStatusPending,
		Week:       period.NextMonthWeekKey(now),
		Reason:     "This task was reopened because its result is no longer visible on your profile.",
		Urgency:    string(engine.UrgencyRecommended),
	}

	if tpl, ok := s.catalogService.TemplateByID(orig.TemplateID); ok {
		task.Description = tpl.Description
		task.Priority = string(tpl.Priority)
		task.Impact = string(tpl.Impact)
		task.EstimatedTime = tpl.EstimatedTime
	}

	return task
}

// AuditSweep re-verifies recent completions for every location. Wired to a
// background ticker in the server bootstrap.
func (s *service) AuditSweep(ctx context.Context) error {
	locations, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	swept := 0

	for _, loc := range locations {
		completed, err := s.taskRepo.FindCompletedSince(ctx, loc.ID, now.Add(-auditWindow))
		if err != nil {
			log.Printf("tasks: audit sweep query failed for location %s: %v", loc.ID, err)
			continue
		}
		if len(completed) == 0 {
			continue
		}

		snap, err := s.locationService.GetSnapshot(ctx, loc.UserID, loc.ID)
		if err != nil {
			log.Printf("tasks: audit sweep snapshot failed for location %s: %v", loc.ID, err)
			continue
		}

		reversed := s.applyReversals(ctx, loc.UserID, loc.ID, completed, snap, now)
		swept += len(reversed)
	}

	if swept > 0 {
		log.Printf("tasks: audit sweep reversed %d completions", swept)
	}
	return nil
}
