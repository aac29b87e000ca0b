package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"lokalpulse.com/gbpdashboard/internal/entity"
	catalog "lokalpulse.com/gbpdashboard/internal/modules/catalog/service"
	locationRepo "lokalpulse.com/gbpdashboard/internal/modules/location/repository"
	location "lokalpulse.com/gbpdashboard/internal/modules/location/service"
	progress "lokalpulse.com/gbpdashboard/internal/modules/progress/service"
	notification "lokalpulse.com/gbpdashboard/internal/modules/notification/service"
	taskDto "lokalpulse.com/gbpdashboard/internal/modules/task/dto"
	"lokalpulse.com/gbpdashboard/internal/modules/task/engine"
	repo "lokalpulse.com/gbpdashboard/internal/modules/task/repository"
	"lokalpulse.com/gbpdashboard/pkg/apperror"
	"lokalpulse.com/gbpdashboard/pkg/period"
)

type Service interface {
	GenerateWeekly(ctx context.Context, userID, locationID uuid.UUID, force bool) (*taskDto.GenerateTasksResponse, error)
	GetTasks(ctx context.Context, userID uuid.UUID, query taskDto.ListTasksQuery) ([]entity.Task, error)
	StartTask(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error)
	CompleteTask(ctx context.Context, userID, taskID uuid.UUID) (*taskDto.CompleteTaskResponse, error)
	GetRecommendations(ctx context.Context, userID, locationID uuid.UUID) (*taskDto.RecommendationsResponse, error)
	AuditSweep(ctx context.Context) error
}

type service struct {
	db                  *gorm.DB
	taskRepo            repo.Repository
	locationRepo        locationRepo.Repository
	locationService     location.Service
	catalogService      catalog.Service
	progressService     progress.Service
	notificationService notification.Service
	redisClient         *redis.Client

	assignAll bool
	lockTTL   time.Duration
}

func NewService(
	db *gorm.DB,
	taskRepo repo.Repository,
	locationRepo locationRepo.Repository,
	locationService location.Service,
	catalogService catalog.Service,
	progressService progress.Service,
	notificationService notification.Service,
	redisClient *redis.Client,
	assignAll bool,
	lockTTL time.Duration,
) Service {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &service{
		db:                  db,
		taskRepo:            taskRepo,
		locationRepo:        locationRepo,
		locationService:     locationService,
		catalogService:      catalogService,
		progressService:     progressService,
		notificationService: notificationService,
		redisClient:         redisClient,
		assignAll:           assignAll,
		lockTTL:             lockTTL,
	}
}

func genLockKey(userID, locationID uuid.UUID, week string) string {
	return fmt.Sprintf("tasks:genlock:%s:%s:%s", userID, locationID, week)
}

// GenerateWeekly produces (or returns) the weekly task batch for a location.
// A redis lock serializes concurrent generation per (user, location, week);
// the insert transaction re-checks active titles so a racing writer that
// slipped past the lock cannot double-assign.
func (s *service) GenerateWeekly(ctx context.Context, userID, locationID uuid.UUID, force bool) (*taskDto.GenerateTasksResponse, error) {
	now := time.Now().UTC()
	week := period.WeekKey(now)

	if s.redisClient != nil {
		acquired, err := s.redisClient.SetNX(ctx, genLockKey(userID, locationID, week), "1", s.lockTTL).Result()
		if err != nil {
			log.Printf("tasks: generation lock unavailable: %v", err)
		} else if !acquired {
			return nil, apperror.ErrGenerationInProgress
		} else {
			defer s.redisClient.Del(context.Background(), genLockKey(userID, locationID, week))
		}
	}

	existing, err := s.taskRepo.FindByWeek(ctx, userID, locationID, week)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 && !force {
		return s.existingBatchResponse(ctx, userID, locationID, week, existing)
	}

	// GetSnapshot also verifies the location belongs to this user
	snap, err := s.locationService.GetSnapshot(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}

	if force {
		if err := s.taskRepo.DeletePendingBatch(ctx, userID, locationID, week); err != nil {
			return nil, err
		}
	}

	// Re-verify past completions against the live snapshot before they are
	// allowed to suppress templates this week.
	completed, err := s.taskRepo.FindCompletedByUserLocation(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}
	reversed := s.applyReversals(ctx, userID, locationID, completed, snap, now)

	input, err := s.buildEngineInput(ctx, userID, locationID, snap, completed, reversed, now)
	if err != nil {
		return nil, err
	}

	result := engine.Generate(input)
	if result.Status != engine.StatusOK {
		return &taskDto.GenerateTasksResponse{
			Status:   result.Status,
			Week:     week,
			Tasks:    []entity.Task{},
			Analysis: result.Analysis,
		}, nil
	}

	rows := s.buildTaskRows(userID, locationID, week, result)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)

		titles := make([]string, 0, len(rows))
		for _, row := range rows {
			titles = append(titles, row.Title)
		}
		count, err := txRepo.CountActiveWithTitles(ctx, userID, locationID, titles)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.ErrDuplicateAssignment
		}

		return txRepo.CreateBatch(ctx, rows)
	})
	if errors.Is(err, apperror.ErrDuplicateAssignment) {
		// A concurrent generation won the race; surface its batch
		if batch, ferr := s.taskRepo.FindByWeek(ctx, userID, locationID, week); ferr == nil && len(batch) > 0 {
			return s.existingBatchResponse(ctx, userID, locationID, week, batch)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &entity.Notification{
		UserID:     userID,
		LocationID: locationID,
		EntityType: "task",
		Type:       entity.NotificationTypeTasksReady,
		Message:    fmt.Sprintf("Your %d tasks for week %s are ready.", len(rows), week),
	})

	tasks := make([]entity.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, *row)
	}

	return &taskDto.GenerateTasksResponse{
		Status:                result.Status,
		Week:                  week,
		Tasks:                 tasks,
		Analysis:              result.Analysis,
		TotalEstimatedMinutes: result.TotalEstimatedMinutes,
	}, nil
}

func (s *service) existingBatchResponse(ctx context.Context, userID, locationID uuid.UUID, week string, batch []entity.Task) (*taskDto.GenerateTasksResponse, error) {
	snap, err := s.locationService.GetSnapshot(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}
	return &taskDto.GenerateTasksResponse{
		Status:   engine.StatusOK,
		Week:     week,
		Tasks:    batch,
		Analysis: engine.Analyze(snap),
	}, nil
}

// buildEngineInput assembles the pure engine input from persisted state.
// Reversed completion IDs are excluded so a just-reversed template is
// immediately assignable again.
func (s *service) buildEngineInput(ctx context.Context, userID, locationID uuid.UUID, snap engine.Snapshot, completed []entity.CompletedTask, reversed map[uuid.UUID]struct{}, now time.Time) (engine.Input, error) {
	active, err := s.taskRepo.FindActiveByUserLocation(ctx, userID, locationID)
	if err != nil {
		return engine.Input{}, err
	}
	activeTitles := make([]string, 0, len(active))
	for _, t := range active {
		activeTitles = append(activeTitles, t.Title)
	}

	completions := make(map[string]time.Time, len(completed))
	for _, c := range completed {
		if _, wasReversed := reversed[c.ID]; wasReversed {
			continue
		}
		if last, ok := completions[c.Title]; !ok || c.CompletedAt.After(last) {
			completions[c.Title] = c.CompletedAt
		}
	}

	progressResp, err := s.progressService.GetProgress(ctx, userID, locationID)
	if err != nil {
		return engine.Input{}, err
	}
	p := progressResp.Progress

	return engine.Input{
		Catalog:  s.catalogService.Templates(),
		Snapshot: snap,
		Progress: engine.Progress{
			TotalPoints:     p.TotalPoints,
			WeeklyPoints:    p.WeeklyPoints,
			MonthlyPoints:   p.MonthlyPoints,
			TasksCompleted:  p.TasksCompleted,
			CurrentStreak:   p.CurrentStreak,
			LongestStreak:   p.LongestStreak,
			ProfileScore:    p.ProfileScore,
			EngagementScore: p.EngagementScore,
			ContentScore:    p.ContentScore,
			Level:           p.Level,
		},
		Weights:      engine.DefaultWeights(),
		ActiveTitles: activeTitles,
		Completions:  completions,
		Now:          now,
		AssignAll:    s.assignAll,
	}, nil
}

func (s *service) buildTaskRows(userID, locationID uuid.UUID, week string, result engine.Result) []*entity.Task {
	type annotation struct {
		reason  string
		urgency string
	}
	annotations := make(map[string]annotation, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		annotations[rec.Template.ID] = annotation{reason: rec.Reason, urgency: string(rec.Urgency)}
	}

	rows := make([]*entity.Task, 0, len(result.Tasks))
	for _, tpl := range result.Tasks {
		ann := annotations[tpl.ID]
		rows = append(rows, &entity.Task{
			UserID:        userID,
			LocationID:    locationID,
			TemplateID:    tpl.ID,
			Title:         tpl.Title,
			Description:   tpl.Description,
			Type:          tpl.Type,
			Category:      tpl.Category,
			Priority:      string(tpl.Priority),
			Impact:        string(tpl.Impact),
			Points:        tpl.Points,
			Status:        entity.TaskStatusPending,
			Week:          week,
			EstimatedTime: tpl.EstimatedTime,
			Reason:        ann.reason,
			Urgency:       ann.urgency,
		})
	}
	return rows
}

func (s *service) GetTasks(ctx context.Context, userID uuid.UUID, query taskDto.ListTasksQuery) ([]entity.Task, error) {
	locationID, err := uuid.Parse(query.LocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location id: %w", apperror.ErrBadRequest)
	}

	if query.Week != "" {
		return s.taskRepo.FindByWeek(ctx, userID, locationID, query.Week)
	}
	return s.taskRepo.FindByUserLocation(ctx, userID, locationID, query.Status)
}

func (s *service) StartTask(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error) {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status != entity.TaskStatusPending {
		return nil, fmt.Errorf("task is %s: %w", task.Status, apperror.ErrInvalidTransition)
	}

	task.Status = entity.TaskStatusInProgress
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask finalizes an in-progress task: the status flip, the audit
// trail row and the ledger credit commit or roll back together.
func (s *service) CompleteTask(ctx context.Context, userID, taskID uuid.UUID) (*taskDto.CompleteTaskResponse, error) {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status != entity.TaskStatusInProgress {
		return nil, fmt.Errorf("task is %s, start it first: %w", task.Status, apperror.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	var credit progress.CreditResult

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)

		task.Status = entity.TaskStatusCompleted
		if err := txRepo.Update(ctx, task); err != nil {
			return err
		}

		verification := ""
		if tpl, ok := s.catalogService.TemplateByID(task.TemplateID); ok {
			verification = tpl.VerificationType
		}

		completedRow := &entity.CompletedTask{
			TaskID:           task.ID,
			UserID:           userID,
			LocationID:       task.LocationID,
			TemplateID:       task.TemplateID,
			Title:            task.Title,
			Type:             task.Type,
			Category:         task.Category,
			VerificationType: verification,
			Points:           task.Points,
			Week:             task.Week,
			CompletedAt:      now,
		}
		if err := txRepo.CreateCompleted(ctx, completedRow); err != nil {
			return err
		}

		credit, err = s.progressService.CreditCompletion(ctx, tx, userID, task.LocationID, task.Points, task.Category, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	if credit.LeveledUp {
		s.notify(ctx, &entity.Notification{
			UserID:     userID,
			LocationID: task.LocationID,
			EntityID:   task.ID,
			EntityType: "progress",
			Type:       entity.NotificationTypeLevelUp,
			Message:    fmt.Sprintf("Your location reached level %d!", credit.NewLevel),
		})
	}

	return &taskDto.CompleteTaskResponse{
		Task:      *task,
		Points:    task.Points,
		LeveledUp: credit.LeveledUp,
		NewLevel:  credit.NewLevel,
	}, nil
}

// GetRecommendations runs the engine pipeline without persisting anything.
func (s *service) GetRecommendations(ctx context.Context, userID, locationID uuid.UUID) (*taskDto.RecommendationsResponse, error) {
	snap, err := s.locationService.GetSnapshot(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}

	completed, err := s.taskRepo.FindCompletedByUserLocation(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}

	input, err := s.buildEngineInput(ctx, userID, locationID, snap, completed, nil, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	result := engine.Generate(input)
	return &taskDto.RecommendationsResponse{
		Recommendations: result.Recommendations,
		Analysis:        result.Analysis,
	}, nil
}

func (s *service) ownedTask(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, fmt.Errorf("task belongs to another account: %w", apperror.ErrForbidden)
	}
	return task, nil
}

func (s *service) notify(ctx context.Context, n *entity.Notification) {
	if s.notificationService == nil {
		return
	}
	if err := s.notificationService.Notify(ctx, n); err != nil {
		log.Printf("tasks: notification failed: %v", err)
	}
}
