package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lokalpulse.com/gbpdashboard/internal/entity"
)

type Repository interface {
	CreateBatch(ctx context.Context, tasks []*entity.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	FindByWeek(ctx context.Context, userID, locationID uuid.UUID, week string) ([]entity.Task, error)
	FindActiveByUserLocation(ctx context.Context, userID, locationID uuid.UUID) ([]entity.Task, error)
	FindByUserLocation(ctx context.Context, userID, locationID uuid.UUID, status string) ([]entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	DeletePendingBatch(ctx context.Context, userID, locationID uuid.UUID, week string) error
	CountActiveWithTitles(ctx context.Context, userID, locationID uuid.UUID, titles []string) (int64, error)

	CreateCompleted(ctx context.Context, completed *entity.CompletedTask) error
	FindCompletedByUserLocation(ctx context.Context, userID, locationID uuid.UUID) ([]entity.CompletedTask, error)
	FindCompletedSince(ctx context.Context, locationID uuid.UUID, since time.Time) ([]entity.CompletedTask, error)
	DeleteCompleted(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open transaction.
func WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateBatch(ctx context.Context, tasks []*entity.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var task entity.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *repository) FindByWeek(ctx context.Context, userID, locationID uuid.UUID, week string) ([]entity.Task, error) {
	var tasks []entity.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ? AND week = ?", userID, locationID, week).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) FindActiveByUserLocation(ctx context.Context, userID, locationID uuid.UUID) ([]entity.Task, error) {
	var tasks []entity.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ? AND status <> ?", userID, locationID, entity.TaskStatusCompleted).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) FindByUserLocation(ctx context.Context, userID, locationID uuid.UUID, status string) ([]entity.Task, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ?", userID, locationID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []entity.Task
	err := query.Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

func (r *repository) Update(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *repository) DeletePendingBatch(ctx context.Context, userID, locationID uuid.UUID, week string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ? AND week = ? AND status = ?",
			userID, locationID, week, entity.TaskStatusPending).
		Delete(&entity.Task{}).Error
}

func (r *repository) CountActiveWithTitles(ctx context.Context, userID, locationID uuid.UUID, titles []string) (int64, error) {
	if len(titles) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Task{}).
		Where("user_id = ? AND location_id = ? AND status <> ? AND title IN ?",
			userID, locationID, entity.TaskStatusCompleted, titles).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateCompleted(ctx context.Context, completed *entity.CompletedTask) error {
	return r.db.WithContext(ctx).Create(completed).Error
}

func (r *repository) FindCompletedByUserLocation(ctx context.Context, userID, locationID uuid.UUID) ([]entity.CompletedTask, error) {
	var completed []entity.CompletedTask
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		Order("completed_at DESC").
		Find(&completed).Error
	return completed, err
}

func (r *repository) FindCompletedSince(ctx context.Context, locationID uuid.UUID, since time.Time) ([]entity.CompletedTask, error) {
	var completed []entity.CompletedTask
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND completed_at >= ?", locationID, since).
		Order("completed_at DESC").
		Find(&completed).Error
	return completed, err
}

func (r *repository) DeleteCompleted(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CompletedTask{}, "id = ?", id).Error
}
