package review

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lokalpulse.com/gbpdashboard/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, reply *entity.ReviewReply) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ReviewReply, error)
	FindByLocation(ctx context.Context, locationID uuid.UUID, status string) ([]entity.ReviewReply, error)
	FindByGoogleReviewID(ctx context.Context, googleReviewID string) (*entity.ReviewReply, error)
	Update(ctx context.Context, reply *entity.ReviewReply) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, reply *entity.ReviewReply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ReviewReply, error) {
	var reply entity.ReviewReply
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *repository) FindByLocation(ctx context.Context, locationID uuid.UUID, status string) ([]entity.ReviewReply, error) {
	query := r.db.WithContext(ctx).Where("location_id = ?", locationID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var replies []entity.ReviewReply
	err := query.Order("created_at DESC").Find(&replies).Error
	return replies, err
}

func (r *repository) FindByGoogleReviewID(ctx context.Context, googleReviewID string) (*entity.ReviewReply, error) {
	var reply entity.ReviewReply
	if err := r.db.WithContext(ctx).Where("google_review_id = ?", googleReviewID).First(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *repository) Update(ctx context.Context, reply *entity.ReviewReply) error {
	return r.db.WithContext(ctx).Save(reply).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ReviewReply{}, "id = ?", id).Error
}
