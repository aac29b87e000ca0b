package location

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lokalpulse.com/gbpdashboard/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, location *entity.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Location, error)
	FindByPlaceID(ctx context.Context, placeID string) (*entity.Location, error)
	FindAll(ctx context.Context) ([]*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountPhotos(ctx context.Context, locationID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, location *entity.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	var location entity.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Location, error) {
	var locations []*entity.Location
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *repository) FindByPlaceID(ctx context.Context, placeID string) (*entity.Location, error) {
	var location entity.Location
	if err := r.db.WithContext(ctx).Where("google_place_id = ?", placeID).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) FindAll(ctx context.Context) ([]*entity.Location, error) {
	var locations []*entity.Location
	if err := r.db.WithContext(ctx).Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *repository) Update(ctx context.Context, location *entity.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Location{}, "id = ?", id).Error
}

func (r *repository) CountPhotos(ctx context.Context, locationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.LocationPhoto{}).
		Where("location_id = ?", locationID).
		Count(&count).Error
	return count, err
}
