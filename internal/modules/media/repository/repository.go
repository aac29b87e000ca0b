package media

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lokalpulse.com/gbpdashboard/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, photo *entity.LocationPhoto) error
	FindByID(ctx context.Context, id uint) (*entity.LocationPhoto, error)
	FindByLocation(ctx context.Context, locationID uuid.UUID) ([]entity.LocationPhoto, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, photo *entity.LocationPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*entity.LocationPhoto, error) {
	var photo entity.LocationPhoto
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *repository) FindByLocation(ctx context.Context, locationID uuid.UUID) ([]entity.LocationPhoto, error) {
	var photos []entity.LocationPhoto
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("created_at DESC").
		Find(&photos).Error
	return photos, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.LocationPhoto{}, id).Error
}
