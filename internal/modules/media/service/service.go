package media

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	location "lokalpulse.com/gbpdashboard/internal/modules/location/service"
	repo "lokalpulse.com/gbpdashboard/internal/modules/media/repository"
	"lokalpulse.com/gbpdashboard/internal/entity"
	"lokalpulse.com/gbpdashboard/pkg/apperror"
	pkgDto "lokalpulse.com/gbpdashboard/pkg/dto"
	"lokalpulse.com/gbpdashboard/pkg/storage"
)

type Service interface {
	UploadPhoto(ctx context.Context, userID, locationID uuid.UUID, file pkgDto.UploadFile, caption *string) (*entity.LocationPhoto, error)
	GetPhotos(ctx context.Context, userID, locationID uuid.UUID) ([]entity.LocationPhoto, error)
	DeletePhoto(ctx context.Context, userID uuid.UUID, photoID uint) error
}

type service struct {
	mediaRepo       repo.Repository
	locationService location.Service
	fileStorage     storage.ImageStorage
}

func NewService(mediaRepo repo.Repository, locationService location.Service, fileStorage storage.ImageStorage) Service {
	return &service{
		mediaRepo:       mediaRepo,
		locationService: locationService,
		fileStorage:     fileStorage,
	}
}

func (s *service) UploadPhoto(ctx context.Context, userID, locationID uuid.UUID, file pkgDto.UploadFile, caption *string) (*entity.LocationPhoto, error) {
	// Ownership check
	if _, err := s.locationService.GetLocation(ctx, userID, locationID); err != nil {
		return nil, err
	}

	folder := fmt.Sprintf("locations/%s/photos", locationID)
	fileURL, err := s.fileStorage.UploadImage(ctx, file.Reader, folder, file.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	photo := &entity.LocationPhoto{
		UserID:     userID,
		LocationID: locationID,
		FileURL:    fileURL,
		Caption:    caption,
	}
	if err := s.mediaRepo.Create(ctx, photo); err != nil {
		// Best effort cleanup of the orphaned upload
		if delErr := s.fileStorage.DeleteImage(ctx, fileURL); delErr != nil {
			log.Printf("media: failed to clean up orphaned upload %s: %v", fileURL, delErr)
		}
		return nil, err
	}

	return photo, nil
}

func (s *service) GetPhotos(ctx context.Context, userID, locationID uuid.UUID) ([]entity.LocationPhoto, error) {
	if _, err := s.locationService.GetLocation(ctx, userID, locationID); err != nil {
		return nil, err
	}
	return s.mediaRepo.FindByLocation(ctx, locationID)
}

func (s *service) DeletePhoto(ctx context.Context, userID uuid.UUID, photoID uint) error {
	photo, err := s.mediaRepo.FindByID(ctx, photoID)
	if err != nil {
		return fmt.Errorf("photo not found: %w", apperror.ErrNotFound)
	}
	if photo.UserID != userID {
		return fmt.Errorf("photo belongs to another account: %w", apperror.ErrForbidden)
	}

	if err := s.fileStorage.DeleteImage(ctx, photo.FileURL); err != nil {
		log.Printf("media: failed to delete stored image %s: %v", photo.FileURL, err)
	}

	return s.mediaRepo.Delete(ctx, photoID)
}
