package location

import (
	"errors"
	"fmt"
	"log"

	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lokalpulse.com/gbpdashboard/internal/entity"
	locationDto "lokalpulse.com/gbpdashboard/internal/modules/location/dto"
	"lokalpulse.com/gbpdashboard/internal/modules/location/provider"
	repo "lokalpulse.com/gbpdashboard/internal/modules/location/repository"
	search "lokalpulse.com/gbpdashboard/internal/modules/search/service"
	"lokalpulse.com/gbpdashboard/internal/modules/task/engine"
	"lokalpulse.com/gbpdashboard/pkg/apperror"
)

type Service interface {
	CreateLocation(ctx context.Context, userID uuid.UUID, req locationDto.CreateLocationRequest) (*entity.Location, error)
	GetMyLocations(ctx context.Context, userID uuid.UUID) ([]*entity.Location, error)
	GetLocation(ctx context.Context, userID, locationID uuid.UUID) (*entity.Location, error)
	UpdateLocation(ctx context.Context, userID, locationID uuid.UUID, req locationDto.UpdateLocationRequest) error
	DeleteLocation(ctx context.Context, userID, locationID uuid.UUID) error
	GetSnapshot(ctx context.Context, userID, locationID uuid.UUID) (engine.Snapshot, error)
}

type service struct {
	locationRepo repo.Repository
	snapshots    provider.SnapshotProvider
	meili        search.MeiliSearchService
}

func NewService(locationRepo repo.Repository, snapshots provider.SnapshotProvider, meili search.MeiliSearchService) Service {
	return &service{locationRepo: locationRepo, snapshots: snapshots, meili: meili}
}

func (s *service) CreateLocation(ctx context.Context, userID uuid.UUID, req locationDto.CreateLocationRequest) (*entity.Location, error) {
	if existing, err := s.locationRepo.FindByPlaceID(ctx, req.GooglePlaceID); err == nil && existing != nil {
		return nil, fmt.Errorf("location already registered: %w", apperror.ErrBadRequest)
	}

	location := &entity.Location{
		UserID:          userID,
		GooglePlaceID:   req.GooglePlaceID,
		Name:            req.Name,
		Address:         req.Address,
		PrimaryCategory: req.PrimaryCategory,
		Website:         req.Website,
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}

	if s.meili != nil {
		if err := s.meili.IndexLocation(location); err != nil {
			log.Printf("locations: failed to index location %s: %v", location.ID, err)
		}
	}
	return location, nil
}

func (s *service) GetMyLocations(ctx context.Context, userID uuid.UUID) ([]*entity.Location, error) {
	return s.locationRepo.FindByUserID(ctx, userID)
}

func (s *service) GetLocation(ctx context.Context, userID, locationID uuid.UUID) (*entity.Location, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("location not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	if location.UserID != userID {
		return nil, fmt.Errorf("location belongs to another account: %w", apperror.ErrForbidden)
	}
	return location, nil
}

func (s *service) UpdateLocation(ctx context.Context, userID, locationID uuid.UUID, req locationDto.UpdateLocationRequest) error {
	location, err := s.GetLocation(ctx, userID, locationID)
	if err != nil {
		return err
	}

	location.Name = req.Name
	location.Address = req.Address
	location.PrimaryCategory = req.PrimaryCategory
	location.Website = req.Website

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return err
	}

	if s.meili != nil {
		if err := s.meili.IndexLocation(location); err != nil {
			log.Printf("locations: failed to reindex location %s: %v", location.ID, err)
		}
	}
	return nil
}

func (s *service) DeleteLocation(ctx context.Context, userID, locationID uuid.UUID) error {
	if _, err := s.GetLocation(ctx, userID, locationID); err != nil {
		return err
	}
	if err := s.locationRepo.Delete(ctx, locationID); err != nil {
		return err
	}

	if s.meili != nil {
		if err := s.meili.DeleteLocation(locationID.String()); err != nil {
			log.Printf("locations: failed to remove location %s from index: %v", locationID, err)
		}
	}
	return nil
}

// GetSnapshot fetches the live profile snapshot for a location. When the
// upstream profile reports no photos, the count of photos uploaded through
// the dashboard fills in, so fresh uploads count before the profile syncs.
func (s *service) GetSnapshot(ctx context.Context, userID, locationID uuid.UUID) (engine.Snapshot, error) {
	location, err := s.GetLocation(ctx, userID, locationID)
	if err != nil {
		return engine.Snapshot{}, err
	}

	snap, err := s.snapshots.GetSnapshot(ctx, location.GooglePlaceID)
	if err != nil {
		return engine.Snapshot{}, err
	}

	// Fill gaps from our own records
	if snap.Name == "" {
		snap.Name = location.Name
	}
	if snap.Address == "" {
		snap.Address = location.Address
	}
	if snap.Website == "" && location.Website != nil {
		snap.Website = *location.Website
	}
	if snap.PhotoCount == 0 {
		if uploaded, err := s.locationRepo.CountPhotos(ctx, locationID); err == nil {
			snap.PhotoCount = int(uploaded)
		}
	}

	return snap, nil
}
