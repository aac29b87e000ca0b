package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"lokalpulse.com/gbpdashboard/internal/entity"
	location "lokalpulse.com/gbpdashboard/internal/modules/location/service"
	reviewDto "lokalpulse.com/gbpdashboard/internal/modules/review/dto"
	repo "lokalpulse.com/gbpdashboard/internal/modules/review/repository"
	"lokalpulse.com/gbpdashboard/pkg/apperror"
)

type Service interface {
	CreateReply(ctx context.Context, userID uuid.UUID, req reviewDto.CreateReplyRequest) (*entity.ReviewReply, error)
	GetReplies(ctx context.Context, userID uuid.UUID, query reviewDto.ListRepliesQuery) ([]entity.ReviewReply, error)
	UpdateReply(ctx context.Context, userID, replyID uuid.UUID, req reviewDto.UpdateReplyRequest) (*entity.ReviewReply, error)
	PublishReply(ctx context.Context, userID, replyID uuid.UUID) (*entity.ReviewReply, error)
	DeleteReply(ctx context.Context, userID, replyID uuid.UUID) error
}

type service struct {
	reviewRepo      repo.Repository
	locationService location.Service
	sanitizer       *bluemonday.Policy
}

func NewService(reviewRepo repo.Repository, locationService location.Service) Service {
	return &service{
		reviewRepo:      reviewRepo,
		locationService: locationService,
		// Review replies are plain text on the profile; strip all markup
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *service) sanitizeBody(body string) (string, error) {
	clean := strings.TrimSpace(s.sanitizer.Sanitize(body))
	if clean == "" {
		return "", fmt.Errorf("reply body is empty after sanitization: %w", apperror.ErrInvalidInput)
	}
	return clean, nil
}

func (s *service) CreateReply(ctx context.Context, userID uuid.UUID, req reviewDto.CreateReplyRequest) (*entity.ReviewReply, error) {
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location id: %w", apperror.ErrBadRequest)
	}
	if _, err := s.locationService.GetLocation(ctx, userID, locationID); err != nil {
		return nil, err
	}

	if existing, err := s.reviewRepo.FindByGoogleReviewID(ctx, req.GoogleReviewID); err == nil && existing != nil {
		return nil, fmt.Errorf("a reply for this review already exists: %w", apperror.ErrBadRequest)
	}

	body, err := s.sanitizeBody(req.Body)
	if err != nil {
		return nil, err
	}

	reply := &entity.ReviewReply{
		UserID:         userID,
		LocationID:     locationID,
		GoogleReviewID: req.GoogleReviewID,
		ReviewerName:   req.ReviewerName,
		ReviewRating:   req.ReviewRating,
		Body:           body,
		Status:         entity.ReplyStatusDraft,
	}
	if err := s.reviewRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *service) GetReplies(ctx context.Context, userID uuid.UUID, query reviewDto.ListRepliesQuery) ([]entity.ReviewReply, error) {
	locationID, err := uuid.Parse(query.LocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location id: %w", apperror.ErrBadRequest)
	}
	if _, err := s.locationService.GetLocation(ctx, userID, locationID); err != nil {
		return nil, err
	}
	return s.reviewRepo.FindByLocation(ctx, locationID, query.Status)
}

func (s *service) UpdateReply(ctx context.Context, userID, replyID uuid.UUID, req reviewDto.UpdateReplyRequest) (*entity.ReviewReply, error) {
	reply, err := s.ownedReply(ctx, userID, replyID)
	if err != nil {
		return nil, err
	}
	if reply.Status == entity.ReplyStatusPublished {
		return nil, fmt.Errorf("published replies cannot be edited: %w", apperror.ErrBadRequest)
	}

	body, err := s.sanitizeBody(req.Body)
	if err != nil {
		return nil, err
	}

	reply.Body = body
	if err := s.reviewRepo.Update(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *service) PublishReply(ctx context.Context, userID, replyID uuid.UUID) (*entity.ReviewReply, error) {
	reply, err := s.ownedReply(ctx, userID, replyID)
	if err != nil {
		return nil, err
	}
	if reply.Status == entity.ReplyStatusPublished {
		return reply, nil
	}

	now := time.Now().UTC()
	reply.Status = entity.ReplyStatusPublished
	reply.PublishedAt = &now
	if err := s.reviewRepo.Update(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *service) DeleteReply(ctx context.Context, userID, replyID uuid.UUID) error {
	if _, err := s.ownedReply(ctx, userID, replyID); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, replyID)
}

func (s *service) ownedReply(ctx context.Context, userID, replyID uuid.UUID) (*entity.ReviewReply, error) {
	reply, err := s.reviewRepo.FindByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reply not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	if reply.UserID != userID {
		return nil, fmt.Errorf("reply belongs to another account: %w", apperror.ErrForbidden)
	}
	return reply, nil
}
