package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"lokalpulse.com/gbpdashboard/internal/entity"
	repo "lokalpulse.com/gbpdashboard/internal/modules/notification/repository"
)

// ChannelFor returns the redis pub/sub channel carrying one user's
// notification stream.
func ChannelFor(userID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", userID.String())
}

type Service interface {
	Notify(ctx context.Context, notification *entity.Notification) error
	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	notificationRepo repo.Repository
	redisClient      *redis.Client
}

func NewService(notificationRepo repo.Repository, redisClient *redis.Client) Service {
	return &service{notificationRepo: notificationRepo, redisClient: redisClient}
}

// Notify persists the notification and fans it out over redis pub/sub for
// connected websocket clients. Publish failures are logged, not returned:
// the persisted row is the source of truth.
func (s *service) Notify(ctx context.Context, notification *entity.Notification) error {
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			if err := s.redisClient.Publish(ctx, ChannelFor(notification.UserID), payload).Err(); err != nil {
				log.Printf("notification: publish failed for user %s: %v", notification.UserID, err)
			}
		}
	}

	return nil
}

func (s *service) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.notificationRepo.FindByUserID(ctx, userID, limit, offset)
}

func (s *service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.notificationRepo.MarkAsRead(ctx, userID, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
