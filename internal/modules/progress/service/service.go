package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	progressDto "lokalpulse.com/gbpdashboard/internal/modules/progress/dto"
	"lokalpulse.com/gbpdashboard/internal/modules/task/engine"
	repo "lokalpulse.com/gbpdashboard/internal/modules/progress/repository"
	"lokalpulse.com/gbpdashboard/pkg/apperror"
	"lokalpulse.com/gbpdashboard/pkg/period"
)

// CreditResult reports what a completion credit did to the ledger.
type CreditResult struct {
	LeveledUp bool
	NewLevel  int
}

type Service interface {
	// CreditCompletion adds a completion to the ledger. Must run inside the
	// caller's completion transaction; pass the tx-bound repository.
	CreditCompletion(ctx context.Context, tx *gorm.DB, userID, locationID uuid.UUID, points int, category string, completedAt time.Time) (CreditResult, error)
	// ReverseCompletion subtracts exactly what the original credit added.
	ReverseCompletion(ctx context.Context, tx *gorm.DB, locationID uuid.UUID, points int, category string, completedAt, now time.Time) error
	GetProgress(ctx context.Context, userID, locationID uuid.UUID) (*progressDto.ProgressResponse, error)
	GetLeaderboard(ctx context.Context, userID uuid.UUID, limit int) ([]progressDto.LeaderboardEntry, error)
}

type service struct {
	progressRepo repo.Repository
}

func NewService(progressRepo repo.Repository) Service {
	return &service{progressRepo: progressRepo}
}

// dimensionColumn maps a task category to the ledger sub-score it feeds.
// Credit and reversal both go through here so the inverse is exact.
func dimensionColumn(category string) string {
	switch category {
	case engine.CategoryBasicInfo, engine.CategoryAttributes:
		return "profile_score"
	case engine.CategoryEngagement:
		return "engagement_score"
	case engine.CategoryVisual, engine.CategoryContent:
		return "content_score"
	default:
		return ""
	}
}

func (s *service) CreditCompletion(ctx context.Context, tx *gorm.DB, userID, locationID uuid.UUID, points int, category string, completedAt time.Time) (CreditResult, error) {
	txRepo := repo.WithTx(tx)

	current, err := txRepo.FindByLocation(ctx, locationID)
	if err != nil {
		return CreditResult{}, err
	}

	streak := nextStreak(current.LastCompletedAt, completedAt, current.CurrentStreak)
	longest := current.LongestStreak
	if streak > longest {
		longest = streak
	}

	oldLevel := LevelForPoints(current.TotalPoints)
	newLevel := LevelForPoints(current.TotalPoints + points)
	// Levels never demote
	if newLevel < current.Level {
		newLevel = current.Level
	}

	err = txRepo.ApplyCredit(ctx, repo.Credit{
		UserID:          userID,
		LocationID:      locationID,
		Points:          points,
		DimensionColumn: dimensionColumn(category),
		CurrentStreak:   streak,
		LongestStreak:   longest,
		Level:           newLevel,
		CompletedAt:     completedAt,
	})
	if err != nil {
		return CreditResult{}, err
	}

	return CreditResult{LeveledUp: newLevel > oldLevel, NewLevel: newLevel}, nil
}

func (s *service) ReverseCompletion(ctx context.Context, tx *gorm.DB, locationID uuid.UUID, points int, category string, completedAt, now time.Time) error {
	return repo.WithTx(tx).ApplyReversal(ctx, repo.Reversal{
		LocationID:      locationID,
		Points:          points,
		DimensionColumn: dimensionColumn(category),
		InCurrentWeek:   period.SameISOWeek(completedAt, now),
		InCurrentMonth:  period.SameMonth(completedAt, now),
	})
}

// nextStreak advances the day streak: consecutive UTC days extend it, a same
// day completion keeps it, anything else resets to 1.
func nextStreak(last *time.Time, completedAt time.Time, current int) int {
	if last == nil || current == 0 {
		return 1
	}
	lastDay := last.UTC().Truncate(24 * time.Hour)
	thisDay := completedAt.UTC().Truncate(24 * time.Hour)
	switch thisDay.Sub(lastDay) {
	case 0:
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}

func (s *service) GetProgress(ctx context.Context, userID, locationID uuid.UUID) (*progressDto.ProgressResponse, error) {
	current, err := s.progressRepo.FindByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if current.UserID != uuid.Nil && current.UserID != userID {
		return nil, fmt.Errorf("progress belongs to another account: %w", apperror.ErrForbidden)
	}

	return &progressDto.ProgressResponse{
		Progress: *current,
		Status:   GetLevelStatus(current.TotalPoints, current.WeeklyPoints),
	}, nil
}

func (s *service) GetLeaderboard(ctx context.Context, userID uuid.UUID, limit int) ([]progressDto.LeaderboardEntry, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	rows, err := s.progressRepo.Leaderboard(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]progressDto.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, progressDto.LeaderboardEntry{
			Rank:           i + 1,
			LocationID:     row.LocationID,
			LocationName:   row.Location.Name,
			TotalPoints:    row.TotalPoints,
			WeeklyPoints:   row.WeeklyPoints,
			TasksCompleted: row.TasksCompleted,
			Status:         GetLevelStatus(row.TotalPoints, row.WeeklyPoints),
		})
	}
	return entries, nil
}
