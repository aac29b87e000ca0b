package progress

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"lokalpulse.com/gbpdashboard/internal/entity"
)

// Credit carries one completion's ledger mutation. Counter fields are applied
// as increments; streak, level and last_completed_at are absolute values the
// service computed from the pre-credit state.
type Credit struct {
	UserID          uuid.UUID
	LocationID      uuid.UUID
	Points          int
	DimensionColumn string
	CurrentStreak   int
	LongestStreak   int
	Level           int
	CompletedAt     time.Time
}

// Reversal is the exact inverse of a prior credit. Weekly and monthly
// buckets are only decremented when the original completion still falls in
// the current week/month, mirroring what the credit added at the time.
type Reversal struct {
	LocationID      uuid.UUID
	Points          int
	DimensionColumn string
	InCurrentWeek   bool
	InCurrentMonth  bool
}

type Repository interface {
	FindByLocation(ctx context.Context, locationID uuid.UUID) (*entity.LocationProgress, error)
	ApplyCredit(ctx context.Context, c Credit) error
	ApplyReversal(ctx context.Context, r Reversal) error
	Leaderboard(ctx context.Context, userID uuid.UUID, limit int) ([]entity.LocationProgress, error)
	ResetWeekly(ctx context.Context) error
	ResetMonthly(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a copy of the repository bound to tx, so ledger writes can
// join the caller's transaction.
func WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) FindByLocation(ctx context.Context, locationID uuid.UUID) (*entity.LocationProgress, error) {
	var progress entity.LocationProgress
	err := r.db.WithContext(ctx).Where("location_id = ?", locationID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Zero ledger for locations with no completions yet
			return &entity.LocationProgress{LocationID: locationID, Level: 1}, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *repository) ApplyCredit(ctx context.Context, c Credit) error {
	assignments := map[string]interface{}{
		"total_points":      gorm.Expr("location_progresses.total_points + ?", c.Points),
		"weekly_points":     gorm.Expr("location_progresses.weekly_points + ?", c.Points),
		"monthly_points":    gorm.Expr("location_progresses.monthly_points + ?", c.Points),
		"tasks_completed":   gorm.Expr("location_progresses.tasks_completed + 1"),
		"current_streak":    c.CurrentStreak,
		"longest_streak":    c.LongestStreak,
		"level":             c.Level,
		"last_completed_at": c.CompletedAt,
		"last_updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
	}
	if c.DimensionColumn != "" {
		assignments[c.DimensionColumn] = gorm.Expr("location_progresses."+c.DimensionColumn+" + ?", c.Points)
	}

	row := &entity.LocationProgress{
		LocationID:      c.LocationID,
		UserID:          c.UserID,
		TotalPoints:     c.Points,
		WeeklyPoints:    c.Points,
		MonthlyPoints:   c.Points,
		TasksCompleted:  1,
		CurrentStreak:   c.CurrentStreak,
		LongestStreak:   c.LongestStreak,
		Level:           c.Level,
		LastCompletedAt: &c.CompletedAt,
	}
	switch c.DimensionColumn {
	case "profile_score":
		row.ProfileScore = c.Points
	case "engagement_score":
		row.EngagementScore = c.Points
	case "content_score":
		row.ContentScore = c.Points
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "location_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(row).Error
}

func (r *repository) ApplyReversal(ctx context.Context, rev Reversal) error {
	updates := map[string]interface{}{
		"total_points":    gorm.Expr("total_points - ?", rev.Points),
		"tasks_completed": gorm.Expr("tasks_completed - 1"),
		"last_updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}
	if rev.InCurrentWeek {
		updates["weekly_points"] = gorm.Expr("weekly_points - ?", rev.Points)
	}
	if rev.InCurrentMonth {
		updates["monthly_points"] = gorm.Expr("monthly_points - ?", rev.Points)
	}
	if rev.DimensionColumn != "" {
		updates[rev.DimensionColumn] = gorm.Expr(rev.DimensionColumn+" - ?", rev.Points)
	}

	return r.db.WithContext(ctx).
		Model(&entity.LocationProgress{}).
		Where("location_id = ?", rev.LocationID).
		Updates(updates).Error
}

func (r *repository) Leaderboard(ctx context.Context, userID uuid.UUID, limit int) ([]entity.LocationProgress, error) {
	var rows []entity.LocationProgress
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("user_id = ?", userID).
		Order("total_points DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) ResetWeekly(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&entity.LocationProgress{}).
		Where("weekly_points <> 0").
		Update("weekly_points", 0).Error
}

func (r *repository) ResetMonthly(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&entity.LocationProgress{}).
		Where("monthly_points <> 0").
		Update("monthly_points", 0).Error
}
