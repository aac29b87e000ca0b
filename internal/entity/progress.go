package entity

import (
	"time"

	"github.com/google/uuid"
)

// LocationProgress is the cumulative points ledger for one location.
// It is never recomputed from scratch: completion credits add, audit
// reversals subtract the exact original amounts. Both writers must be
// serialized per location or the ledger drifts.
type LocationProgress struct {
	LocationID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"location_id"`
	Location        Location   `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`
	UserID          uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	TotalPoints     int        `gorm:"default:0" json:"total_points"`
	WeeklyPoints    int        `gorm:"default:0" json:"weekly_points"`
	MonthlyPoints   int        `gorm:"default:0" json:"monthly_points"`
	TasksCompleted  int        `gorm:"default:0" json:"tasks_completed"`
	CurrentStreak   int        `gorm:"default:0" json:"current_streak"`
	LongestStreak   int        `gorm:"default:0" json:"longest_streak"`
	ProfileScore    int        `gorm:"default:0" json:"profile_score"`
	EngagementScore int        `gorm:"default:0" json:"engagement_score"`
	ContentScore    int        `gorm:"default:0" json:"content_score"`
	Level           int        `gorm:"default:1" json:"level"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
	LastUpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"last_updated_at"`
}
