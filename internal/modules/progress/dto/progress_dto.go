package dto

import (
	"github.com/google/uuid"
	"lokalpulse.com/gbpdashboard/internal/entity"
	pkgDto "lokalpulse.com/gbpdashboard/pkg/dto"
)

type ProgressResponse struct {
	Progress entity.LocationProgress `json:"progress"`
	Status   pkgDto.LevelStatus      `json:"status"`
}

type LeaderboardEntry struct {
	Rank           int                `json:"rank"`
	LocationID     uuid.UUID          `json:"location_id"`
	LocationName   string             `json:"location_name"`
	TotalPoints    int                `json:"total_points"`
	WeeklyPoints   int                `json:"weekly_points"`
	TasksCompleted int                `json:"tasks_completed"`
	Status         pkgDto.LevelStatus `json:"status"`
}

type LeaderboardQuery struct {
	Limit int `form:"limit"`
}
