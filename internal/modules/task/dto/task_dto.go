package dto

import (
	"lokalpulse.com/gbpdashboard/internal/entity"
	"lokalpulse.com/gbpdashboard/internal/modules/task/engine"
)

type GenerateTasksRequest struct {
	LocationID string `json:"location_id" binding:"required,uuid"`
	Force      bool   `json:"force"`
}

type ListTasksQuery struct {
	LocationID string `form:"location_id" binding:"required,uuid"`
	Week       string `form:"week"`
	Status     string `form:"status" binding:"omitempty,oneof=pending in_progress completed"`
}

type RecommendationsQuery struct {
	LocationID string `form:"location_id" binding:"required,uuid"`
}

type GenerateTasksResponse struct {
	Status                string          `json:"status"`
	Week                  string          `json:"week"`
	Tasks                 []entity.Task   `json:"tasks"`
	Analysis              engine.Analysis `json:"analysis"`
	TotalEstimatedMinutes int             `json:"total_estimated_minutes"`
}

type RecommendationsResponse struct {
	Recommendations []engine.Recommendation `json:"recommendations"`
	Analysis        engine.Analysis         `json:"analysis"`
}

type CompleteTaskResponse struct {
	Task      entity.Task `json:"task"`
	Points    int         `json:"points"`
	LeveledUp bool        `json:"leveled_up"`
	NewLevel  int         `json:"new_level,omitempty"`
}
