package dto

import "io"

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

type IDURIRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// LevelStatus describes a location's position in the level ladder.
// LevelName is always derived from all-time points (levels never demote).
// WeeklyLabel provides context for recent activity.
type LevelStatus struct {
	Level         int     `json:"level"`
	LevelName     string  `json:"level_name"`
	NextLevel     string  `json:"next_level"`
	CurrentPoints int     `json:"current_points"`
	TargetPoints  int     `json:"target_points"`
	Progress      float64 `json:"progress"` // Percentage
	WeeklyPoints  int     `json:"weekly_points"`
	WeeklyLabel   string  `json:"weekly_label"`
}

type UploadFile struct {
	Reader   io.Reader
	FileName string
}
