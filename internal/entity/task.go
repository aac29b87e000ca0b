package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Task is one concrete weekly assignment of a catalog template to a
// (user, location). Template display fields are denormalized at assignment
// time so later catalog edits never change already-issued tasks.
//
// Uniqueness invariant: no two non-completed tasks may share
// (user_id, location_id, title). Enforced by the generation transaction,
// not by a database constraint, because completed rows may repeat titles.
type Task struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;index:idx_task_user_loc,priority:1;not null" json:"user_id"`
	LocationID uuid.UUID  `gorm:"type:uuid;index:idx_task_user_loc,priority:2;not null" json:"location_id"`
	Location   Location   `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`
	TemplateID string     `gorm:"size:60;not null" json:"template_id"`
	Title      string     `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type       string     `gorm:"size:30" json:"type"`
	Category   string     `gorm:"size:30" json:"category"`
	Priority   string     `gorm:"size:10" json:"priority"`
	Impact     string     `gorm:"size:10" json:"impact"`
	Points     int        `gorm:"not null" json:"points"`
	Status     TaskStatus `gorm:"size:20;default:pending;index" json:"status"`
	Week       string     `gorm:"size:10;index" json:"week"` // ISO week key, e.g. "2025-W44"
	EstimatedTime string  `gorm:"size:30" json:"estimated_time"`
	Reason     string     `gorm:"type:text" json:"reason"`
	Urgency    string     `gorm:"size:15" json:"urgency"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// CompletedTask is the audit-trail copy of a task that reached completed.
// Rows are deleted again when the completion auditor reverses cheated credit.
type CompletedTask struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID       uuid.UUID `gorm:"type:uuid;index" json:"task_id"`
	UserID       uuid.UUID `gorm:"type:uuid;index:idx_completed_user_loc,priority:1;not null" json:"user_id"`
	LocationID   uuid.UUID `gorm:"type:uuid;index:idx_completed_user_loc,priority:2;not null" json:"location_id"`
	TemplateID   string    `gorm:"size:60;not null" json:"template_id"`
	Title        string    `gorm:"size:150;not null" json:"title"`
	Type         string    `gorm:"size:30" json:"type"`
	Category     string    `gorm:"size:30" json:"category"`
	VerificationType string `gorm:"size:30" json:"verification_type"`
	Points       int       `gorm:"not null" json:"points"`
	Week         string    `gorm:"size:10" json:"week"`
	CompletedAt  time.Time `gorm:"index;not null" json:"completed_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *CompletedTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
