package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTypeLevelUp      = "level_up"
	NotificationTypeTaskReversed = "task_reversed"
	NotificationTypeTasksReady   = "tasks_ready"
)

type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	LocationID uuid.UUID `gorm:"type:uuid;index" json:"location_id"`
	EntityID   uuid.UUID `gorm:"type:uuid" json:"entity_id"`
	EntityType string    `gorm:"size:30" json:"entity_type"` // "task", "progress"
	Type       string    `gorm:"size:30;not null" json:"type"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	IsRead     bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
