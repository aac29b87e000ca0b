package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReplyStatus string

const (
	ReplyStatusDraft     ReplyStatus = "draft"
	ReplyStatusPublished ReplyStatus = "published"
)

// ReviewReply is a reply to a Google review, drafted in the dashboard.
// Body is sanitized before persistence; GoogleReviewID references the
// review on the external profile.
type ReviewReply struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id"`
	LocationID     uuid.UUID   `gorm:"type:uuid;index;not null" json:"location_id"`
	Location       Location    `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`
	GoogleReviewID string      `gorm:"size:120;not null;uniqueIndex:idx_reply_review" json:"google_review_id"`
	ReviewerName   string      `gorm:"size:100" json:"reviewer_name"`
	ReviewRating   int         `json:"review_rating"`
	Body           string      `gorm:"type:text;not null" json:"body"`
	Status         ReplyStatus `gorm:"size:15;default:draft" json:"status"`
	PublishedAt    *time.Time  `json:"published_at,omitempty"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *ReviewReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
