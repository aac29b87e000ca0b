package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a single Google Business Profile location owned by a tenant.
type Location struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User            User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	GooglePlaceID   string    `gorm:"size:100;uniqueIndex;not null" json:"google_place_id"`
	Name            string    `gorm:"size:150;not null" json:"name"`
	Address         string    `gorm:"type:text" json:"address"`
	PrimaryCategory string    `gorm:"size:100" json:"primary_category"`
	Website         *string   `gorm:"type:text" json:"website,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LocationPhoto is a photo uploaded through the dashboard for a location.
// The count of uploaded photos backs the snapshot's photo signal when the
// profile API returns none.
type LocationPhoto struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	LocationID uuid.UUID `gorm:"type:uuid;index;not null" json:"location_id"`
	Location   Location  `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	Caption    *string   `gorm:"size:255" json:"caption,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
