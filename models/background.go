package models

import "time"

// Background categories, one image per category and owner.
const (
	BackgroundFacility = "facility"
	BackgroundMessage  = "message"
	BackgroundLiveTV   = "livetv"
)

type Background struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Category  string    `gorm:"size:20;not null;uniqueIndex:idx_backgrounds_user_category" json:"category"`
	Image     string    `gorm:"size:255;not null" json:"image"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_backgrounds_user_category" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidBackgroundCategory reports whether c is one of the known categories.
func ValidBackgroundCategory(c string) bool {
	switch c {
	case BackgroundFacility, BackgroundMessage, BackgroundLiveTV:
		return true
	}
	return false
}
