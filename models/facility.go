package models

import "time"

type Facility struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Category  string    `gorm:"size:100" json:"category"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Language  string    `gorm:"size:50" json:"language"`
	FileType  string    `gorm:"column:file_type;size:20" json:"file_type"`
	Content   string    `gorm:"size:255" json:"content"` // stored file name under the upload dir
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
