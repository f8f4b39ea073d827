package models

// Channel is a live-TV stream entry shown in the launcher.
type Channel struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Name   string  `gorm:"size:150;not null" json:"name"`
	Image  *string `gorm:"size:255" json:"image"`
	URL    string  `gorm:"column:url;size:512;not null" json:"url"`
	Port   int     `gorm:"not null" json:"port"`
	UserID uint    `gorm:"column:user_id;not null;index" json:"-"`
}
