package models

// App is an Android package the launcher exposes on the TVs.
type App struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PackageName string `gorm:"column:packageName;size:255;not null" json:"packageName"`
	UserID      uint   `gorm:"column:user_id;not null;index" json:"user_id"`
}
