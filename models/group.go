package models

// Group is a named set of rooms that messages can target as a whole.
type Group struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:150;not null" json:"name"`
	UserID uint   `gorm:"column:user_id;not null;index" json:"user_id"`
}

func (Group) TableName() string {
	return "user_groups"
}
