package models

import (
	"time"

	"gorm.io/datatypes"
)

// Message is a promotional message shown on the TVs of the targeted rooms
// between StartDate and EndDate.
type Message struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	Title         string                      `gorm:"size:255;not null" json:"title"`
	Description   string                      `gorm:"type:text" json:"description"`
	StartDate     time.Time                   `gorm:"column:start_date;index" json:"start_date"`
	EndDate       time.Time                   `gorm:"column:end_date;index" json:"end_date"`
	FileType      string                      `gorm:"column:file_type;size:20" json:"file_type"`
	Content       datatypes.JSONSlice[string] `gorm:"type:json" json:"content"`
	SelectedRooms datatypes.JSONSlice[uint]   `gorm:"column:selected_rooms;type:json" json:"selected_rooms"`
	GroupID       *uint                       `gorm:"column:group_id;index" json:"group_id"`
	UserID        uint                        `gorm:"column:user_id;not null;index" json:"user_id"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`

	// resolved by MessageService, not stored
	RoomNumbers []string `gorm:"-" json:"room_numbers"`
	GroupName   *string  `gorm:"-" json:"group_name"`
}

// Active reports whether now falls inside the message's display window.
func (m *Message) Active(now time.Time) bool {
	return !now.Before(m.StartDate) && !now.After(m.EndDate)
}

// Targets reports whether the message is addressed to the room, either
// directly or through the room's group.
func (m *Message) Targets(room *Room) bool {
	for _, id := range m.SelectedRooms {
		if id == room.ID {
			return true
		}
	}
	return m.GroupID != nil && room.GroupID != nil && *m.GroupID == *room.GroupID
}
