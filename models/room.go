package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Room is an in-room TV device registered by an operator.
type Room struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	RoomNumber string `gorm:"column:room_number;size:50;not null;uniqueIndex:idx_rooms_user_room_number" json:"room_number"`
	DeviceIP   string `gorm:"column:device_ip;size:64" json:"device_ip"`
	MacAddress string `gorm:"column:mac_address;size:32;index" json:"mac_address"`
	// MacKey is the lowercased MAC, NULL when unset. A TV resolves to exactly
	// one room across all operators.
	MacKey       *string   `gorm:"column:mac_key;size:32;uniqueIndex:idx_rooms_mac_key" json:"-"`
	JVersion     string    `gorm:"column:j_version;size:50" json:"j_version"`
	ActiveStatus bool      `gorm:"column:active_status;not null;default:false" json:"active_status"`
	GroupID      *uint     `gorm:"column:group_id;index" json:"group_id"`
	UserID       uint      `gorm:"column:user_id;not null;uniqueIndex:idx_rooms_user_room_number" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type roomFields Room

// MarshalJSON writes active_status as 0 or 1, the column's TINYINT form the
// dashboard compares against.
func (r Room) MarshalJSON() ([]byte, error) {
	active := 0
	if r.ActiveStatus {
		active = 1
	}
	return json.Marshal(struct {
		roomFields
		ActiveStatus int `json:"active_status"`
	}{roomFields(r), active})
}

// UnmarshalJSON accepts active_status as a bool or 0/1.
func (r *Room) UnmarshalJSON(data []byte) error {
	aux := struct {
		*roomFields
		ActiveStatus json.RawMessage `json:"active_status"`
	}{roomFields: (*roomFields)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch string(aux.ActiveStatus) {
	case "", "null":
	case "1", "true":
		r.ActiveStatus = true
	case "0", "false":
		r.ActiveStatus = false
	default:
		return fmt.Errorf("invalid active_status %s", aux.ActiveStatus)
	}
	return nil
}
