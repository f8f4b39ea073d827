package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-admin/models"
)

const resourceRooms = "rooms"

type RoomInput struct {
	RoomNumber   string
	DeviceIP     string
	MacAddress   string
	JVersion     string
	ActiveStatus bool
	GroupID      *uint
}

type InterfaceRoomService interface {
	List(ctx context.Context, userID uint) ([]models.Room, error)
	Create(ctx context.Context, userID uint, in RoomInput) (*models.Room, error)
	Update(ctx context.Context, userID, id uint, in RoomInput) (*models.Room, error)
	Delete(ctx context.Context, userID, id uint) error
}

type RoomService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewRoomService(db *gorm.DB, notifier Notifier) *RoomService {
	return &RoomService{DB: db, Notifier: notifier}
}

func (s *RoomService) List(ctx context.Context, userID uint) ([]models.Room, error) {
	rooms := []models.Room{}
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) Create(ctx context.Context, userID uint, in RoomInput) (*models.Room, error) {
	db := s.DB.WithContext(ctx)

	if err := ensureGroupOwned(db, userID, in.GroupID); err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Room{}).
		Where("user_id = ? AND room_number = ?", userID, in.RoomNumber).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check room number: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateRoomNumber
	}

	key := macKey(in.MacAddress)
	if err := ensureMacFree(db, key, 0); err != nil {
		return nil, err
	}

	room := models.Room{
		RoomNumber:   in.RoomNumber,
		DeviceIP:     in.DeviceIP,
		MacAddress:   in.MacAddress,
		MacKey:       key,
		JVersion:     in.JVersion,
		ActiveStatus: in.ActiveStatus,
		GroupID:      in.GroupID,
		UserID:       userID,
	}
	if err := db.Create(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, duplicateRoomError(err)
		}
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceRooms, Action: ActionCreated, ID: room.ID, UserID: userID})
	return &room, nil
}

func (s *RoomService) Update(ctx context.Context, userID, id uint, in RoomInput) (*models.Room, error) {
	db := s.DB.WithContext(ctx)

	var room models.Room
	if err := db.Where("id = ? AND user_id = ?", id, userID).Take(&room).Error; err != nil {
		return nil, notFound(err)
	}

	if err := ensureGroupOwned(db, userID, in.GroupID); err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Room{}).
		Where("user_id = ? AND room_number = ? AND id <> ?", userID, in.RoomNumber, id).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check room number: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateRoomNumber
	}

	key := macKey(in.MacAddress)
	if err := ensureMacFree(db, key, id); err != nil {
		return nil, err
	}

	room.RoomNumber = in.RoomNumber
	room.DeviceIP = in.DeviceIP
	room.MacAddress = in.MacAddress
	room.MacKey = key
	room.JVersion = in.JVersion
	room.ActiveStatus = in.ActiveStatus
	room.GroupID = in.GroupID
	room.UpdatedAt = db.NowFunc()

	// map form so false and NULL are written too
	res := db.Model(&models.Room{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"room_number":   room.RoomNumber,
			"device_ip":     room.DeviceIP,
			"mac_address":   room.MacAddress,
			"mac_key":       room.MacKey,
			"j_version":     room.JVersion,
			"active_status": room.ActiveStatus,
			"group_id":      room.GroupID,
			"updated_at":    room.UpdatedAt,
		})
	if res.Error != nil {
		if isDuplicateKey(res.Error) {
			return nil, duplicateRoomError(res.Error)
		}
		return nil, fmt.Errorf("update room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceRooms, Action: ActionUpdated, ID: id, UserID: userID})
	return &room, nil
}

// Delete removes the room and drops its id from the owner's messages.
func (s *RoomService) Delete(ctx context.Context, userID, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Room{})
		if res.Error != nil {
			return fmt.Errorf("delete room: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return detachRoomFromMessages(tx, userID, id)
	})
	if err != nil {
		return err
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceRooms, Action: ActionDeleted, ID: id, UserID: userID})
	return nil
}

func detachRoomFromMessages(tx *gorm.DB, userID, roomID uint) error {
	var messages []models.Message
	if err := tx.Select("id", "selected_rooms").
		Where("user_id = ? AND JSON_CONTAINS(selected_rooms, ?)", userID, strconv.FormatUint(uint64(roomID), 10)).
		Find(&messages).Error; err != nil {
		return fmt.Errorf("find messages for room: %w", err)
	}

	for _, m := range messages {
		kept := make([]uint, 0, len(m.SelectedRooms))
		for _, rid := range m.SelectedRooms {
			if rid != roomID {
				kept = append(kept, rid)
			}
		}
		if err := tx.Model(&models.Message{}).
			Where("id = ?", m.ID).
			Update("selected_rooms", datatypes.JSONSlice[uint](kept)).Error; err != nil {
			return fmt.Errorf("detach room from message %d: %w", m.ID, err)
		}
	}
	return nil
}

// macKey normalises a MAC address for the unique mac_key column.
func macKey(mac string) *string {
	key := strings.ToLower(strings.TrimSpace(mac))
	if key == "" {
		return nil
	}
	return &key
}

// ensureMacFree checks that no other room, of any user, holds the MAC.
func ensureMacFree(db *gorm.DB, key *string, selfID uint) error {
	if key == nil {
		return nil
	}
	var count int64
	if err := db.Model(&models.Room{}).
		Where("(mac_key = ? OR LOWER(mac_address) = ?) AND id <> ?", *key, *key, selfID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check mac address: %w", err)
	}
	if count > 0 {
		return ErrDuplicateMac
	}
	return nil
}

// ensureGroupOwned checks that a non-nil group id names one of the user's groups.
func ensureGroupOwned(db *gorm.DB, userID uint, groupID *uint) error {
	if groupID == nil {
		return nil
	}
	var count int64
	if err := db.Model(&models.Group{}).
		Where("id = ? AND user_id = ?", *groupID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check group: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: group %d", ErrInvalidReference, *groupID)
	}
	return nil
}
