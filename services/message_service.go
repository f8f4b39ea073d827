package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-admin/models"
)

const resourceMessages = "messages"

// MessageInput carries the form fields. On update a nil Content keeps the
// stored files.
type MessageInput struct {
	Title         string
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	FileType      string
	Content       []string
	SelectedRooms []uint
	GroupID       *uint
}

type InterfaceMessageService interface {
	List(ctx context.Context, userID uint) ([]models.Message, error)
	Create(ctx context.Context, userID uint, in MessageInput) (*models.Message, error)
	// Update returns the file names that were replaced, if any.
	Update(ctx context.Context, userID, id uint, in MessageInput) (*models.Message, []string, error)
	Delete(ctx context.Context, userID, id uint) (*models.Message, error)
}

type MessageService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewMessageService(db *gorm.DB, notifier Notifier) *MessageService {
	return &MessageService{DB: db, Notifier: notifier}
}

func (s *MessageService) List(ctx context.Context, userID uint) ([]models.Message, error) {
	db := s.DB.WithContext(ctx)

	messages := []models.Message{}
	if err := db.Where("user_id = ?", userID).Order("id").Find(&messages).Error; err != nil {
		return nil, err
	}
	if err := resolveMessageRefs(db, userID, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessageService) Create(ctx context.Context, userID uint, in MessageInput) (*models.Message, error) {
	db := s.DB.WithContext(ctx)

	rooms := dedupeIDs(in.SelectedRooms)
	if err := ensureGroupOwned(db, userID, in.GroupID); err != nil {
		return nil, err
	}
	if err := ensureRoomsOwned(db, userID, rooms); err != nil {
		return nil, err
	}

	message := models.Message{
		Title:         in.Title,
		Description:   in.Description,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		FileType:      in.FileType,
		Content:       datatypes.JSONSlice[string](nonNil(in.Content)),
		SelectedRooms: datatypes.JSONSlice[uint](rooms),
		GroupID:       in.GroupID,
		UserID:        userID,
	}
	if err := db.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	single := []models.Message{message}
	if err := resolveMessageRefs(db, userID, single); err != nil {
		return nil, err
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceMessages, Action: ActionCreated, ID: message.ID, UserID: userID})
	return &single[0], nil
}

func (s *MessageService) Update(ctx context.Context, userID, id uint, in MessageInput) (*models.Message, []string, error) {
	db := s.DB.WithContext(ctx)

	var message models.Message
	if err := db.Where("id = ? AND user_id = ?", id, userID).Take(&message).Error; err != nil {
		return nil, nil, notFound(err)
	}

	rooms := dedupeIDs(in.SelectedRooms)
	if err := ensureGroupOwned(db, userID, in.GroupID); err != nil {
		return nil, nil, err
	}
	if err := ensureRoomsOwned(db, userID, rooms); err != nil {
		return nil, nil, err
	}

	now := db.NowFunc()
	updates := map[string]interface{}{
		"title":          in.Title,
		"description":    in.Description,
		"start_date":     in.StartDate,
		"end_date":       in.EndDate,
		"file_type":      in.FileType,
		"selected_rooms": datatypes.JSONSlice[uint](rooms),
		"group_id":       in.GroupID,
		"updated_at":     now,
	}
	var replaced []string
	if in.Content != nil {
		updates["content"] = datatypes.JSONSlice[string](in.Content)
		replaced = []string(message.Content)
	}

	res := db.Model(&models.Message{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates)
	if res.Error != nil {
		return nil, nil, fmt.Errorf("update message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil, ErrNotFound
	}

	message.Title = in.Title
	message.Description = in.Description
	message.StartDate = in.StartDate
	message.EndDate = in.EndDate
	message.FileType = in.FileType
	message.SelectedRooms = datatypes.JSONSlice[uint](rooms)
	message.GroupID = in.GroupID
	message.UpdatedAt = now
	if in.Content != nil {
		message.Content = datatypes.JSONSlice[string](in.Content)
	}

	single := []models.Message{message}
	if err := resolveMessageRefs(db, userID, single); err != nil {
		return nil, nil, err
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceMessages, Action: ActionUpdated, ID: id, UserID: userID})
	return &single[0], replaced, nil
}

func (s *MessageService) Delete(ctx context.Context, userID, id uint) (*models.Message, error) {
	db := s.DB.WithContext(ctx)

	var message models.Message
	if err := db.Where("id = ? AND user_id = ?", id, userID).Take(&message).Error; err != nil {
		return nil, notFound(err)
	}
	if err := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Message{}).Error; err != nil {
		return nil, fmt.Errorf("delete message: %w", err)
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceMessages, Action: ActionDeleted, ID: id, UserID: userID})
	return &message, nil
}

// resolveMessageRefs fills RoomNumbers and GroupName with one query per table.
func resolveMessageRefs(db *gorm.DB, userID uint, messages []models.Message) error {
	var roomIDs, groupIDs []uint
	for _, m := range messages {
		roomIDs = append(roomIDs, m.SelectedRooms...)
		if m.GroupID != nil {
			groupIDs = append(groupIDs, *m.GroupID)
		}
	}

	numbers := map[uint]string{}
	if roomIDs = dedupeIDs(roomIDs); len(roomIDs) > 0 {
		var rooms []models.Room
		if err := db.Select("id", "room_number").
			Where("user_id = ? AND id IN ?", userID, roomIDs).
			Find(&rooms).Error; err != nil {
			return fmt.Errorf("resolve rooms: %w", err)
		}
		for _, r := range rooms {
			numbers[r.ID] = r.RoomNumber
		}
	}

	names := map[uint]string{}
	if groupIDs = dedupeIDs(groupIDs); len(groupIDs) > 0 {
		var groups []models.Group
		if err := db.Where("user_id = ? AND id IN ?", userID, groupIDs).Find(&groups).Error; err != nil {
			return fmt.Errorf("resolve groups: %w", err)
		}
		for _, g := range groups {
			names[g.ID] = g.Name
		}
	}

	for i := range messages {
		m := &messages[i]
		m.RoomNumbers = []string{}
		for _, id := range m.SelectedRooms {
			if n, ok := numbers[id]; ok {
				m.RoomNumbers = append(m.RoomNumbers, n)
			}
		}
		m.GroupName = nil
		if m.GroupID != nil {
			if n, ok := names[*m.GroupID]; ok {
				name := n
				m.GroupName = &name
			}
		}
	}
	return nil
}

// ensureRoomsOwned checks that every id names one of the user's rooms.
func ensureRoomsOwned(db *gorm.DB, userID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := db.Model(&models.Room{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check rooms: %w", err)
	}
	if count != int64(len(ids)) {
		return fmt.Errorf("%w: unknown room in selection", ErrInvalidReference)
	}
	return nil
}

// dedupeIDs drops zero and repeated ids, keeping first-seen order.
func dedupeIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
