package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-admin/models"
)

// LauncherFeed is everything the TV launcher in one room displays.
type LauncherFeed struct {
	Room        models.Room         `json:"room"`
	Facilities  []models.Facility   `json:"facilities"`
	Messages    []models.Message    `json:"messages"`
	Channels    []models.Channel    `json:"channels"`
	Apps        []models.App        `json:"apps"`
	Backgrounds []models.Background `json:"backgrounds"`
}

type InterfaceLauncherService interface {
	Feed(ctx context.Context, mac string, now time.Time) (*LauncherFeed, error)
}

type LauncherService struct {
	DB *gorm.DB
}

func NewLauncherService(db *gorm.DB) *LauncherService {
	return &LauncherService{DB: db}
}

// Feed looks the room up by its MAC address and gathers its owner's content.
// Only messages that are currently showing and target this room are included.
func (s *LauncherService) Feed(ctx context.Context, mac string, now time.Time) (*LauncherFeed, error) {
	db := s.DB.WithContext(ctx)

	var room models.Room
	if err := db.Where("LOWER(mac_address) = ?", strings.ToLower(strings.TrimSpace(mac))).
		Take(&room).Error; err != nil {
		return nil, notFound(err)
	}
	if !room.ActiveStatus {
		return nil, ErrRoomInactive
	}

	feed := &LauncherFeed{
		Room:        room,
		Facilities:  []models.Facility{},
		Messages:    []models.Message{},
		Channels:    []models.Channel{},
		Apps:        []models.App{},
		Backgrounds: []models.Background{},
	}

	owner := room.UserID
	if err := db.Where("user_id = ?", owner).Order("id").Find(&feed.Facilities).Error; err != nil {
		return nil, fmt.Errorf("load facilities: %w", err)
	}
	if err := db.Where("user_id = ?", owner).Order("id").Find(&feed.Channels).Error; err != nil {
		return nil, fmt.Errorf("load channels: %w", err)
	}
	if err := db.Where("user_id = ?", owner).Order("id").Find(&feed.Apps).Error; err != nil {
		return nil, fmt.Errorf("load apps: %w", err)
	}
	if err := db.Where("user_id = ?", owner).Order("category").Find(&feed.Backgrounds).Error; err != nil {
		return nil, fmt.Errorf("load backgrounds: %w", err)
	}

	var showing []models.Message
	if err := db.Where("user_id = ? AND start_date <= ? AND end_date >= ?", owner, now, now).
		Order("start_date").Find(&showing).Error; err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	for i := range showing {
		if showing[i].Targets(&room) {
			feed.Messages = append(feed.Messages, showing[i])
		}
	}
	if err := resolveMessageRefs(db, owner, feed.Messages); err != nil {
		return nil, err
	}

	return feed, nil
}
