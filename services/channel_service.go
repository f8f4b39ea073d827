package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotel-admin/models"
)

const resourceChannels = "channels"

// ChannelInput carries the form fields; a nil Image keeps the stored image.
type ChannelInput struct {
	Name  string
	URL   string
	Port  int
	Image *string
}

type InterfaceChannelService interface {
	List(ctx context.Context, userID uint) ([]models.Channel, error)
	Create(ctx context.Context, userID uint, in ChannelInput) (*models.Channel, error)
	// Update returns the image file name that was replaced, if any.
	Update(ctx context.Context, userID, id uint, in ChannelInput) (*models.Channel, string, error)
	Delete(ctx context.Context, userID, id uint) (*models.Channel, error)
}

type ChannelService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewChannelService(db *gorm.DB, notifier Notifier) *ChannelService {
	return &ChannelService{DB: db, Notifier: notifier}
}

func (s *ChannelService) List(ctx context.Context, userID uint) ([]models.Channel, error) {
	channels := []models.Channel{}
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&channels).Error
	return channels, err
}

func (s *ChannelService) Create(ctx context.Context, userID uint, in ChannelInput) (*models.Channel, error) {
	channel := models.Channel{
		Name:   in.Name,
		Image:  in.Image,
		URL:    in.URL,
		Port:   in.Port,
		UserID: userID,
	}
	if err := s.DB.WithContext(ctx).Create(&channel).Error; err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}
	s.Notifier.Publish(ctx, Event{Resource: resourceChannels, Action: ActionCreated, ID: channel.ID, UserID: userID})
	return &channel, nil
}

func (s *ChannelService) Update(ctx context.Context, userID, id uint, in ChannelInput) (*models.Channel, string, error) {
	db := s.DB.WithContext(ctx)

	var channel models.Channel
	if err := db.Where("id = ? AND user_id = ?", id, userID).Take(&channel).Error; err != nil {
		return nil, "", notFound(err)
	}

	updates := map[string]interface{}{
		"name": in.Name,
		"url":  in.URL,
		"port": in.Port,
	}
	replaced := ""
	if in.Image != nil {
		updates["image"] = *in.Image
		if channel.Image != nil {
			replaced = *channel.Image
		}
	}

	res := db.Model(&models.Channel{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates)
	if res.Error != nil {
		return nil, "", fmt.Errorf("update channel: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, "", ErrNotFound
	}

	channel.Name = in.Name
	channel.URL = in.URL
	channel.Port = in.Port
	if in.Image != nil {
		channel.Image = in.Image
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceChannels, Action: ActionUpdated, ID: id, UserID: userID})
	return &channel, replaced, nil
}

func (s *ChannelService) Delete(ctx context.Context, userID, id uint) (*models.Channel, error) {
	db := s.DB.WithContext(ctx)

	var channel models.Channel
	if err := db.Where("id = ? AND user_id = ?", id, userID).Take(&channel).Error; err != nil {
		return nil, notFound(err)
	}
	if err := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Channel{}).Error; err != nil {
		return nil, fmt.Errorf("delete channel: %w", err)
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceChannels, Action: ActionDeleted, ID: id, UserID: userID})
	return &channel, nil
}
