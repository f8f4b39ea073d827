package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotel-admin/models"
)

const resourceBackgrounds = "backgrounds"

type InterfaceBackgroundService interface {
	List(ctx context.Context, userID uint) ([]models.Background, error)
	// Upsert stores image as the category background and returns the image
	// file name it replaced, if any.
	Upsert(ctx context.Context, userID uint, category, image string) (*models.Background, string, error)
}

type BackgroundService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewBackgroundService(db *gorm.DB, notifier Notifier) *BackgroundService {
	return &BackgroundService{DB: db, Notifier: notifier}
}

func (s *BackgroundService) List(ctx context.Context, userID uint) ([]models.Background, error) {
	backgrounds := []models.Background{}
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("category").Find(&backgrounds).Error
	return backgrounds, err
}

func (s *BackgroundService) Upsert(ctx context.Context, userID uint, category, image string) (*models.Background, string, error) {
	db := s.DB.WithContext(ctx)

	var bg models.Background
	err := db.Where("user_id = ? AND category = ?", userID, category).Take(&bg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		bg = models.Background{Category: category, Image: image, UserID: userID}
		if err := db.Create(&bg).Error; err != nil {
			return nil, "", fmt.Errorf("create background: %w", err)
		}
		s.Notifier.Publish(ctx, Event{Resource: resourceBackgrounds, Action: ActionCreated, ID: bg.ID, UserID: userID})
		return &bg, "", nil
	case err != nil:
		return nil, "", fmt.Errorf("find background: %w", err)
	}

	replaced := bg.Image
	if err := db.Model(&models.Background{}).Where("id = ?", bg.ID).Update("image", image).Error; err != nil {
		return nil, "", fmt.Errorf("update background: %w", err)
	}
	bg.Image = image

	s.Notifier.Publish(ctx, Event{Resource: resourceBackgrounds, Action: ActionUpdated, ID: bg.ID, UserID: userID})
	return &bg, replaced, nil
}
