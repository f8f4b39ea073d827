package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotel-admin/models"
)

const resourceApps = "apps"

type InterfaceAppService interface {
	List(ctx context.Context, userID uint) ([]models.App, error)
	Create(ctx context.Context, userID uint, packageName string) (*models.App, error)
	Update(ctx context.Context, userID, id uint, packageName string) (*models.App, error)
	Delete(ctx context.Context, userID, id uint) error
}

type AppService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewAppService(db *gorm.DB, notifier Notifier) *AppService {
	return &AppService{DB: db, Notifier: notifier}
}

func (s *AppService) List(ctx context.Context, userID uint) ([]models.App, error) {
	apps := []models.App{}
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&apps).Error
	return apps, err
}

func (s *AppService) Create(ctx context.Context, userID uint, packageName string) (*models.App, error) {
	app := models.App{PackageName: packageName, UserID: userID}
	if err := s.DB.WithContext(ctx).Create(&app).Error; err != nil {
		return nil, fmt.Errorf("create app: %w", err)
	}
	s.Notifier.Publish(ctx, Event{Resource: resourceApps, Action: ActionCreated, ID: app.ID, UserID: userID})
	return &app, nil
}

func (s *AppService) Update(ctx context.Context, userID, id uint, packageName string) (*models.App, error) {
	res := s.DB.WithContext(ctx).Model(&models.App{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("packageName", packageName)
	if res.Error != nil {
		return nil, fmt.Errorf("update app: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	s.Notifier.Publish(ctx, Event{Resource: resourceApps, Action: ActionUpdated, ID: id, UserID: userID})
	return &models.App{ID: id, PackageName: packageName, UserID: userID}, nil
}

func (s *AppService) Delete(ctx context.Context, userID, id uint) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.App{})
	if res.Error != nil {
		return fmt.Errorf("delete app: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.Notifier.Publish(ctx, Event{Resource: resourceApps, Action: ActionDeleted, ID: id, UserID: userID})
	return nil
}
