package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotel-admin/models"
)

const resourceGroups = "groups"

type InterfaceGroupService interface {
	List(ctx context.Context, userID uint) ([]models.Group, error)
	Create(ctx context.Context, userID uint, name string) (*models.Group, error)
	Update(ctx context.Context, userID, id uint, name string) (*models.Group, error)
	Delete(ctx context.Context, userID, id uint) error
}

type GroupService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewGroupService(db *gorm.DB, notifier Notifier) *GroupService {
	return &GroupService{DB: db, Notifier: notifier}
}

func (s *GroupService) List(ctx context.Context, userID uint) ([]models.Group, error) {
	groups := []models.Group{}
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&groups).Error
	return groups, err
}

func (s *GroupService) Create(ctx context.Context, userID uint, name string) (*models.Group, error) {
	group := models.Group{Name: name, UserID: userID}
	if err := s.DB.WithContext(ctx).Create(&group).Error; err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	s.Notifier.Publish(ctx, Event{Resource: resourceGroups, Action: ActionCreated, ID: group.ID, UserID: userID})
	return &group, nil
}

func (s *GroupService) Update(ctx context.Context, userID, id uint, name string) (*models.Group, error) {
	res := s.DB.WithContext(ctx).Model(&models.Group{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	if res.Error != nil {
		return nil, fmt.Errorf("update group: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	s.Notifier.Publish(ctx, Event{Resource: resourceGroups, Action: ActionUpdated, ID: id, UserID: userID})
	return &models.Group{ID: id, Name: name, UserID: userID}, nil
}

// Delete removes the group and detaches the rooms and messages that pointed at it.
func (s *GroupService) Delete(ctx context.Context, userID, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Group{})
		if res.Error != nil {
			return fmt.Errorf("delete group: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Model(&models.Room{}).
			Where("user_id = ? AND group_id = ?", userID, id).
			Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("detach rooms: %w", err)
		}
		if err := tx.Model(&models.Message{}).
			Where("user_id = ? AND group_id = ?", userID, id).
			Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("detach messages: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceGroups, Action: ActionDeleted, ID: id, UserID: userID})
	return nil
}
