package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotel-admin/models"
)

const resourceFacilities = "facilities"

// FacilityInput carries the form fields; an empty Content keeps the stored file.
type FacilityInput struct {
	Category string
	Title    string
	Language string
	FileType string
	Content  string
}

type InterfaceFacilityService interface {
	List(ctx context.Context, userID uint) ([]models.Facility, error)
	Create(ctx context.Context, userID uint, in FacilityInput) (*models.Facility, error)
	// Update returns the file name that was replaced, if any.
	Update(ctx context.Context, userID, id uint, in FacilityInput) (*models.Facility, string, error)
	// Delete returns the removed row so the caller can drop its file.
	Delete(ctx context.Context, userID, id uint) (*models.Facility, error)
}

type FacilityService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewFacilityService(db *gorm.DB, notifier Notifier) *FacilityService {
	return &FacilityService{DB: db, Notifier: notifier}
}

func (s *FacilityService) List(ctx context.Context, userID uint) ([]models.Facility, error) {
	facilities := []models.Facility{}
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&facilities).Error
	return facilities, err
}

func (s *FacilityService) Create(ctx context.Context, userID uint, in FacilityInput) (*models.Facility, error) {
	facility := models.Facility{
		Category: in.Category,
		Title:    in.Title,
		Language: in.Language,
		FileType: in.FileType,
		Content:  in.Content,
		UserID:   userID,
	}
	if err := s.DB.WithContext(ctx).Create(&facility).Error; err != nil {
		return nil, fmt.Errorf("create facility: %w", err)
	}
	s.Notifier.Publish(ctx, Event{Resource: resourceFacilities, Action: ActionCreated, ID: facility.ID, UserID: userID})
	return &facility, nil
}

func (s *FacilityService) Update(ctx context.Context, userID, id uint, in FacilityInput) (*models.Facility, string, error) {
	db := s.DB.WithContext(ctx)

	var facility models.Facility
	if err := db.Where("id = ? AND user_id = ?", id, userID).Take(&facility).Error; err != nil {
		return nil, "", notFound(err)
	}

	now := db.NowFunc()
	updates := map[string]interface{}{
		"category":   in.Category,
		"title":      in.Title,
		"language":   in.Language,
		"file_type":  in.FileType,
		"updated_at": now,
	}
	replaced := ""
	if in.Content != "" {
		updates["content"] = in.Content
		replaced = facility.Content
	}

	res := db.Model(&models.Facility{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates)
	if res.Error != nil {
		return nil, "", fmt.Errorf("update facility: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, "", ErrNotFound
	}

	facility.Category = in.Category
	facility.Title = in.Title
	facility.Language = in.Language
	facility.FileType = in.FileType
	facility.UpdatedAt = now
	if in.Content != "" {
		facility.Content = in.Content
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceFacilities, Action: ActionUpdated, ID: id, UserID: userID})
	return &facility, replaced, nil
}

func (s *FacilityService) Delete(ctx context.Context, userID, id uint) (*models.Facility, error) {
	db := s.DB.WithContext(ctx)

	var facility models.Facility
	if err := db.Where("id = ? AND user_id = ?", id, userID).Take(&facility).Error; err != nil {
		return nil, notFound(err)
	}
	if err := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Facility{}).Error; err != nil {
		return nil, fmt.Errorf("delete facility: %w", err)
	}

	s.Notifier.Publish(ctx, Event{Resource: resourceFacilities, Action: ActionDeleted, ID: id, UserID: userID})
	return &facility, nil
}
