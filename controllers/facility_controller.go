package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-admin/middleware"
	"hotel-admin/models"
	"hotel-admin/services"
	"hotel-admin/utils"
)

type FacilityController struct {
	FacilitySvc services.InterfaceFacilityService
	Files       *services.FileStore
	Logger      *zap.Logger
}

func NewFacilityController(facilitySvc services.InterfaceFacilityService, files *services.FileStore, logger *zap.Logger) *FacilityController {
	return &FacilityController{FacilitySvc: facilitySvc, Files: files, Logger: logger}
}

type facilityResponse struct {
	ID        uint    `json:"id"`
	Category  string  `json:"category"`
	Title     string  `json:"title"`
	Language  string  `json:"language"`
	FileType  string  `json:"file_type"`
	Content   string  `json:"content"`
	UserID    uint    `json:"user_id"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

func toFacilityResponse(f *models.Facility) facilityResponse {
	return facilityResponse{
		ID:        f.ID,
		Category:  f.Category,
		Title:     f.Title,
		Language:  f.Language,
		FileType:  f.FileType,
		Content:   f.Content,
		UserID:    f.UserID,
		CreatedAt: utils.FormatTimestamp(f.CreatedAt),
		UpdatedAt: utils.FormatTimestamp(f.UpdatedAt),
	}
}

// bind reads the form fields and saves the optional content file. The caller
// owns the saved file and must remove it if the write fails.
func (fc *FacilityController) bind(c *gin.Context) (services.FacilityInput, bool) {
	in := services.FacilityInput{
		Category: strings.TrimSpace(c.PostForm("category")),
		Title:    strings.TrimSpace(c.PostForm("title")),
		Language: strings.TrimSpace(c.PostForm("language")),
		FileType: strings.TrimSpace(c.PostForm("file_type")),
	}
	if in.Title == "" {
		utils.JSONError(c, http.StatusBadRequest, "Title is required")
		return in, false
	}

	fh, err := optionalFile(c, "content")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid file upload")
		return in, false
	}
	if fh == nil {
		return in, true
	}
	if in.FileType == "" {
		in.FileType = services.MediaType(fh)
	}
	name, err := fc.Files.Save(fh)
	if err != nil {
		respondError(c, fc.Logger, err, "")
		return in, false
	}
	in.Content = name
	return in, true
}

// GetFacilities GET /facilities
func (fc *FacilityController) GetFacilities(c *gin.Context) {
	facilities, err := fc.FacilitySvc.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, fc.Logger, err, "")
		return
	}
	out := make([]facilityResponse, 0, len(facilities))
	for i := range facilities {
		out = append(out, toFacilityResponse(&facilities[i]))
	}
	c.JSON(http.StatusOK, out)
}

// CreateFacility POST /facilities/add
func (fc *FacilityController) CreateFacility(c *gin.Context) {
	in, ok := fc.bind(c)
	if !ok {
		return
	}

	facility, err := fc.FacilitySvc.Create(c.Request.Context(), middleware.CurrentUserID(c), in)
	if err != nil {
		fc.Files.Remove(in.Content)
		respondError(c, fc.Logger, err, "")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Facility added successfully", "facility", toFacilityResponse(facility))
}

// UpdateFacility PUT /facilities/:id
func (fc *FacilityController) UpdateFacility(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	in, ok := fc.bind(c)
	if !ok {
		return
	}

	facility, replaced, err := fc.FacilitySvc.Update(c.Request.Context(), middleware.CurrentUserID(c), id, in)
	if err != nil {
		fc.Files.Remove(in.Content)
		respondError(c, fc.Logger, err, "Facility not found")
		return
	}
	fc.Files.Remove(replaced)
	utils.JSONMessage(c, http.StatusOK, "Facility updated successfully", "facility", toFacilityResponse(facility))
}

// DeleteFacility DELETE /facilities/:id
func (fc *FacilityController) DeleteFacility(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	facility, err := fc.FacilitySvc.Delete(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, fc.Logger, err, "Facility not found")
		return
	}
	fc.Files.Remove(facility.Content)
	utils.JSONMessage(c, http.StatusOK, "Facility deleted successfully", "", nil)
}
