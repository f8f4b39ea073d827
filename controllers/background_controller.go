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

type BackgroundController struct {
	BackgroundSvc services.InterfaceBackgroundService
	Files         *services.FileStore
	MaxImageBytes int64
	Logger        *zap.Logger
}

func NewBackgroundController(backgroundSvc services.InterfaceBackgroundService, files *services.FileStore, maxImageBytes int64, logger *zap.Logger) *BackgroundController {
	return &BackgroundController{BackgroundSvc: backgroundSvc, Files: files, MaxImageBytes: maxImageBytes, Logger: logger}
}

// GetBackgrounds GET /backgrounds
func (bc *BackgroundController) GetBackgrounds(c *gin.Context) {
	backgrounds, err := bc.BackgroundSvc.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, bc.Logger, err, "")
		return
	}
	c.JSON(http.StatusOK, backgrounds)
}

// UploadBackground POST /upload-background
func (bc *BackgroundController) UploadBackground(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.PostForm("category")))
	if !models.ValidBackgroundCategory(category) {
		utils.JSONError(c, http.StatusBadRequest, "Category must be one of facility, message, livetv")
		return
	}

	fh, err := optionalFile(c, "background")
	if err != nil || fh == nil {
		utils.JSONError(c, http.StatusBadRequest, "Background image is required")
		return
	}
	if err := services.ValidateImage(fh, bc.MaxImageBytes); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	name, err := bc.Files.Save(fh)
	if err != nil {
		respondError(c, bc.Logger, err, "")
		return
	}

	background, replaced, err := bc.BackgroundSvc.Upsert(c.Request.Context(), middleware.CurrentUserID(c), category, name)
	if err != nil {
		bc.Files.Remove(name)
		respondError(c, bc.Logger, err, "")
		return
	}
	bc.Files.Remove(replaced)
	utils.JSONMessage(c, http.StatusOK, "Background uploaded successfully", "background", background)
}
