package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-admin/middleware"
	"hotel-admin/services"
	"hotel-admin/utils"
)

type appPayload struct {
	PackageName string `json:"packageName"`
}

type AppController struct {
	AppSvc services.InterfaceAppService
	Logger *zap.Logger
}

func NewAppController(appSvc services.InterfaceAppService, logger *zap.Logger) *AppController {
	return &AppController{AppSvc: appSvc, Logger: logger}
}

func bindPackageName(c *gin.Context) (string, bool) {
	var payload appPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Package name is required")
		return "", false
	}
	name := strings.TrimSpace(payload.PackageName)
	if name == "" {
		utils.JSONError(c, http.StatusBadRequest, "Package name is required")
		return "", false
	}
	return name, true
}

// GetApps GET /apps
func (ac *AppController) GetApps(c *gin.Context) {
	apps, err := ac.AppSvc.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, ac.Logger, err, "")
		return
	}
	c.JSON(http.StatusOK, apps)
}

// CreateApp POST /apps/add
func (ac *AppController) CreateApp(c *gin.Context) {
	name, ok := bindPackageName(c)
	if !ok {
		return
	}

	app, err := ac.AppSvc.Create(c.Request.Context(), middleware.CurrentUserID(c), name)
	if err != nil {
		respondError(c, ac.Logger, err, "")
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "App added successfully", "app", app)
}

// UpdateApp PUT /apps/:id
func (ac *AppController) UpdateApp(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	name, ok := bindPackageName(c)
	if !ok {
		return
	}

	app, err := ac.AppSvc.Update(c.Request.Context(), middleware.CurrentUserID(c), id, name)
	if err != nil {
		respondError(c, ac.Logger, err, "App not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "App updated successfully", "app", app)
}

// DeleteApp DELETE /apps/:id
func (ac *AppController) DeleteApp(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ac.AppSvc.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, ac.Logger, err, "App not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "App deleted successfully", "", nil)
}
