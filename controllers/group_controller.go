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

type groupPayload struct {
	Name string `json:"name"`
}

type GroupController struct {
	GroupSvc services.InterfaceGroupService
	Logger   *zap.Logger
}

func NewGroupController(groupSvc services.InterfaceGroupService, logger *zap.Logger) *GroupController {
	return &GroupController{GroupSvc: groupSvc, Logger: logger}
}

func bindGroupName(c *gin.Context) (string, bool) {
	var payload groupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return "", false
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		utils.JSONError(c, http.StatusBadRequest, "Group name is required")
		return "", false
	}
	return name, true
}

// GetGroups GET /groups
func (gc *GroupController) GetGroups(c *gin.Context) {
	groups, err := gc.GroupSvc.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, gc.Logger, err, "")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// CreateGroup POST /groups
func (gc *GroupController) CreateGroup(c *gin.Context) {
	name, ok := bindGroupName(c)
	if !ok {
		return
	}

	group, err := gc.GroupSvc.Create(c.Request.Context(), middleware.CurrentUserID(c), name)
	if err != nil {
		respondError(c, gc.Logger, err, "")
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Group added successfully", "group", group)
}

// UpdateGroup PUT /groups/:id
func (gc *GroupController) UpdateGroup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	name, ok := bindGroupName(c)
	if !ok {
		return
	}

	group, err := gc.GroupSvc.Update(c.Request.Context(), middleware.CurrentUserID(c), id, name)
	if err != nil {
		respondError(c, gc.Logger, err, "Group not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Group updated successfully", "group", group)
}

// DeleteGroup DELETE /groups/:id
func (gc *GroupController) DeleteGroup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := gc.GroupSvc.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, gc.Logger, err, "Group not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Group deleted successfully", "", nil)
}
