package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-admin/middleware"
	"hotel-admin/services"
	"hotel-admin/utils"
)

const maxMessageFiles = 5

type MessageController struct {
	MessageSvc services.InterfaceMessageService
	Files      *services.FileStore
	Logger     *zap.Logger
}

func NewMessageController(messageSvc services.InterfaceMessageService, files *services.FileStore, logger *zap.Logger) *MessageController {
	return &MessageController{MessageSvc: messageSvc, Files: files, Logger: logger}
}

// parseSelectedRooms decodes the JSON array sent in the selectedRooms form
// field. Elements may be numbers or numeric strings.
func parseSelectedRooms(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var items []optionalID
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.Value != nil {
			ids = append(ids, *item.Value)
		}
	}
	return ids, nil
}

// bind validates the form and saves any uploaded content files. The caller
// owns the saved files and must remove them if the write fails.
func (mc *MessageController) bind(c *gin.Context) (services.MessageInput, bool) {
	in := services.MessageInput{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: c.PostForm("description"),
		FileType:    strings.TrimSpace(c.PostForm("file_type")),
	}
	if in.Title == "" {
		utils.JSONError(c, http.StatusBadRequest, "Title is required")
		return in, false
	}

	start, okStart := utils.ParseDate(strings.TrimSpace(c.PostForm("start_date")))
	end, okEnd := utils.ParseDate(strings.TrimSpace(c.PostForm("end_date")))
	if !okStart || !okEnd {
		utils.JSONError(c, http.StatusBadRequest, "Valid start_date and end_date are required")
		return in, false
	}
	if end.Before(start) {
		utils.JSONError(c, http.StatusBadRequest, "end_date must not be before start_date")
		return in, false
	}
	in.StartDate, in.EndDate = start, end

	rawRooms := c.PostForm("selectedRooms")
	if rawRooms == "" {
		rawRooms = c.PostForm("selected_rooms")
	}
	rooms, err := parseSelectedRooms(rawRooms)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "selectedRooms must be a JSON array of room ids")
		return in, false
	}
	in.SelectedRooms = rooms

	groupID, err := parseOptionalID(c.PostForm("group_id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid group_id")
		return in, false
	}
	in.GroupID = groupID

	files, err := formFiles(c, "content")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid file upload")
		return in, false
	}
	if len(files) > maxMessageFiles {
		utils.JSONError(c, http.StatusBadRequest, "At most 5 files can be uploaded")
		return in, false
	}
	if len(files) == 0 {
		return in, true
	}
	if in.FileType == "" {
		in.FileType = services.MediaType(files[0])
	}
	names, err := mc.Files.SaveAll(files)
	if err != nil {
		respondError(c, mc.Logger, err, "")
		return in, false
	}
	in.Content = names
	return in, true
}

// GetMessages GET /messages
func (mc *MessageController) GetMessages(c *gin.Context) {
	messages, err := mc.MessageSvc.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, mc.Logger, err, "")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// CreateMessage POST /messages/add
func (mc *MessageController) CreateMessage(c *gin.Context) {
	in, ok := mc.bind(c)
	if !ok {
		return
	}

	message, err := mc.MessageSvc.Create(c.Request.Context(), middleware.CurrentUserID(c), in)
	if err != nil {
		mc.Files.RemoveAll(in.Content)
		respondError(c, mc.Logger, err, "")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Message added successfully", "data", message)
}

// UpdateMessage PUT /messages/:id
func (mc *MessageController) UpdateMessage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	in, ok := mc.bind(c)
	if !ok {
		return
	}

	message, replaced, err := mc.MessageSvc.Update(c.Request.Context(), middleware.CurrentUserID(c), id, in)
	if err != nil {
		mc.Files.RemoveAll(in.Content)
		respondError(c, mc.Logger, err, "Message not found")
		return
	}
	mc.Files.RemoveAll(replaced)
	utils.JSONMessage(c, http.StatusOK, "Message updated successfully", "data", message)
}

// DeleteMessage DELETE /messages/:id
func (mc *MessageController) DeleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	message, err := mc.MessageSvc.Delete(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, mc.Logger, err, "Message not found")
		return
	}
	mc.Files.RemoveAll(message.Content)
	utils.JSONMessage(c, http.StatusOK, "Message deleted successfully", "", nil)
}
