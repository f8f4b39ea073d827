package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-admin/middleware"
	"hotel-admin/services"
	"hotel-admin/utils"
)

type ChannelController struct {
	ChannelSvc    services.InterfaceChannelService
	Images        *services.FileStore
	MaxImageBytes int64
	Logger        *zap.Logger
}

func NewChannelController(channelSvc services.InterfaceChannelService, images *services.FileStore, maxImageBytes int64, logger *zap.Logger) *ChannelController {
	return &ChannelController{ChannelSvc: channelSvc, Images: images, MaxImageBytes: maxImageBytes, Logger: logger}
}

// bind validates the form and saves the optional image. The caller owns the
// saved image and must remove it if the write fails.
func (cc *ChannelController) bind(c *gin.Context) (services.ChannelInput, bool) {
	in := services.ChannelInput{
		Name: strings.TrimSpace(c.PostForm("name")),
		URL:  strings.TrimSpace(c.PostForm("url")),
	}
	rawPort := strings.TrimSpace(c.PostForm("port"))
	if in.Name == "" || in.URL == "" || rawPort == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields")
		return in, false
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > 65535 {
		utils.JSONError(c, http.StatusBadRequest, "Port must be a number between 1 and 65535")
		return in, false
	}
	in.Port = port

	fh, err := optionalFile(c, "image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid file upload")
		return in, false
	}
	if fh == nil {
		return in, true
	}
	if err := services.ValidateImage(fh, cc.MaxImageBytes); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return in, false
	}
	name, err := cc.Images.Save(fh)
	if err != nil {
		respondError(c, cc.Logger, err, "")
		return in, false
	}
	in.Image = &name
	return in, true
}

func (cc *ChannelController) discard(in services.ChannelInput) {
	if in.Image != nil {
		cc.Images.Remove(*in.Image)
	}
}

// GetChannels GET /channels
func (cc *ChannelController) GetChannels(c *gin.Context) {
	channels, err := cc.ChannelSvc.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, cc.Logger, err, "")
		return
	}
	c.JSON(http.StatusOK, channels)
}

// CreateChannel POST /channels/add
func (cc *ChannelController) CreateChannel(c *gin.Context) {
	in, ok := cc.bind(c)
	if !ok {
		return
	}

	channel, err := cc.ChannelSvc.Create(c.Request.Context(), middleware.CurrentUserID(c), in)
	if err != nil {
		cc.discard(in)
		respondError(c, cc.Logger, err, "")
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Channel added successfully", "channel", channel)
}

// UpdateChannel PUT /channels/:id
func (cc *ChannelController) UpdateChannel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	in, ok := cc.bind(c)
	if !ok {
		return
	}

	channel, replaced, err := cc.ChannelSvc.Update(c.Request.Context(), middleware.CurrentUserID(c), id, in)
	if err != nil {
		cc.discard(in)
		respondError(c, cc.Logger, err, "Channel not found")
		return
	}
	cc.Images.Remove(replaced)
	utils.JSONMessage(c, http.StatusOK, "Channel updated successfully", "channel", channel)
}

// DeleteChannel DELETE /channels/:id
func (cc *ChannelController) DeleteChannel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	channel, err := cc.ChannelSvc.Delete(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, cc.Logger, err, "Channel not found")
		return
	}
	if channel.Image != nil {
		cc.Images.Remove(*channel.Image)
	}
	utils.JSONMessage(c, http.StatusOK, "Channel deleted successfully", "", nil)
}
