package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-admin/models"
	"hotel-admin/services"
	"hotel-admin/utils"
)

// launcherFeedResponse renders facilities the way /facilities does.
type launcherFeedResponse struct {
	Room        models.Room         `json:"room"`
	Facilities  []facilityResponse  `json:"facilities"`
	Messages    []models.Message    `json:"messages"`
	Channels    []models.Channel    `json:"channels"`
	Apps        []models.App        `json:"apps"`
	Backgrounds []models.Background `json:"backgrounds"`
}

func toLauncherFeedResponse(feed *services.LauncherFeed) launcherFeedResponse {
	facilities := make([]facilityResponse, 0, len(feed.Facilities))
	for i := range feed.Facilities {
		facilities = append(facilities, toFacilityResponse(&feed.Facilities[i]))
	}
	return launcherFeedResponse{
		Room:        feed.Room,
		Facilities:  facilities,
		Messages:    feed.Messages,
		Channels:    feed.Channels,
		Apps:        feed.Apps,
		Backgrounds: feed.Backgrounds,
	}
}

type LauncherController struct {
	LauncherSvc services.InterfaceLauncherService
	Logger      *zap.Logger
	now         func() time.Time
}

func NewLauncherController(launcherSvc services.InterfaceLauncherService, logger *zap.Logger) *LauncherController {
	return &LauncherController{LauncherSvc: launcherSvc, Logger: logger, now: time.Now}
}

// GetFeed GET /launcher/:mac
func (lc *LauncherController) GetFeed(c *gin.Context) {
	mac := strings.TrimSpace(c.Param("mac"))
	if mac == "" {
		utils.JSONError(c, http.StatusBadRequest, "MAC address is required")
		return
	}

	feed, err := lc.LauncherSvc.Feed(c.Request.Context(), mac, lc.now())
	if err != nil {
		if errors.Is(err, services.ErrRoomInactive) {
			utils.JSONError(c, http.StatusForbidden, "Room is not active")
			return
		}
		respondError(c, lc.Logger, err, "Room not found")
		return
	}
	c.JSON(http.StatusOK, toLauncherFeedResponse(feed))
}
