package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-admin/middleware"
	"hotel-admin/services"
	"hotel-admin/utils"
)

type RoomController struct {
	RoomSvc  services.InterfaceRoomService
	GroupSvc services.InterfaceGroupService
	Logger   *zap.Logger
}

func NewRoomController(roomSvc services.InterfaceRoomService, groupSvc services.InterfaceGroupService, logger *zap.Logger) *RoomController {
	return &RoomController{RoomSvc: roomSvc, GroupSvc: groupSvc, Logger: logger}
}

type roomPayload struct {
	RoomNumber   string     `json:"room_number"`
	DeviceIP     string     `json:"device_ip"`
	MacAddress   string     `json:"mac_address"`
	JVersion     string     `json:"j_version"`
	ActiveStatus flexBool   `json:"active_status"`
	GroupID      optionalID `json:"group_id"`
}

func (p roomPayload) input() services.RoomInput {
	return services.RoomInput{
		RoomNumber:   strings.TrimSpace(p.RoomNumber),
		DeviceIP:     strings.TrimSpace(p.DeviceIP),
		MacAddress:   strings.TrimSpace(p.MacAddress),
		JVersion:     strings.TrimSpace(p.JVersion),
		ActiveStatus: bool(p.ActiveStatus),
		GroupID:      p.GroupID.Value,
	}
}

func (rc *RoomController) bind(c *gin.Context) (services.RoomInput, bool) {
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return services.RoomInput{}, false
	}
	in := payload.input()
	if in.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "Room number is required")
		return services.RoomInput{}, false
	}
	return in, true
}

// GetRooms GET /rooms
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.RoomSvc.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, rc.Logger, err, "")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// CreateRoom POST /rooms/add
func (rc *RoomController) CreateRoom(c *gin.Context) {
	in, ok := rc.bind(c)
	if !ok {
		return
	}

	room, err := rc.RoomSvc.Create(c.Request.Context(), middleware.CurrentUserID(c), in)
	if err != nil {
		respondError(c, rc.Logger, err, "")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room added successfully", "room", room)
}

// UpdateRoom PUT /rooms/:id
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	in, ok := rc.bind(c)
	if !ok {
		return
	}

	room, err := rc.RoomSvc.Update(c.Request.Context(), middleware.CurrentUserID(c), id, in)
	if err != nil {
		respondError(c, rc.Logger, err, "Room not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room updated successfully", "room", room)
}

// DeleteRoom DELETE /rooms/:id
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := rc.RoomSvc.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, rc.Logger, err, "Room not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room deleted successfully", "", nil)
}

// ExportRooms GET /rooms/export
func (rc *RoomController) ExportRooms(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)

	rooms, err := rc.RoomSvc.List(ctx, userID)
	if err != nil {
		respondError(c, rc.Logger, err, "")
		return
	}
	groups, err := rc.GroupSvc.List(ctx, userID)
	if err != nil {
		respondError(c, rc.Logger, err, "")
		return
	}
	names := make(map[uint]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}

	data, err := services.ExportRoomsXLSX(rooms, names)
	if err != nil {
		respondError(c, rc.Logger, err, "")
		return
	}

	filename := fmt.Sprintf("rooms-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
