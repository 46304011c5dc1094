package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errAddRoom    = "failed to add room"
	errFetchRoom  = "failed to fetch room"
	errRenameRoom = "failed to update room"
	errDeleteRoom = "failed to delete room"
)

type roomRequest struct {
	Room string `json:"room" binding:"required"`
}

// @Summary      Add a room
// @Description  Hard cap of 6 rooms.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        body  body  roomRequest  true  "Room name"
// @Success      201  {object}  iotskripsinew.Response
// @Failure      400  {object}  iotskripsinew.Response
// @Router       /api/v1/rooms [post]
// @Security     BearerAuth
func (h *Handler) addRoom(c *gin.Context) {
	var req roomRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	room, err := h.services.Rooms.Create(c.Request.Context(), req.Room)
	if err != nil {
		h.respondError(c, errAddRoom, err)
		return
	}
	respondOK(c, http.StatusCreated, "Room added successfully.", room)
}

// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {object}  iotskripsinew.Response
// @Router       /api/v1/rooms [get]
// @Security     BearerAuth
func (h *Handler) listRooms(c *gin.Context) {
	rooms, err := h.services.Rooms.List(c.Request.Context())
	if err != nil {
		h.respondError(c, errFetchRoom, err)
		return
	}
	respondOK(c, http.StatusOK, "Rooms retrieved.", rooms)
}

// @Summary      Get a room by ID
// @Tags         rooms
// @Produce      json
// @Param        id  path  int  true  "Room ID"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      404  {object}  iotskripsinew.Response
// @Router       /api/v1/rooms/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := h.services.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, errFetchRoom, err)
		return
	}
	respondOK(c, http.StatusOK, "Room retrieved.", room)
}

// @Summary      Rename a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id    path  int          true  "Room ID"
// @Param        body  body  roomRequest  true  "New name"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      404  {object}  iotskripsinew.Response
// @Router       /api/v1/rooms/{id} [put]
// @Security     BearerAuth
func (h *Handler) renameRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req roomRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	room, err := h.services.Rooms.Rename(c.Request.Context(), id, req.Room)
	if err != nil {
		h.respondError(c, errRenameRoom, err)
		return
	}
	respondOK(c, http.StatusOK, "Room updated successfully.", room)
}

// @Summary      Delete a room (cascades to its device state)
// @Tags         rooms
// @Produce      json
// @Param        id  path  int  true  "Room ID"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      404  {object}  iotskripsinew.Response
// @Router       /api/v1/rooms/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.services.Rooms.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, errDeleteRoom, err)
		return
	}
	respondOK(c, http.StatusOK, "Room deleted successfully.", nil)
}
