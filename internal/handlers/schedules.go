package handlers

import (
	"net/http"
	"strconv"

	"github.com/ariandto/iotskripsinew/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errAddSchedule    = "failed to add schedule"
	errFetchSchedule  = "failed to fetch schedule"
	errUpdateSchedule = "failed to update schedule"
	errDeleteSchedule = "failed to delete schedule"
	errInvalidID      = "invalid id"
)

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// @Summary      Add a daily schedule
// @Description  At most one schedule per (room, time) pair.
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        body  body  service.ScheduleInput  true  "room, action (ON|OFF), time (HH:MM:SS)"
// @Success      201  {object}  iotskripsinew.Response
// @Failure      400  {object}  iotskripsinew.Response
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  iotskripsinew.Response
// @Router       /api/v1/schedules [post]
// @Security     BearerAuth
func (h *Handler) addSchedule(c *gin.Context) {
	var in service.ScheduleInput
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}
	entry, err := h.services.Schedules.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, errAddSchedule, err)
		return
	}
	if h.log != nil {
		h.log.Infow("schedule_added", "room", entry.Room, "action", entry.Action, "time", entry.Time)
	}
	respondOK(c, http.StatusCreated, "Schedule added successfully.", entry)
}

// @Summary      List schedules
// @Tags         schedules
// @Produce      json
// @Success      200  {object}  iotskripsinew.Response
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  iotskripsinew.Response
// @Router       /api/v1/schedules [get]
// @Security     BearerAuth
func (h *Handler) listSchedules(c *gin.Context) {
	entries, err := h.services.Schedules.List(c.Request.Context())
	if err != nil {
		h.respondError(c, errFetchSchedule, err)
		return
	}
	respondOK(c, http.StatusOK, "Schedules retrieved.", entries)
}

// @Summary      Get a schedule by ID
// @Tags         schedules
// @Produce      json
// @Param        id  path  int  true  "Schedule ID"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      404  {object}  iotskripsinew.Response
// @Router       /api/v1/schedules/{id} [get]
// @Security     BearerAuth
func (h *Handler) getSchedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	entry, err := h.services.Schedules.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, errFetchSchedule, err)
		return
	}
	respondOK(c, http.StatusOK, "Schedule retrieved.", entry)
}

// @Summary      Update a schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "Schedule ID"
// @Param        body  body  service.ScheduleInput  true  "Fields to change; empty fields keep stored values"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      400  {object}  iotskripsinew.Response
// @Failure      404  {object}  iotskripsinew.Response
// @Router       /api/v1/schedules/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateSchedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var in service.ScheduleInput
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}
	entry, err := h.services.Schedules.Update(c.Request.Context(), id, in)
	if err != nil {
		h.respondError(c, errUpdateSchedule, err)
		return
	}
	respondOK(c, http.StatusOK, "Schedule updated successfully.", entry)
}

// @Summary      Delete a schedule
// @Tags         schedules
// @Produce      json
// @Param        id  path  int  true  "Schedule ID"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      404  {object}  iotskripsinew.Response
// @Router       /api/v1/schedules/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteSchedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.services.Schedules.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, errDeleteSchedule, err)
		return
	}
	respondOK(c, http.StatusOK, "Schedule deleted successfully.", nil)
}
