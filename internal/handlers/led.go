package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	errListLed     = "failed to retrieve data"
	errLedStatus   = "failed to update LED status"
	errPowerTotals = "failed to retrieve power data"
	errPowerCalc   = "failed to calculate power consumption"
)

// Request DTO for manual control.
type setStatusRequest struct {
	Room   string `json:"room" binding:"required"`
	Status *int   `json:"status" binding:"required"` // 0 = OFF, 1 = ON
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      List LED states (paginated)
// @Tags         led
// @Produce      json
// @Param        page   query  int  false  "Page (1-based)"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  iotskripsinew.Response
// @Router       /api/v1/led [get]
// @Security     BearerAuth
func (h *Handler) listLedData(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	states, err := h.services.Monitoring.ListStates(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, errListLed, err)
		return
	}
	respondOK(c, http.StatusOK, "Data retrieved successfully", states)
}

// @Summary      Current LED status per room
// @Tags         led
// @Produce      json
// @Success      200  {object}  iotskripsinew.Response
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  iotskripsinew.Response
// @Router       /api/v1/led/status [get]
// @Security     BearerAuth
func (h *Handler) getLedStatus(c *gin.Context) {
	states, err := h.services.Monitoring.StatusByRoom(c.Request.Context())
	if err != nil {
		h.respondError(c, errListLed, err)
		return
	}
	respondOK(c, http.StatusOK, "LED status retrieved.", states)
}

// @Summary      Manually switch a room ON or OFF
// @Tags         led
// @Accept       json
// @Produce      json
// @Param        body  body  setStatusRequest  true  "Room and desired status"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      400  {object}  iotskripsinew.Response
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  iotskripsinew.Response
// @Failure      500  {object}  iotskripsinew.Response
// @Router       /api/v1/led/status [post]
// @Security     BearerAuth
func (h *Handler) setLedStatus(c *gin.Context) {
	var req setStatusRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	result, err := h.services.Control.SetStatus(c.Request.Context(), req.Room, *req.Status)
	if err != nil {
		h.respondError(c, errLedStatus, err)
		return
	}
	respondOK(c, http.StatusOK, "LED status updated successfully.", result)
}

// @Summary      Accumulated power consumption per room
// @Tags         led
// @Produce      json
// @Success      200  {object}  iotskripsinew.Response
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  iotskripsinew.Response
// @Router       /api/v1/led/power [get]
// @Security     BearerAuth
func (h *Handler) getPowerPerRoom(c *gin.Context) {
	totals, err := h.services.Monitoring.PowerByRoom(c.Request.Context())
	if err != nil {
		h.respondError(c, errPowerTotals, err)
		return
	}
	respondOK(c, http.StatusOK, "Power consumption data retrieved", totals)
}

// @Summary      Fold elapsed on-time into a room's energy total now
// @Tags         led
// @Produce      json
// @Param        room  path  string  true  "Room name"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      400  {object}  iotskripsinew.Response
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  iotskripsinew.Response
// @Router       /api/v1/led/power/{room}/realtime [post]
// @Security     BearerAuth
func (h *Handler) refreshRoomPower(c *gin.Context) {
	room := c.Param("room")
	delta, err := h.services.PowerRefresh.RefreshRoom(c.Request.Context(), room)
	if err != nil {
		h.respondError(c, errPowerCalc, err)
		return
	}
	respondOK(c, http.StatusOK, "Real-time power consumption calculated and saved.", gin.H{
		"room":             room,
		"powerConsumption": delta,
	})
}
