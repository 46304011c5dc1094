package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type connectionUpdateRequest struct {
	DeviceID  string `json:"deviceId" binding:"required"`
	RSSI      *int   `json:"rssi,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
}

// @Summary      Record a device heartbeat
// @Tags         connection
// @Accept       json
// @Produce      json
// @Param        body  body  connectionUpdateRequest  true  "deviceId, optional rssi and ipAddress"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/connection/status [post]
// @Security     BearerAuth
func (h *Handler) updateConnectionStatus(c *gin.Context) {
	var req connectionUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	h.services.Connections.Update(req.DeviceID, req.RSSI, req.IPAddress)
	respondOK(c, http.StatusOK, "Connection status updated successfully", gin.H{"status": "connected"})
}

// @Summary      Connection status of one device
// @Tags         connection
// @Produce      json
// @Param        deviceId  path  string  true  "Device ID"
// @Success      200  {object}  iotskripsinew.Response
// @Failure      404  {object}  iotskripsinew.Response
// @Router       /api/v1/connection/status/{deviceId} [get]
// @Security     BearerAuth
func (h *Handler) getConnectionStatus(c *gin.Context) {
	status, found := h.services.Connections.Get(c.Param("deviceId"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Device not found or never connected",
			"status":  "unknown",
		})
		return
	}
	respondOK(c, http.StatusOK, "Connection status retrieved.", status)
}

// @Summary      Connection status of all devices
// @Tags         connection
// @Produce      json
// @Success      200  {object}  iotskripsinew.Response
// @Router       /api/v1/connection/status [get]
// @Security     BearerAuth
func (h *Handler) listConnectionStatus(c *gin.Context) {
	devices := h.services.Connections.List()
	respondOK(c, http.StatusOK, "Connection statuses retrieved.", gin.H{
		"count":   len(devices),
		"devices": devices,
	})
}
