package handlers

import (
	"errors"
	"net/http"

	iotskripsinew "github.com/ariandto/iotskripsinew"
	"github.com/ariandto/iotskripsinew/internal/repository"
	"github.com/ariandto/iotskripsinew/internal/service"

	"github.com/gin-gonic/gin"
)

// respondOK writes the success envelope.
func respondOK(c *gin.Context, code int, message string, data any) {
	c.JSON(code, iotskripsinew.OK(message, data))
}

// respondError maps a service error onto an HTTP status and logs the ones
// the client cannot fix.
func (h *Handler) respondError(c *gin.Context, message string, err error) {
	code := statusCodeFor(err)
	if code >= http.StatusInternalServerError && h.log != nil {
		h.log.Errorw("request_failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(code, iotskripsinew.Fail(message, err.Error()))
}

// statusCodeFor classifies service errors by kind.
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidRoom),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrDuplicateSchedule),
		errors.Is(err, service.ErrRoomLimit),
		errors.Is(err, service.ErrDeviceOff):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
