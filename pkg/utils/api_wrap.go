package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// StatusForError maps service sentinels to the HTTP status reported to callers.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNoDestinations):
		return http.StatusBadRequest, "At least one destination is required"
	case errors.Is(err, ErrInvalidDestinationIndex), errors.Is(err, ErrLastDestination):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrGenerationInFlight):
		return http.StatusConflict, "A travel guide is already being generated"
	case errors.Is(err, ErrGuideService):
		return http.StatusBadGateway, "Guide service unavailable"
	case errors.Is(err, ErrSessionStore):
		return http.StatusInternalServerError, "Internal server error"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// HandleServiceError answers with the status mapped from err. Callers log
// the error with their own logger.
func HandleServiceError(c *gin.Context, err error) {
	code, message := StatusForError(err)
	RespondError(c, code, message)
}
