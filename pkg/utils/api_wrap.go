package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripwise/internal/normalizer"
)

const TraceIDKey = "trace_id"

// Error codes carried next to non-pipeline failures.
const (
	CodeModelTimeout     = "MODEL_TIMEOUT"
	CodeModelBlocked     = "MODEL_BLOCKED"
	CodeModelUnavailable = "MODEL_UNAVAILABLE"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	Message   string      `json:"message,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func TraceID(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusOK, data, message)
}

func RespondStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: TraceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	RespondErrorCode(c, code, message, "")
}

func RespondErrorCode(c *gin.Context, code int, message, errorCode string) {
	c.JSON(code, APIResponse{
		Status:    "error",
		Code:      code,
		Message:   message,
		ErrorCode: errorCode,
		TraceID:   TraceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrItineraryNotFound):
		RespondError(c, http.StatusNotFound, "Itinerary not found")
	case errors.Is(err, ErrItineraryGeneration):
		code := ""
		var nerr *normalizer.Error
		if errors.As(err, &nerr) {
			code = string(nerr.Code)
		}
		RespondErrorCode(c, http.StatusInternalServerError, "Could not generate itinerary", code)
	case errors.Is(err, ErrModelTimeout):
		RespondErrorCode(c, http.StatusGatewayTimeout, "Itinerary generation timed out", CodeModelTimeout)
	case errors.Is(err, ErrModelBlocked):
		RespondErrorCode(c, http.StatusBadGateway, "The travel planner declined this request", CodeModelBlocked)
	case errors.Is(err, ErrModelUnavailable):
		zap.L().Warn("model provider error", zap.String("trace_id", TraceID(c)), zap.Error(err))
		RespondErrorCode(c, http.StatusBadGateway, "Travel planner is unavailable", CodeModelUnavailable)
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.String("trace_id", TraceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.String("trace_id", TraceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
