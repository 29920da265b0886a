package handler

import (
	"errors"
	"net/http"

	"github.com/kokoro-dev/wellness-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// writeServiceError maps service sentinel errors onto HTTP statuses. The
// sentinel text doubles as the error code on the wire.
func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	code := "internal_error"
	msg := "unexpected error"
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		status, code, msg = http.StatusUnauthorized, "unauthorized", "missing or invalid identity"
	case errors.Is(err, service.ErrInvalidMetricKind):
		status, code, msg = http.StatusBadRequest, "invalid_metric_kind", "unknown metric kind"
	case errors.Is(err, service.ErrMetricValueTooHigh):
		status, code, msg = http.StatusBadRequest, "metric_value_too_high", "value exceeds the allowed maximum"
	case errors.Is(err, service.ErrInvalidValue):
		status, code, msg = http.StatusBadRequest, "invalid_value", "value outside the allowed range"
	case errors.Is(err, service.ErrDuplicateEntry):
		status, code, msg = http.StatusConflict, "duplicate_entry", "metrics already recorded for today"
	case errors.Is(err, service.ErrGoalNotFound):
		status, code, msg = http.StatusNotFound, "goal_not_found", "no goals set"
	case errors.Is(err, service.ErrUserNotFound):
		status, code, msg = http.StatusNotFound, "user_not_found", "user not found"
	case errors.Is(err, service.ErrNotFound):
		status, code, msg = http.StatusNotFound, "not_found", "not found"
	}
	return c.JSON(status, NewErrorResponse(code, msg))
}

func uidFrom(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
