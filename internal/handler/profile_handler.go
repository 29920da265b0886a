package handler

import (
	"net/http"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	svc service.WellnessService
}

func NewProfileHandler(svc service.WellnessService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type ProfileResponse struct {
	UID           string `json:"uid"`
	JoinedAt      string `json:"joinedAt"`
	WellnessScore int    `json:"wellnessScore"`
	StreakDays    int    `json:"streakDays"`
}

func (h *ProfileHandler) Get(c echo.Context) error {
	uid := uidFrom(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	u, err := h.svc.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, ProfileResponse{
		UID:           u.UID,
		JoinedAt:      u.JoinedAt.Format(time.RFC3339),
		WellnessScore: u.WellnessScore,
		StreakDays:    u.StreakDays,
	})
}
