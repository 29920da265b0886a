package handler

import (
	"net/http"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type GoalHandler struct {
	svc service.GoalService
}

func NewGoalHandler(svc service.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

type SetGoalsRequest struct {
	SleepHours        int `json:"sleepHours"`
	WaterML           int `json:"waterMl"`
	MeditationMinutes int `json:"meditationMinutes"`
}

type GoalsResponse struct {
	SleepHours        int    `json:"sleepHours"`
	WaterML           int    `json:"waterMl"`
	MeditationMinutes int    `json:"meditationMinutes"`
	LastUpdated       string `json:"lastUpdated"`
}

func (h *GoalHandler) Set(c echo.Context) error {
	uid := uidFrom(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req SetGoalsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.svc.SetGoals(c.Request().Context(), uid, req.SleepHours, req.WaterML, req.MeditationMinutes); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *GoalHandler) Get(c echo.Context) error {
	uid := uidFrom(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	g, err := h.svc.GetGoals(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, GoalsResponse{
		SleepHours:        g.SleepHoursGoal,
		WaterML:           g.WaterMLGoal,
		MeditationMinutes: g.MeditationMinutesGoal,
		LastUpdated:       g.LastUpdated.Format(time.RFC3339),
	})
}
