package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type AchievementHandler struct {
	svc service.AchievementService
}

func NewAchievementHandler(svc service.AchievementService) *AchievementHandler {
	return &AchievementHandler{svc: svc}
}

type AchievementResponse struct {
	ID          uint64 `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Threshold   int    `json:"threshold"`
}

type EarnedResponse struct {
	AchievementID   uint64 `json:"achievementId"`
	AchievementName string `json:"achievementName"`
	EarnedAt        string `json:"earnedAt"`
}

type EarnedListResponse struct {
	Achievements []EarnedResponse `json:"achievements"`
}

type PossessionResponse struct {
	Earned      bool            `json:"earned"`
	Achievement *EarnedResponse `json:"achievement,omitempty"`
}

func (h *AchievementHandler) GetCatalogEntry(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	a, err := h.svc.GetCatalogEntry(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, AchievementResponse{
		ID:          a.ID,
		Code:        a.Code,
		Name:        a.Name,
		Description: a.Description,
		Category:    string(a.Category),
		Threshold:   a.Threshold,
	})
}

func (h *AchievementHandler) ListMine(c echo.Context) error {
	uid := uidFrom(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListEarned(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := EarnedListResponse{Achievements: make([]EarnedResponse, 0, len(list))}
	for i := range list {
		resp.Achievements = append(resp.Achievements, toEarnedResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AchievementHandler) CheckMine(c echo.Context) error {
	uid := uidFrom(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	e, earned, err := h.svc.HasAchievement(c.Request().Context(), uid, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := PossessionResponse{Earned: earned}
	if earned {
		r := toEarnedResponse(e)
		resp.Achievement = &r
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AchievementHandler) InitCatalog(c echo.Context) error {
	if err := h.svc.InitializeCatalog(c.Request().Context()); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"entries": len(model.AchievementCatalog())})
}

func toEarnedResponse(e *model.EarnedAchievement) EarnedResponse {
	return EarnedResponse{
		AchievementID:   e.AchievementID,
		AchievementName: e.AchievementName,
		EarnedAt:        e.EarnedAt.Format(time.RFC3339),
	}
}
