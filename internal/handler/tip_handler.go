package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/kokoro-dev/wellness-backend/internal/service"
	"github.com/kokoro-dev/wellness-backend/internal/tipctx"
	"github.com/labstack/echo/v4"
)

type TipHandler struct {
	svc service.TipService
}

func NewTipHandler(svc service.TipService) *TipHandler {
	return &TipHandler{svc: svc}
}

type TipResponse struct {
	Focus     string `json:"focus"`
	Message   string `json:"message"`
	Generated bool   `json:"generated"`
}

func (h *TipHandler) Get(c echo.Context) error {
	uid := uidFrom(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	if rid == "" {
		rid = uuid.NewString()
	}
	ctx := tipctx.WithRID(c.Request().Context(), rid)
	ctx = tipctx.WithUID(ctx, uid)
	tip, err := h.svc.DailyTip(ctx, uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, TipResponse{
		Focus:     string(tip.Focus),
		Message:   tip.Message,
		Generated: tip.Generated,
	})
}
