package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type MetricHandler struct {
	svc service.WellnessService
	now func() time.Time
}

func NewMetricHandler(svc service.WellnessService, now func() time.Time) *MetricHandler {
	if now == nil {
		now = time.Now
	}
	return &MetricHandler{svc: svc, now: now}
}

type RecordMetricsRequest struct {
	SleepHours        int `json:"sleepHours"`
	WaterML           int `json:"waterMl"`
	MeditationMinutes int `json:"meditationMinutes"`
}

type UpdateMetricRequest struct {
	Kind  string `json:"kind"`
	Value int    `json:"value"`
}

type MetricsResponse struct {
	Day               int64  `json:"day"`
	SleepHours        int    `json:"sleepHours"`
	WaterML           int    `json:"waterMl"`
	MeditationMinutes int    `json:"meditationMinutes"`
	RecordedAt        string `json:"recordedAt"`
}

func (h *MetricHandler) Record(c echo.Context) error {
	uid := uidFrom(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req RecordMetricsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.svc.RecordDailyMetrics(c.Request().Context(), uid, req.SleepHours, req.WaterML, req.MeditationMinutes); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *MetricHandler) UpdateSingle(c echo.Context) error {
	uid := uidFrom(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UpdateMetricRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	kind, ok := model.ParseMetricKind(req.Kind)
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_metric_kind", "unknown metric kind"))
	}
	if err := h.svc.UpdateSingleMetric(c.Request().Context(), uid, kind, req.Value); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MetricHandler) Get(c echo.Context) error {
	uid := uidFrom(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	at := h.now()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid date"))
		}
		at = parsed
	}
	rec, err := h.svc.GetDailyMetrics(c.Request().Context(), uid, at)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, MetricsResponse{
		Day:               rec.Day,
		SleepHours:        rec.SleepHours,
		WaterML:           rec.WaterML,
		MeditationMinutes: rec.MeditationMinutes,
		RecordedAt:        rec.RecordedAt.Format(time.RFC3339),
	})
}

// parseDate accepts RFC3339, YYYY-MM-DD, or Unix seconds.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0), nil
}
