package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/repository"
)

// FocusSuggester produces a focus metric and a one-line tip from yesterday's
// record and the user's goals. Either argument may be nil when no data
// exists yet.
type FocusSuggester interface {
	Suggest(ctx context.Context, rec *model.DailyMetricRecord, goals *model.WellnessGoals) (model.MetricKind, string, error)
}

type Tip struct {
	Focus     model.MetricKind `json:"focus"`
	Message   string           `json:"message"`
	Generated bool             `json:"generated"`
}

type TipService interface {
	DailyTip(ctx context.Context, uid string) (*Tip, error)
}

type tipService struct {
	store repository.Store
	ai    FocusSuggester
	now   func() time.Time
}

// NewTipService builds the tip service. ai may be nil; the service then
// always uses the local fallback.
func NewTipService(store repository.Store, ai FocusSuggester, now func() time.Time) TipService {
	if now == nil {
		now = time.Now
	}
	return &tipService{store: store, ai: ai, now: now}
}

func (s *tipService) DailyTip(ctx context.Context, uid string) (*Tip, error) {
	if uid == "" {
		return nil, ErrNotAuthorized
	}
	yesterday := model.DayStart(s.now()) - model.DaySeconds
	rec, err := s.store.Metrics().FindByDay(ctx, uid, yesterday)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	goals, err := s.store.Goals().Find(ctx, uid)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if s.ai != nil {
		kind, msg, err := s.ai.Suggest(ctx, rec, goals)
		if err == nil {
			return &Tip{Focus: kind, Message: msg, Generated: true}, nil
		}
		log.Printf("[tip] uid=%s ai suggest failed, using fallback: %v", uid, err)
	}
	kind := localFocus(rec, goals)
	return &Tip{Focus: kind, Message: fallbackTips[kind]}, nil
}

var fallbackTips = map[model.MetricKind]string{
	model.MetricSleep:      "Try winding down 30 minutes earlier tonight to close the gap on your sleep goal.",
	model.MetricWater:      "Keep a filled bottle within reach; small regular sips add up to your daily target.",
	model.MetricMeditation: "Even five minutes of quiet breathing counts; schedule it right after waking up.",
}

// localFocus picks the metric with the lowest goal attainment yesterday.
// Without data everything reads as 0%, so ties resolve to sleep.
func localFocus(rec *model.DailyMetricRecord, goals *model.WellnessGoals) model.MetricKind {
	focus := model.MetricSleep
	best := 101
	for _, kind := range []model.MetricKind{model.MetricSleep, model.MetricWater, model.MetricMeditation} {
		p := 0
		if rec != nil && goals != nil {
			p = attainmentPercent(rec.Value(kind), goals.Goal(kind))
		}
		if p < best {
			best = p
			focus = kind
		}
	}
	return focus
}
