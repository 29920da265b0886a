package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/repository"
)

type stubSuggester struct {
	kind model.MetricKind
	msg  string
	err  error
}

func (s *stubSuggester) Suggest(ctx context.Context, rec *model.DailyMetricRecord, goals *model.WellnessGoals) (model.MetricKind, string, error) {
	return s.kind, s.msg, s.err
}

func TestDailyTipUsesSuggester(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewTipService(store, &stubSuggester{kind: model.MetricWater, msg: "drink up"}, func() time.Time { return testBase })
	tip, err := svc.DailyTip(context.Background(), "u1")
	if err != nil {
		t.Fatalf("daily tip: %v", err)
	}
	if !tip.Generated || tip.Focus != model.MetricWater || tip.Message != "drink up" {
		t.Fatalf("tip=%+v", tip)
	}
}

func TestDailyTipFallsBackOnError(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewTipService(store, &stubSuggester{err: errors.New("quota")}, func() time.Time { return testBase })
	tip, err := svc.DailyTip(context.Background(), "u1")
	if err != nil {
		t.Fatalf("daily tip: %v", err)
	}
	if tip.Generated {
		t.Fatalf("expected fallback tip, got generated")
	}
	if tip.Message == "" {
		t.Fatalf("fallback tip empty")
	}
}

func TestDailyTipFallbackPicksLowestAttainment(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	goals := &model.WellnessGoals{UID: "u1", SleepHoursGoal: 8, WaterMLGoal: 2000, MeditationMinutesGoal: 20, LastUpdated: testBase}
	if err := store.Goals().Upsert(ctx, goals); err != nil {
		t.Fatalf("seed goals: %v", err)
	}
	yesterday := model.DayStart(testBase) - model.DaySeconds
	rec := &model.DailyMetricRecord{UID: "u1", Day: yesterday, SleepHours: 8, WaterML: 2000, MeditationMinutes: 2, RecordedAt: testBase.Add(-24 * time.Hour)}
	if err := store.Metrics().Create(ctx, rec); err != nil {
		t.Fatalf("seed metrics: %v", err)
	}
	svc := NewTipService(store, nil, func() time.Time { return testBase })
	tip, err := svc.DailyTip(ctx, "u1")
	if err != nil {
		t.Fatalf("daily tip: %v", err)
	}
	if tip.Focus != model.MetricMeditation {
		t.Fatalf("focus=%q want=%q", tip.Focus, model.MetricMeditation)
	}
}

func TestDailyTipRequiresIdentity(t *testing.T) {
	svc := NewTipService(repository.NewMemoryStore(), nil, nil)
	if _, err := svc.DailyTip(context.Background(), ""); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err=%v want=%v", err, ErrNotAuthorized)
	}
}
