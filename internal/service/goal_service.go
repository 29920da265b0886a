package service

import (
	"context"
	"errors"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/repository"
)

type GoalService interface {
	SetGoals(ctx context.Context, uid string, sleepHours, waterML, meditationMinutes int) error
	GetGoals(ctx context.Context, uid string) (*model.WellnessGoals, error)
}

type goalService struct {
	store repository.Store
	now   func() time.Time
}

func NewGoalService(store repository.Store, now func() time.Time) GoalService {
	if now == nil {
		now = time.Now
	}
	return &goalService{store: store, now: now}
}

// SetGoals overwrites the user's targets wholesale. Goal values obey the
// same ranges as the metrics themselves.
func (s *goalService) SetGoals(ctx context.Context, uid string, sleepHours, waterML, meditationMinutes int) error {
	if uid == "" {
		return ErrNotAuthorized
	}
	if err := checkMetric(model.MetricSleep, sleepHours); err != nil {
		return err
	}
	if err := checkMetric(model.MetricWater, waterML); err != nil {
		return err
	}
	if err := checkMetric(model.MetricMeditation, meditationMinutes); err != nil {
		return err
	}
	now := s.now()
	return s.store.Transaction(ctx, func(st repository.Store) error {
		if _, err := ensureUser(ctx, st, uid, now); err != nil {
			return err
		}
		g := &model.WellnessGoals{
			UID:                   uid,
			SleepHoursGoal:        sleepHours,
			WaterMLGoal:           waterML,
			MeditationMinutesGoal: meditationMinutes,
			LastUpdated:           now,
		}
		return st.Goals().Upsert(ctx, g)
	})
}

func (s *goalService) GetGoals(ctx context.Context, uid string) (*model.WellnessGoals, error) {
	if uid == "" {
		return nil, ErrNotAuthorized
	}
	g, err := s.store.Goals().Find(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}
