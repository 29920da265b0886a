package service

import (
	"context"
	"errors"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/repository"
)

const scoreDecay = 5

// WellnessService runs the metric submission pipeline: validate, ensure the
// user exists, write the day's record, then update streak and score and
// evaluate achievements against the fresh values. Everything after
// validation happens inside one store transaction.
type WellnessService interface {
	RecordDailyMetrics(ctx context.Context, uid string, sleepHours, waterML, meditationMinutes int) error
	UpdateSingleMetric(ctx context.Context, uid string, kind model.MetricKind, value int) error
	GetDailyMetrics(ctx context.Context, uid string, at time.Time) (*model.DailyMetricRecord, error)
	GetProfile(ctx context.Context, uid string) (*model.User, error)
}

type wellnessService struct {
	store repository.Store
	now   func() time.Time
}

func NewWellnessService(store repository.Store, now func() time.Time) WellnessService {
	if now == nil {
		now = time.Now
	}
	return &wellnessService{store: store, now: now}
}

// checkMetric converts the pure range predicate into the error the caller
// reports: unknown kind, over-range, or otherwise invalid.
func checkMetric(kind model.MetricKind, v int) error {
	max := model.MaxMetricValue(kind)
	if max < 0 {
		return ErrInvalidMetricKind
	}
	if v > max {
		return ErrMetricValueTooHigh
	}
	if !model.ValidMetricValue(kind, v) {
		return ErrInvalidValue
	}
	return nil
}

func (s *wellnessService) RecordDailyMetrics(ctx context.Context, uid string, sleepHours, waterML, meditationMinutes int) error {
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
	day := model.DayStart(now)
	return s.store.Transaction(ctx, func(st repository.Store) error {
		u, err := ensureUser(ctx, st, uid, now)
		if err != nil {
			return err
		}
		// Full daily records are write-once per day.
		if _, err := st.Metrics().FindByDay(ctx, uid, day); err == nil {
			return ErrDuplicateEntry
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		rec := &model.DailyMetricRecord{
			UID:               uid,
			Day:               day,
			SleepHours:        sleepHours,
			WaterML:           waterML,
			MeditationMinutes: meditationMinutes,
			RecordedAt:        now,
		}
		if err := st.Metrics().Create(ctx, rec); err != nil {
			return err
		}
		return s.finishSubmission(ctx, st, u, now)
	})
}

func (s *wellnessService) UpdateSingleMetric(ctx context.Context, uid string, kind model.MetricKind, value int) error {
	if uid == "" {
		return ErrNotAuthorized
	}
	if err := checkMetric(kind, value); err != nil {
		return err
	}
	now := s.now()
	day := model.DayStart(now)
	return s.store.Transaction(ctx, func(st repository.Store) error {
		u, err := ensureUser(ctx, st, uid, now)
		if err != nil {
			return err
		}
		rec, err := st.Metrics().FindByDay(ctx, uid, day)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			rec = &model.DailyMetricRecord{UID: uid, Day: day, RecordedAt: now}
			rec.SetValue(kind, value)
			if err := st.Metrics().Create(ctx, rec); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			rec.SetValue(kind, value)
			rec.RecordedAt = now
			if err := st.Metrics().Save(ctx, rec); err != nil {
				return err
			}
		}
		return s.finishSubmission(ctx, st, u, now)
	})
}

// finishSubmission applies the post-write sequence. Order matters: the
// achievement checks read the streak and score written here.
func (s *wellnessService) finishSubmission(ctx context.Context, st repository.Store, u *model.User, now time.Time) error {
	if err := updateStreak(ctx, st, u, now); err != nil {
		return err
	}
	if err := recalculateScore(ctx, st, u, now); err != nil {
		return err
	}
	if err := st.Users().Save(ctx, u); err != nil {
		return err
	}
	return evaluateAchievements(ctx, st, u, now)
}

func ensureUser(ctx context.Context, st repository.Store, uid string, now time.Time) (*model.User, error) {
	u, err := st.Users().Find(ctx, uid)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	u = &model.User{UID: uid, JoinedAt: now}
	if err := st.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// updateStreak anchors continuity on yesterday's record: present means the
// streak extends, absent means today is day one of a new streak.
func updateStreak(ctx context.Context, st repository.Store, u *model.User, now time.Time) error {
	yesterday := model.DayStart(now) - model.DaySeconds
	_, err := st.Metrics().FindByDay(ctx, u.UID, yesterday)
	switch {
	case err == nil:
		u.StreakDays++
	case errors.Is(err, repository.ErrNotFound):
		u.StreakDays = 1
	default:
		return err
	}
	return nil
}

// attainmentPercent is the integer percent of goal reached, capped at 100.
// A zero or unset goal contributes nothing.
func attainmentPercent(actual, goal int) int {
	if goal <= 0 {
		return 0
	}
	p := actual * 100 / goal
	if p > 100 {
		p = 100
	}
	return p
}

// recalculateScore blends yesterday's goal attainment into the score:
// 10% carried from the old score, 90% from the average attainment percent,
// all in floor division. A day without metrics decays the score by 5.
func recalculateScore(ctx context.Context, st repository.Store, u *model.User, now time.Time) error {
	yesterday := model.DayStart(now) - model.DaySeconds
	rec, err := st.Metrics().FindByDay(ctx, u.UID, yesterday)
	if errors.Is(err, repository.ErrNotFound) {
		u.WellnessScore -= scoreDecay
		if u.WellnessScore < 0 {
			u.WellnessScore = 0
		}
		return nil
	}
	if err != nil {
		return err
	}
	goals, err := st.Goals().Find(ctx, u.UID)
	if errors.Is(err, repository.ErrNotFound) {
		goals = &model.WellnessGoals{UID: u.UID}
	} else if err != nil {
		return err
	}
	sum := 0
	for _, kind := range []model.MetricKind{model.MetricSleep, model.MetricWater, model.MetricMeditation} {
		sum += attainmentPercent(rec.Value(kind), goals.Goal(kind))
	}
	avg := sum / 3
	score := u.WellnessScore/10 + avg*90/100
	if score > 100 {
		score = 100
	}
	u.WellnessScore = score
	return nil
}

// evaluateAchievements walks the full catalog on every submission. Checks
// are independent and cumulative, so crossing a high threshold also issues
// any lower badges still missing. Issuance is idempotent.
func evaluateAchievements(ctx context.Context, st repository.Store, u *model.User, now time.Time) error {
	for _, a := range model.AchievementCatalog() {
		var current int
		switch a.Category {
		case model.CategoryStreak:
			current = u.StreakDays
		case model.CategoryScore:
			current = u.WellnessScore
		default:
			continue
		}
		if current < a.Threshold {
			continue
		}
		if _, err := st.Achievements().FindEarned(ctx, u.UID, a.ID); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		e := &model.EarnedAchievement{
			UID:             u.UID,
			AchievementID:   a.ID,
			AchievementName: a.Name,
			EarnedAt:        now,
		}
		if err := st.Achievements().CreateEarned(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *wellnessService) GetDailyMetrics(ctx context.Context, uid string, at time.Time) (*model.DailyMetricRecord, error) {
	if uid == "" {
		return nil, ErrNotAuthorized
	}
	rec, err := s.store.Metrics().FindByDay(ctx, uid, model.DayStart(at))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *wellnessService) GetProfile(ctx context.Context, uid string) (*model.User, error) {
	if uid == "" {
		return nil, ErrNotAuthorized
	}
	u, err := s.store.Users().Find(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
