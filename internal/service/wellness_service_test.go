package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/repository"
)

// day 1000 since epoch, 09:00 into the day
var testBase = time.Unix(1000*86400+9*3600, 0).UTC()

type fixture struct {
	store *repository.MemoryStore
	svc   WellnessService
	goals GoalService
	now   time.Time
}

func newFixture() *fixture {
	f := &fixture{store: repository.NewMemoryStore(), now: testBase}
	nowFn := func() time.Time { return f.now }
	f.svc = NewWellnessService(f.store, nowFn)
	f.goals = NewGoalService(f.store, nowFn)
	return f
}

func (f *fixture) advanceDays(n int) {
	f.now = f.now.Add(time.Duration(n) * 24 * time.Hour)
}

func (f *fixture) user(t *testing.T, uid string) *model.User {
	t.Helper()
	u, err := f.store.Users().Find(context.Background(), uid)
	if err != nil {
		t.Fatalf("find user %s: %v", uid, err)
	}
	return u
}

func TestRecordDailyMetricsValidation(t *testing.T) {
	tests := []struct {
		name                string
		uid                 string
		sleep, water, medit int
		wantErr             error
	}{
		{"no identity", "", 8, 2000, 20, ErrNotAuthorized},
		{"sleep over range", "u1", 25, 2000, 20, ErrMetricValueTooHigh},
		{"sleep negative", "u1", -1, 2000, 20, ErrInvalidValue},
		{"water over range", "u1", 8, 10001, 20, ErrMetricValueTooHigh},
		{"water negative", "u1", 8, -5, 20, ErrInvalidValue},
		{"meditation over range", "u1", 8, 2000, 1441, ErrMetricValueTooHigh},
		{"all in range", "u1", 8, 2000, 20, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			err := f.svc.RecordDailyMetrics(context.Background(), tt.uid, tt.sleep, tt.water, tt.medit)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v want=%v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordDailyMetricsFailedValidationWritesNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if err := f.svc.RecordDailyMetrics(ctx, "u1", 25, 2000, 20); !errors.Is(err, ErrMetricValueTooHigh) {
		t.Fatalf("err=%v want=%v", err, ErrMetricValueTooHigh)
	}
	if _, err := f.store.Users().Find(ctx, "u1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("user was created despite rejected submission: err=%v", err)
	}
}

func TestRecordDailyMetricsDuplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
		t.Fatalf("first record: %v", err)
	}
	f.now = f.now.Add(2 * time.Hour) // same day
	err := f.svc.RecordDailyMetrics(ctx, "u1", 6, 1000, 10)
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("err=%v want=%v", err, ErrDuplicateEntry)
	}
	rec, err := f.svc.GetDailyMetrics(ctx, "u1", f.now)
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	if rec.SleepHours != 8 || rec.WaterML != 2000 || rec.MeditationMinutes != 20 {
		t.Fatalf("first record changed by rejected resubmission: %+v", rec)
	}
	if !rec.RecordedAt.Equal(testBase) {
		t.Fatalf("recorded_at=%v want=%v", rec.RecordedAt, testBase)
	}
}

func TestUpdateSingleMetricMerge(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if err := f.svc.UpdateSingleMetric(ctx, "u1", model.MetricWater, 500); err != nil {
		t.Fatalf("first update: %v", err)
	}
	f.now = f.now.Add(time.Hour)
	if err := f.svc.UpdateSingleMetric(ctx, "u1", model.MetricWater, 1200); err != nil {
		t.Fatalf("second update: %v", err)
	}
	f.now = f.now.Add(time.Hour)
	last := f.now
	if err := f.svc.UpdateSingleMetric(ctx, "u1", model.MetricWater, 1800); err != nil {
		t.Fatalf("third update: %v", err)
	}
	rec, err := f.svc.GetDailyMetrics(ctx, "u1", f.now)
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	if rec.WaterML != 1800 {
		t.Fatalf("water=%d want=1800", rec.WaterML)
	}
	if rec.SleepHours != 0 || rec.MeditationMinutes != 0 {
		t.Fatalf("other fields not defaulted: %+v", rec)
	}
	if !rec.RecordedAt.Equal(last) {
		t.Fatalf("recorded_at=%v want=%v", rec.RecordedAt, last)
	}
}

func TestUpdateSingleMetricKeepsOtherFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if err := f.svc.RecordDailyMetrics(ctx, "u1", 7, 1500, 15); err != nil {
		t.Fatalf("record: %v", err)
	}
	f.now = f.now.Add(time.Hour)
	if err := f.svc.UpdateSingleMetric(ctx, "u1", model.MetricSleep, 9); err != nil {
		t.Fatalf("update: %v", err)
	}
	rec, err := f.svc.GetDailyMetrics(ctx, "u1", f.now)
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	if rec.SleepHours != 9 || rec.WaterML != 1500 || rec.MeditationMinutes != 15 {
		t.Fatalf("merge lost fields: %+v", rec)
	}
}

func TestUpdateSingleMetricValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if err := f.svc.UpdateSingleMetric(ctx, "u1", model.MetricKind("steps"), 10); !errors.Is(err, ErrInvalidMetricKind) {
		t.Fatalf("err=%v want=%v", err, ErrInvalidMetricKind)
	}
	if err := f.svc.UpdateSingleMetric(ctx, "u1", model.MetricSleep, 30); !errors.Is(err, ErrMetricValueTooHigh) {
		t.Fatalf("err=%v want=%v", err, ErrMetricValueTooHigh)
	}
	if err := f.svc.UpdateSingleMetric(ctx, "", model.MetricSleep, 8); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err=%v want=%v", err, ErrNotAuthorized)
	}
}

func TestStreakIncrementsWithYesterdayRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for day := 1; day <= 3; day++ {
		if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		if got := f.user(t, "u1").StreakDays; got != day {
			t.Fatalf("day %d: streak=%d want=%d", day, got, day)
		}
		f.advanceDays(1)
	}
}

func TestStreakResetsAfterGap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
		t.Fatalf("day 1: %v", err)
	}
	if err := f.svc.UpdateSingleMetric(ctx, "u1", model.MetricWater, 500); err != nil {
		t.Fatalf("same-day update: %v", err)
	}
	// same-day update keeps the streak at 1
	if got := f.user(t, "u1").StreakDays; got != 1 {
		t.Fatalf("same-day streak=%d want=1", got)
	}
	f.advanceDays(2) // skip a day
	if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
		t.Fatalf("after gap: %v", err)
	}
	if got := f.user(t, "u1").StreakDays; got != 1 {
		t.Fatalf("streak=%d want=1 after gap", got)
	}
}

func TestScoreDecayWithoutYesterdayRecord(t *testing.T) {
	tests := []struct {
		name     string
		oldScore int
		want     int
	}{
		{"normal decay", 42, 37},
		{"floor at zero", 3, 0},
		{"already zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			seed := &model.User{UID: "u1", JoinedAt: testBase, WellnessScore: tt.oldScore}
			if err := f.store.Users().Create(ctx, seed); err != nil {
				t.Fatalf("seed user: %v", err)
			}
			if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
				t.Fatalf("record: %v", err)
			}
			if got := f.user(t, "u1").WellnessScore; got != tt.want {
				t.Fatalf("score=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestScoreBlend(t *testing.T) {
	tests := []struct {
		name      string
		oldScore  int
		goals     [3]int // sleep, water, meditation
		yesterday [3]int
		want      int
	}{
		{"full attainment from zero", 0, [3]int{8, 2000, 20}, [3]int{8, 2000, 20}, 90},
		{"half attainment", 0, [3]int{8, 2000, 20}, [3]int{4, 1000, 10}, 45},
		{"overshoot capped per metric", 0, [3]int{8, 2000, 20}, [3]int{12, 4000, 60}, 90},
		{"history carries ten percent", 90, [3]int{8, 2000, 20}, [3]int{8, 2000, 20}, 99},
		{"zero goal contributes nothing", 0, [3]int{0, 2000, 20}, [3]int{8, 2000, 20}, 59}, // avg (0+100+100)/3=66, 66*90/100=59
		{"clamped at hundred", 100, [3]int{8, 2000, 20}, [3]int{8, 2000, 20}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			if err := f.goals.SetGoals(ctx, "u1", tt.goals[0], tt.goals[1], tt.goals[2]); err != nil {
				t.Fatalf("set goals: %v", err)
			}
			u := f.user(t, "u1")
			u.WellnessScore = tt.oldScore
			if err := f.store.Users().Save(ctx, u); err != nil {
				t.Fatalf("seed score: %v", err)
			}
			yesterday := model.DayStart(f.now) - model.DaySeconds
			rec := &model.DailyMetricRecord{
				UID:               "u1",
				Day:               yesterday,
				SleepHours:        tt.yesterday[0],
				WaterML:           tt.yesterday[1],
				MeditationMinutes: tt.yesterday[2],
				RecordedAt:        f.now.Add(-24 * time.Hour),
			}
			if err := f.store.Metrics().Create(ctx, rec); err != nil {
				t.Fatalf("seed yesterday: %v", err)
			}
			if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
				t.Fatalf("record: %v", err)
			}
			if got := f.user(t, "u1").WellnessScore; got != tt.want {
				t.Fatalf("score=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestScoreBlendWithoutGoals(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seed := &model.User{UID: "u1", JoinedAt: testBase, WellnessScore: 37}
	if err := f.store.Users().Create(ctx, seed); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	yesterday := model.DayStart(f.now) - model.DaySeconds
	rec := &model.DailyMetricRecord{UID: "u1", Day: yesterday, SleepHours: 8, RecordedAt: f.now.Add(-24 * time.Hour)}
	if err := f.store.Metrics().Create(ctx, rec); err != nil {
		t.Fatalf("seed yesterday: %v", err)
	}
	if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
		t.Fatalf("record: %v", err)
	}
	// no goals: every attainment reads 0, only old/10 survives
	if got := f.user(t, "u1").WellnessScore; got != 3 {
		t.Fatalf("score=%d want=3", got)
	}
}

func TestAchievementsCumulativeIssue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seed := &model.User{UID: "u1", JoinedAt: testBase, StreakDays: 29}
	if err := f.store.Users().Create(ctx, seed); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	yesterday := model.DayStart(f.now) - model.DaySeconds
	rec := &model.DailyMetricRecord{UID: "u1", Day: yesterday, RecordedAt: f.now.Add(-24 * time.Hour)}
	if err := f.store.Metrics().Create(ctx, rec); err != nil {
		t.Fatalf("seed yesterday: %v", err)
	}
	if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := f.user(t, "u1").StreakDays; got != 30 {
		t.Fatalf("streak=%d want=30", got)
	}
	earned, err := f.store.Achievements().ListEarned(ctx, "u1")
	if err != nil {
		t.Fatalf("list earned: %v", err)
	}
	got := map[uint64]bool{}
	for _, e := range earned {
		got[e.AchievementID] = true
	}
	// crossing 30 also issues the 7-day badge; 100-day stays out of reach
	if !got[1] || !got[2] || got[3] {
		t.Fatalf("earned=%v want streak_7 and streak_30 only", got)
	}
}

func TestAchievementMonotonicity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	firstEarned := testBase.Add(-72 * time.Hour)
	pre := &model.EarnedAchievement{UID: "u1", AchievementID: 1, AchievementName: "Week Warrior", EarnedAt: firstEarned}
	if err := f.store.Achievements().CreateEarned(ctx, pre); err != nil {
		t.Fatalf("seed earned: %v", err)
	}
	seed := &model.User{UID: "u1", JoinedAt: testBase, StreakDays: 9}
	if err := f.store.Users().Create(ctx, seed); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	yesterday := model.DayStart(f.now) - model.DaySeconds
	if err := f.store.Metrics().Create(ctx, &model.DailyMetricRecord{UID: "u1", Day: yesterday, RecordedAt: f.now.Add(-24 * time.Hour)}); err != nil {
		t.Fatalf("seed yesterday: %v", err)
	}
	// two more qualifying submissions
	for i := 0; i < 2; i++ {
		if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		f.advanceDays(1)
	}
	e, err := f.store.Achievements().FindEarned(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("find earned: %v", err)
	}
	if !e.EarnedAt.Equal(firstEarned) {
		t.Fatalf("earned_at changed: got=%v want=%v", e.EarnedAt, firstEarned)
	}
}

func TestEndToEndTwoDayJourney(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if err := f.goals.SetGoals(ctx, "u1", 8, 2000, 20); err != nil {
		t.Fatalf("set goals: %v", err)
	}
	if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
		t.Fatalf("day 1 record: %v", err)
	}
	u := f.user(t, "u1")
	if u.StreakDays != 1 || u.WellnessScore != 0 {
		t.Fatalf("day 1: streak=%d score=%d want streak=1 score=0", u.StreakDays, u.WellnessScore)
	}
	if !u.JoinedAt.Equal(testBase) {
		t.Fatalf("joined_at=%v want=%v", u.JoinedAt, testBase)
	}

	f.advanceDays(1)
	if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
		t.Fatalf("day 2 record: %v", err)
	}
	u = f.user(t, "u1")
	if u.StreakDays != 2 || u.WellnessScore != 90 {
		t.Fatalf("day 2: streak=%d score=%d want streak=2 score=90", u.StreakDays, u.WellnessScore)
	}
	earned, err := f.store.Achievements().ListEarned(ctx, "u1")
	if err != nil {
		t.Fatalf("list earned: %v", err)
	}
	names := map[string]bool{}
	for _, e := range earned {
		names[e.AchievementName] = true
	}
	for _, want := range []string{"Wellness Beginner", "Wellness Enthusiast", "Wellness Master"} {
		if !names[want] {
			t.Fatalf("missing badge %q in %v", want, names)
		}
	}
	if len(earned) != 3 {
		t.Fatalf("earned=%d want=3", len(earned))
	}
}

func TestGetProfileAndMetrics(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.GetProfile(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err=%v want=%v", err, ErrUserNotFound)
	}
	if _, err := f.svc.GetDailyMetrics(ctx, "nobody", f.now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want=%v", err, ErrNotFound)
	}
	if err := f.svc.RecordDailyMetrics(ctx, "u1", 8, 2000, 20); err != nil {
		t.Fatalf("record: %v", err)
	}
	rec, err := f.svc.GetDailyMetrics(ctx, "u1", f.now)
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	if rec.Day != model.DayStart(f.now) {
		t.Fatalf("day=%d want=%d", rec.Day, model.DayStart(f.now))
	}
}
