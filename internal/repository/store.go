package repository

import (
	"context"
	"errors"

	"github.com/kokoro-dev/wellness-backend/internal/model"
)

// ErrNotFound is returned by all lookups when no row exists. Store
// implementations translate their own not-found errors into it so services
// never depend on a particular backend.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	Find(ctx context.Context, uid string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Save(ctx context.Context, u *model.User) error
}

type MetricRepository interface {
	FindByDay(ctx context.Context, uid string, day int64) (*model.DailyMetricRecord, error)
	Create(ctx context.Context, rec *model.DailyMetricRecord) error
	Save(ctx context.Context, rec *model.DailyMetricRecord) error
}

type GoalRepository interface {
	Find(ctx context.Context, uid string) (*model.WellnessGoals, error)
	Upsert(ctx context.Context, g *model.WellnessGoals) error
}

type AchievementRepository interface {
	FindCatalogEntry(ctx context.Context, id uint64) (*model.Achievement, error)
	UpsertCatalogEntry(ctx context.Context, a *model.Achievement) error
	FindEarned(ctx context.Context, uid string, achievementID uint64) (*model.EarnedAchievement, error)
	ListEarned(ctx context.Context, uid string) ([]model.EarnedAchievement, error)
	CreateEarned(ctx context.Context, e *model.EarnedAchievement) error
}

// Store bundles the repositories behind a single transactional boundary.
// A metric submission mutates users, daily metrics, and earned achievements
// together, so the whole pipeline runs through Transaction and either
// commits as one unit or not at all.
type Store interface {
	Users() UserRepository
	Metrics() MetricRepository
	Goals() GoalRepository
	Achievements() AchievementRepository
	Transaction(ctx context.Context, fn func(Store) error) error
}
