package repository

import (
	"context"
	"errors"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection in the Store interface.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository               { return &gormUserRepo{db: s.db} }
func (s *gormStore) Metrics() MetricRepository           { return &gormMetricRepo{db: s.db} }
func (s *gormStore) Goals() GoalRepository               { return &gormGoalRepo{db: s.db} }
func (s *gormStore) Achievements() AchievementRepository { return &gormAchievementRepo{db: s.db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type gormUserRepo struct {
	db *gorm.DB
}

func (r *gormUserRepo) Find(ctx context.Context, uid string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *gormUserRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *gormUserRepo) Save(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

type gormMetricRepo struct {
	db *gorm.DB
}

func (r *gormMetricRepo) FindByDay(ctx context.Context, uid string, day int64) (*model.DailyMetricRecord, error) {
	var rec model.DailyMetricRecord
	if err := r.db.WithContext(ctx).
		Where("uid = ? AND day = ?", uid, day).
		First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *gormMetricRepo) Create(ctx context.Context, rec *model.DailyMetricRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *gormMetricRepo) Save(ctx context.Context, rec *model.DailyMetricRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

type gormGoalRepo struct {
	db *gorm.DB
}

func (r *gormGoalRepo) Find(ctx context.Context, uid string) (*model.WellnessGoals, error) {
	var g model.WellnessGoals
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&g).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *gormGoalRepo) Upsert(ctx context.Context, g *model.WellnessGoals) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(g).Error
}

type gormAchievementRepo struct {
	db *gorm.DB
}

func (r *gormAchievementRepo) FindCatalogEntry(ctx context.Context, id uint64) (*model.Achievement, error) {
	var a model.Achievement
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *gormAchievementRepo) UpsertCatalogEntry(ctx context.Context, a *model.Achievement) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(a).Error
}

func (r *gormAchievementRepo) FindEarned(ctx context.Context, uid string, achievementID uint64) (*model.EarnedAchievement, error) {
	var e model.EarnedAchievement
	if err := r.db.WithContext(ctx).
		Where("uid = ? AND achievement_id = ?", uid, achievementID).
		First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *gormAchievementRepo) ListEarned(ctx context.Context, uid string) ([]model.EarnedAchievement, error) {
	var list []model.EarnedAchievement
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("earned_at asc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gormAchievementRepo) CreateEarned(ctx context.Context, e *model.EarnedAchievement) error {
	// Earned rows are immutable; a concurrent duplicate insert is a no-op.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(e).Error
}
