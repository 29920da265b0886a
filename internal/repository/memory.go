package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/kokoro-dev/wellness-backend/internal/model"
)

type metricKey struct {
	uid string
	day int64
}

type earnedKey struct {
	uid string
	id  uint64
}

// MemoryStore is a map-backed Store. It backs the service tests and the
// no-database dev mode of the server. Transaction serializes callers with
// a mutex; it does not roll back, which matches how the services use it
// (all validation happens before the first write).
type MemoryStore struct {
	mu           sync.Mutex
	users        map[string]model.User
	metrics      map[metricKey]model.DailyMetricRecord
	goals        map[string]model.WellnessGoals
	catalog      map[uint64]model.Achievement
	earned       map[earnedKey]model.EarnedAchievement
	nextMetricID uint64
	inTx         bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]model.User),
		metrics: make(map[metricKey]model.DailyMetricRecord),
		goals:   make(map[string]model.WellnessGoals),
		catalog: make(map[uint64]model.Achievement),
		earned:  make(map[earnedKey]model.EarnedAchievement),
	}
}

func (s *MemoryStore) Users() UserRepository               { return &memUserRepo{s} }
func (s *MemoryStore) Metrics() MetricRepository           { return &memMetricRepo{s} }
func (s *MemoryStore) Goals() GoalRepository               { return &memGoalRepo{s} }
func (s *MemoryStore) Achievements() AchievementRepository { return &memAchievementRepo{s} }

func (s *MemoryStore) Transaction(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	s.inTx = true
	defer func() {
		s.inTx = false
		s.mu.Unlock()
	}()
	return fn(txStore{s})
}

// txStore exposes the same maps without re-locking inside a transaction.
type txStore struct {
	s *MemoryStore
}

func (t txStore) Users() UserRepository               { return &memUserRepo{t.s} }
func (t txStore) Metrics() MetricRepository           { return &memMetricRepo{t.s} }
func (t txStore) Goals() GoalRepository               { return &memGoalRepo{t.s} }
func (t txStore) Achievements() AchievementRepository { return &memAchievementRepo{t.s} }

func (t txStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return fn(t)
}

func (s *MemoryStore) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *MemoryStore) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}

type memUserRepo struct {
	s *MemoryStore
}

func (r *memUserRepo) Find(ctx context.Context, uid string) (*model.User, error) {
	r.s.lock()
	defer r.s.unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) Create(ctx context.Context, u *model.User) error {
	r.s.lock()
	defer r.s.unlock()
	r.s.users[u.UID] = *u
	return nil
}

func (r *memUserRepo) Save(ctx context.Context, u *model.User) error {
	r.s.lock()
	defer r.s.unlock()
	r.s.users[u.UID] = *u
	return nil
}

type memMetricRepo struct {
	s *MemoryStore
}

func (r *memMetricRepo) FindByDay(ctx context.Context, uid string, day int64) (*model.DailyMetricRecord, error) {
	r.s.lock()
	defer r.s.unlock()
	rec, ok := r.s.metrics[metricKey{uid, day}]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (r *memMetricRepo) Create(ctx context.Context, rec *model.DailyMetricRecord) error {
	r.s.lock()
	defer r.s.unlock()
	r.s.nextMetricID++
	rec.ID = r.s.nextMetricID
	r.s.metrics[metricKey{rec.UID, rec.Day}] = *rec
	return nil
}

func (r *memMetricRepo) Save(ctx context.Context, rec *model.DailyMetricRecord) error {
	r.s.lock()
	defer r.s.unlock()
	r.s.metrics[metricKey{rec.UID, rec.Day}] = *rec
	return nil
}

type memGoalRepo struct {
	s *MemoryStore
}

func (r *memGoalRepo) Find(ctx context.Context, uid string) (*model.WellnessGoals, error) {
	r.s.lock()
	defer r.s.unlock()
	g, ok := r.s.goals[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (r *memGoalRepo) Upsert(ctx context.Context, g *model.WellnessGoals) error {
	r.s.lock()
	defer r.s.unlock()
	r.s.goals[g.UID] = *g
	return nil
}

type memAchievementRepo struct {
	s *MemoryStore
}

func (r *memAchievementRepo) FindCatalogEntry(ctx context.Context, id uint64) (*model.Achievement, error) {
	r.s.lock()
	defer r.s.unlock()
	a, ok := r.s.catalog[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *memAchievementRepo) UpsertCatalogEntry(ctx context.Context, a *model.Achievement) error {
	r.s.lock()
	defer r.s.unlock()
	r.s.catalog[a.ID] = *a
	return nil
}

func (r *memAchievementRepo) FindEarned(ctx context.Context, uid string, achievementID uint64) (*model.EarnedAchievement, error) {
	r.s.lock()
	defer r.s.unlock()
	e, ok := r.s.earned[earnedKey{uid, achievementID}]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *memAchievementRepo) ListEarned(ctx context.Context, uid string) ([]model.EarnedAchievement, error) {
	r.s.lock()
	defer r.s.unlock()
	var list []model.EarnedAchievement
	for k, e := range r.s.earned {
		if k.uid == uid {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].EarnedAt.Equal(list[j].EarnedAt) {
			return list[i].AchievementID < list[j].AchievementID
		}
		return list[i].EarnedAt.Before(list[j].EarnedAt)
	})
	return list, nil
}

func (r *memAchievementRepo) CreateEarned(ctx context.Context, e *model.EarnedAchievement) error {
	r.s.lock()
	defer r.s.unlock()
	k := earnedKey{e.UID, e.AchievementID}
	if _, ok := r.s.earned[k]; ok {
		return nil
	}
	r.s.earned[k] = *e
	return nil
}
