package service

import (
	"context"
	"errors"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/repository"
)

type AchievementService interface {
	InitializeCatalog(ctx context.Context) error
	GetCatalogEntry(ctx context.Context, id uint64) (*model.Achievement, error)
	ListEarned(ctx context.Context, uid string) ([]model.EarnedAchievement, error)
	HasAchievement(ctx context.Context, uid string, id uint64) (*model.EarnedAchievement, bool, error)
}

type achievementService struct {
	store repository.Store
}

func NewAchievementService(store repository.Store) AchievementService {
	return &achievementService{store: store}
}

// InitializeCatalog writes the fixed catalog. Safe to run repeatedly; the
// seed command and the admin endpoint both call it.
func (s *achievementService) InitializeCatalog(ctx context.Context) error {
	return s.store.Transaction(ctx, func(st repository.Store) error {
		for _, a := range model.AchievementCatalog() {
			entry := a
			if err := st.Achievements().UpsertCatalogEntry(ctx, &entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *achievementService) GetCatalogEntry(ctx context.Context, id uint64) (*model.Achievement, error) {
	a, err := s.store.Achievements().FindCatalogEntry(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *achievementService) ListEarned(ctx context.Context, uid string) ([]model.EarnedAchievement, error) {
	if uid == "" {
		return nil, ErrNotAuthorized
	}
	return s.store.Achievements().ListEarned(ctx, uid)
}

func (s *achievementService) HasAchievement(ctx context.Context, uid string, id uint64) (*model.EarnedAchievement, bool, error) {
	if uid == "" {
		return nil, false, ErrNotAuthorized
	}
	e, err := s.store.Achievements().FindEarned(ctx, uid, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return e, true, nil
}
