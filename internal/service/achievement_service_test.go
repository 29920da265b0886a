package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/repository"
)

func TestInitializeCatalogIdempotent(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAchievementService(store)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.InitializeCatalog(ctx); err != nil {
			t.Fatalf("init %d: %v", i, err)
		}
	}
	for _, want := range model.AchievementCatalog() {
		got, err := svc.GetCatalogEntry(ctx, want.ID)
		if err != nil {
			t.Fatalf("entry %d: %v", want.ID, err)
		}
		if got.Code != want.Code || got.Threshold != want.Threshold || got.Category != want.Category {
			t.Fatalf("entry %d: got=%+v want=%+v", want.ID, got, want)
		}
	}
}

func TestGetCatalogEntryUnknown(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAchievementService(store)
	if _, err := svc.GetCatalogEntry(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want=%v", err, ErrNotFound)
	}
}

func TestHasAchievement(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAchievementService(store)
	ctx := context.Background()

	_, earned, err := svc.HasAchievement(ctx, "u1", 4)
	if err != nil || earned {
		t.Fatalf("earned=%v err=%v want not earned", earned, err)
	}
	e := &model.EarnedAchievement{UID: "u1", AchievementID: 4, AchievementName: "Wellness Beginner", EarnedAt: testBase}
	if err := store.Achievements().CreateEarned(ctx, e); err != nil {
		t.Fatalf("seed earned: %v", err)
	}
	got, earned, err := svc.HasAchievement(ctx, "u1", 4)
	if err != nil || !earned {
		t.Fatalf("earned=%v err=%v want earned", earned, err)
	}
	if got.AchievementName != "Wellness Beginner" {
		t.Fatalf("name=%q", got.AchievementName)
	}
	// other users are unaffected
	if _, other, _ := svc.HasAchievement(ctx, "u2", 4); other {
		t.Fatalf("u2 unexpectedly earned the badge")
	}
}

func TestListEarnedRequiresIdentity(t *testing.T) {
	svc := NewAchievementService(repository.NewMemoryStore())
	if _, err := svc.ListEarned(context.Background(), ""); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err=%v want=%v", err, ErrNotAuthorized)
	}
}
