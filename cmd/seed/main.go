// Command seed writes the fixed achievement catalog into the configured
// database. It is idempotent; deploys can run it on every release.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kokoro-dev/wellness-backend/internal/config"
	"github.com/kokoro-dev/wellness-backend/internal/db"
	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/repository"
	"github.com/kokoro-dev/wellness-backend/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := conn.AutoMigrate(&model.Achievement{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	store := repository.NewGormStore(conn)
	if err := service.NewAchievementService(store).InitializeCatalog(ctx); err != nil {
		return fmt.Errorf("initialize catalog: %w", err)
	}
	log.Printf("seeded %d achievement catalog entries", len(model.AchievementCatalog()))
	return nil
}
