package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kokoro-dev/wellness-backend/internal/config"
	"github.com/kokoro-dev/wellness-backend/internal/db"
	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/repository"
	"github.com/kokoro-dev/wellness-backend/internal/server"
)

var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	var store repository.Store
	if cfg.HasDB() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Fatalf("db connect error: %v", err)
		}
		if err := conn.AutoMigrate(
			&model.User{},
			&model.DailyMetricRecord{},
			&model.WellnessGoals{},
			&model.Achievement{},
			&model.EarnedAchievement{},
		); err != nil {
			log.Fatalf("auto migrate error: %v", err)
		}
		store = repository.NewGormStore(conn)
	} else {
		log.Printf("no database configured; using in-memory store")
		store = repository.NewMemoryStore()
	}

	srv := server.New(store, cfg, gitSHA, buildTime)

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
