package main

import (
	"flag"
	"log"

	"techcom/internal/config"
	"techcom/internal/database"
	"techcom/internal/logger"

	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", string(database.DirectionUp), "up or down")
	steps := flag.Int("steps", 0, "number of migrations to apply; 0 applies all")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	l.Info("Running migrations", zap.String("direction", *direction), zap.Int("steps", *steps))
	if err := database.RunMigrations(cfg.GetMigrateDSN(), database.Direction(*direction), *steps); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
}
