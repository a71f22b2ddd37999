package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"apartmentbooking/internal/config"
	"apartmentbooking/internal/database"
	"apartmentbooking/internal/jobs"
	"apartmentbooking/internal/modules/booking"
	"apartmentbooking/internal/pkg/logger"
	"apartmentbooking/internal/repository"
)

// complete_stays marks approved bookings whose check-out has arrived as
// completed, once. Run it from an external scheduler when the API's own
// schedule is disabled.
func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.AppEnv, ServiceName: "apartments-complete-stays"})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, database.Options{MaxOpenConns: cfg.DBMaxOpenConns})
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}

	repo := repository.NewBookingRepository(db)
	stays := booking.NewService(repo, repository.NewApartmentRepository(db), repository.NewUserRepository(db))
	jobs.CompleteStays(context.Background(), stays, zl)
}
