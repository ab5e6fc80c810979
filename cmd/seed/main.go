package main

import (
	"context"
	"os"

	"crm/internal/config"
	"crm/internal/db"
	"crm/internal/repository"
	"crm/internal/service"
	"crm/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Msg("starting seed script")

	gormDB, err := db.Open(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	seeder := service.NewSeedService(
		repository.NewUserRepository(gormDB, log),
		repository.NewCustomerRepository(gormDB, log),
		log,
	)

	res := seeder.Seed(ctx)
	if res.IsFailure() {
		log.Error().Str("reason", res.Error()).Msg("seed failed")
		os.Exit(1)
	}

	summary := res.Value()
	log.Info().
		Int("users_created", summary.UsersCreated).
		Int("customers_created", summary.CustomersCreated).
		Int("skipped", summary.Skipped).
		Msg("seed completed")
}
