package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"crm/docs"
	"crm/internal/auth"
	"crm/internal/cache"
	"crm/internal/db"
	"crm/internal/handler"
	"crm/internal/repository"
	"crm/internal/router"
	"crm/internal/service"
	"crm/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CRM HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	log := logger.Get()

	gormDB, err := db.Open(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	if cfg.Database.Reset {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		db.Reset(gormDB, log)
	}
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(gormDB); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	cacheClient := cache.New(cfg.Redis, log)
	defer cacheClient.Close()

	// Repositories
	customerRepo := repository.NewCustomerRepository(gormDB, log)
	userRepo := repository.NewUserRepository(gormDB, log)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Duration())

	// Services
	customerService := service.NewCustomerService(customerRepo, cacheClient, cfg.Redis.TTL, log)
	authService := service.NewAuthService(userRepo, jwtService, log)
	seedService := service.NewSeedService(userRepo, customerRepo, log)

	deps := map[string]handler.Pinger{"database": handler.PingFunc(sqlDB.PingContext)}
	if cacheClient != nil {
		deps["redis"] = cacheClient
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, router.Options{JWT: jwtService, Logger: log}, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Customer: handler.NewCustomerHandler(customerService),
		Seed:     handler.NewSeedHandler(seedService, cfg.SeedEnabled),
		Health:   handler.NewHealthHandler(deps),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}

	addr := ":" + cfg.ServerPort
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("swagger", "/swagger/index.html").Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
