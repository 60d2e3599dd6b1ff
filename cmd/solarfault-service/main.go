package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/auth"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/classifier"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/config"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/db"
	httphandler "github.com/Tejkumar2005/solarfaulty-analysis/internal/http"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/http/middleware"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/logger"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/repository"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/service"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	// The classifier is loaded once and the handle reused for every
	// request; a missing or incompatible weight file is fatal.
	model, err := classifier.Load(cfg.Model.Path)
	if err != nil {
		appLogger.Fatal().Err(err).Str("path", cfg.Model.Path).Msg("failed to load classifier model")
	}
	appLogger.Info().Str("path", cfg.Model.Path).Msg("classifier model loaded")

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	inspectionRepo := repository.NewInspectionRepository(database)
	inspectionService := service.NewInspectionService(inspectionRepo, model, appLogger)

	// Initialize R2 client (optional, won't fail if not configured)
	r2Client, err := storage.NewR2ClientFromEnv()
	if err != nil && !errors.Is(err, storage.ErrNotConfigured) {
		appLogger.Fatal().Err(err).Msg("failed to initialize R2 client")
	}
	if err != nil {
		appLogger.Warn().Msg("R2 storage not configured, EL image archiving will be disabled")
		r2Client = nil
	}

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(inspectionService, cfg, appLogger, r2Client)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, database)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting solar fault detection service")

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error().Err(err).Msg("failed to start server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server exited")
}
