package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/bhorvath/carwise/internal/advisor"
	"github.com/bhorvath/carwise/internal/advisor/fake"
	"github.com/bhorvath/carwise/internal/advisor/gemini"
	"github.com/bhorvath/carwise/internal/auth"
	"github.com/bhorvath/carwise/internal/config"
	"github.com/bhorvath/carwise/internal/db"
	"github.com/bhorvath/carwise/internal/logging"
	"github.com/bhorvath/carwise/internal/service"
	"github.com/bhorvath/carwise/internal/store"
	"github.com/bhorvath/carwise/internal/web"
	"github.com/bhorvath/carwise/internal/web/templates"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	userStore := store.NewUserStore(database)
	sessionStore := store.NewSessionStore(database)
	carStore := store.NewCarStore(database)
	recordStore := store.NewRecordStore(database)

	ai := newAdvisor(cfg, logger)
	if ai == nil {
		return
	}

	authn := auth.New(userStore, sessionStore, time.Duration(cfg.SessionTTLHours)*time.Hour)
	garage := service.NewGarageService(carStore, recordStore, ai, logger)
	server := web.NewServer(garage, authn, templates.FS, cfg.DefaultRadiusKm, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newAdvisor(cfg *config.Config, logger *slog.Logger) advisor.Advisor {
	if cfg.TestMode {
		logger.Info("using canned advisor backend")
		return fake.NewFakeAdvisor()
	}

	if cfg.GeminiAPIKey == "" {
		logger.Error("GEMINI_API_KEY is required unless CARWISE_TEST_MODE=1")
		return nil
	}

	logger.Info("using Gemini advisor backend", "model", cfg.GeminiModel)
	ai, err := gemini.NewGeminiAdvisor(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("failed to initialize Gemini client", "error", err)
		return nil
	}
	return ai
}
