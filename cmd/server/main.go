package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/absoluteru/community-api/internal/api"
	"github.com/absoluteru/community-api/internal/core/service"
	"github.com/absoluteru/community-api/internal/infrastructure/config"
	"github.com/absoluteru/community-api/internal/infrastructure/db/badgerdb"
	"github.com/absoluteru/community-api/internal/infrastructure/gamequery"
	"github.com/absoluteru/community-api/internal/infrastructure/steam"
	"github.com/absoluteru/community-api/pkg/logger"
)

func main() {
	// Outside production the environment comes from a local .env file.
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := badgerdb.Open(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open record store")
	}
	defer db.Close()

	// Repositories
	userRepo := badgerdb.NewUserRepository(db)
	statsRepo := badgerdb.NewStatsRepository(db)
	feedbackRepo, err := badgerdb.NewFeedbackRepository(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open feedback collection")
	}
	defer feedbackRepo.Close()

	// External collaborators
	provider := steam.NewProvider(cfg.Steam.APIKey, cfg.PublicURL)
	querier := gamequery.NewClient(cfg.GameServer.Host, cfg.GameServer.Port, cfg.GameServer.Timeout)

	// Services
	userService := service.NewUserService(userRepo, cfg.OwnerSteamID, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, log)
	statsService := service.NewStatsService(statsRepo, userRepo, cfg.StatsAPIKey, log)
	statusService := service.NewStatusService(querier, cfg.GameServer.Name, cfg.GameServer.MaxPlayers, log)

	e := api.NewRouter(api.Dependencies{
		Config:          cfg,
		DB:              db,
		Users:           userRepo,
		UserService:     userService,
		FeedbackService: feedbackService,
		StatsService:    statsService,
		StatusService:   statusService,
		Provider:        provider,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("community api started")

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
