package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/config"
	infraCache "compliance-backend/internal/infrastructure/cache"
	"compliance-backend/internal/infrastructure/storage"
	"compliance-backend/pkg/logger"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("development", "info")
		log.Fatal().Err(err).Msg("[Config] Failed to load")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		log.Warn().Msg("No .env file found, using system environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("[Storage] Failed to initialize")
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	defer redisCache.Close()

	handlers := initializeHandlers(store)
	srv := setupAsynqServer(cfg, handlers)

	if err := startServices(cfg, redisCache); err != nil {
		srv.Shutdown()
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	waitForShutdown(srv)
}

func waitForShutdown(srv *asynqServer) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Shutdown] Gracefully stopping...")
	srv.Shutdown()
	log.Info().Msg("[Shutdown] Stopped")
}
