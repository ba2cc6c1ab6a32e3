package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/config"
	"compliance-backend/internal/infrastructure/queue"
)

// asynqServer wraps asynq.Server for startup and shutdown logging
type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := queue.NewServer(cfg.Redis, cfg.Queue)

	go func() {
		log.Info().Str("queue", cfg.Queue.Name).Int("concurrency", cfg.Queue.Concurrency).Msg("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] Failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to asynq's ShutdownTimeout
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] Gracefully stopped")
}
