package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"compliance-backend/internal/config"
	"compliance-backend/pkg/cache"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	redis cache.Cache
}

func startServices(cfg *config.Config, redis cache.Cache) error {
	log.Info().Str("app", cfg.App.Name).Msg("Worker starting")

	checker := &HealthChecker{redis: redis}
	if err := checker.checkAll(); err != nil {
		return err
	}

	go startHealthCheckServer(cfg.Queue.HealthAddr)
	return nil
}

func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Redis Connection", h.checkRedis},
	}

	for _, check := range checks {
		log.Info().Str("check", check.name).Msg("Checking...")
		if err := check.fn(); err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("Check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("OK")
	}
	return nil
}

// Asynq shares this Redis, so one ping covers both
func (h *HealthChecker) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.redis.Ping(ctx)
}

func startHealthCheckServer(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthCheckHandler)
	mux.HandleFunc("/ready", readyCheckHandler)

	log.Info().Str("addr", addr).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"UP","service":"compliance-worker"}`))
}

func readyCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"READY"}`))
}
