package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/config"
	"compliance-backend/internal/infrastructure/database"
	"compliance-backend/pkg/logger"
)

// Applies the embedded schema to the configured database and exits
func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("[Migrate] Invalid database config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, dbConfig.DSN()); err != nil {
		log.Fatal().Err(err).Msg("[Migrate] Failed")
	}

	log.Info().Str("database", dbConfig.DBName).Msg("[Migrate] Schema up to date")
}
