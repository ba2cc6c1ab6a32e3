package queue

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/config"
)

// RedisOpt builds the asynq connection options from the shared Redis settings
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// NewServer creates a worker server that only listens on the configured queue
func NewServer(redisCfg config.RedisConfig, queueCfg config.QueueConfig) *asynq.Server {
	return asynq.NewServer(
		RedisOpt(redisCfg),
		asynq.Config{
			Queues:      map[string]int{queueCfg.Name: 1},
			Concurrency: queueCfg.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("[ASYNQ] Task failed")
			}),
		},
	)
}
