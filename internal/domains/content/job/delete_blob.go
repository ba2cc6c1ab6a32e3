package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/shared"
)

// DeleteBlobPayload names the object to remove
type DeleteBlobPayload struct {
	Key string `json:"key"`
}

func NewDeleteBlobTask(key string, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(DeleteBlobPayload{Key: key})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(shared.TypeDeleteContentBlob, payload, opts...), nil
}

// AsynqBlobCleaner enqueues deletions of superseded content files
type AsynqBlobCleaner struct {
	client   *asynq.Client
	queue    string
	maxRetry int
}

func NewAsynqBlobCleaner(client *asynq.Client, queue string, maxRetry int) *AsynqBlobCleaner {
	return &AsynqBlobCleaner{client: client, queue: queue, maxRetry: maxRetry}
}

func (c *AsynqBlobCleaner) ScheduleDeletion(ctx context.Context, key string) error {
	task, err := NewDeleteBlobTask(key, asynq.Queue(c.queue), asynq.MaxRetry(c.maxRetry))
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue blob deletion: %w", err)
	}

	log.Debug().Str("task_id", info.ID).Str("key", key).Msg("Blob deletion enqueued")
	return nil
}

// BlobDeleter is implemented by the object storage
type BlobDeleter interface {
	Delete(ctx context.Context, key string) error
}

// DeleteBlobHandler processes content:delete_blob tasks
type DeleteBlobHandler struct {
	blobs BlobDeleter
}

func NewDeleteBlobHandler(blobs BlobDeleter) *DeleteBlobHandler {
	return &DeleteBlobHandler{blobs: blobs}
}

func (h *DeleteBlobHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p DeleteBlobPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if p.Key == "" {
		return fmt.Errorf("empty key: %w", asynq.SkipRetry)
	}

	if err := h.blobs.Delete(ctx, p.Key); err != nil {
		return fmt.Errorf("delete %s: %w", p.Key, err)
	}

	log.Info().Str("key", p.Key).Msg("Superseded content file deleted")
	return nil
}
