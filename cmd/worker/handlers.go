package main

import (
	"github.com/hibiken/asynq"

	contentJob "compliance-backend/internal/domains/content/job"
	"compliance-backend/internal/shared"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	deleteContentBlob *contentJob.DeleteBlobHandler
}

func initializeHandlers(blobs contentJob.BlobDeleter) *HandlerRegistry {
	return &HandlerRegistry{
		deleteContentBlob: contentJob.NewDeleteBlobHandler(blobs),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeDeleteContentBlob, h.deleteContentBlob.ProcessTask)
}
