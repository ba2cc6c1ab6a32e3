package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"compliance-backend/internal/domains/content/model"
	reviewModel "compliance-backend/internal/domains/review/model"
)

type ServiceInterface interface {
	// UploadContent stores the file and creates version 1 with its review items
	UploadContent(ctx context.Context, actorID uuid.UUID, req model.UploadContentRequest) (*model.ContentResponse, error)

	GetContent(ctx context.Context, id uuid.UUID) (*model.ContentResponse, error)
	ListContents(ctx context.Context) ([]model.ContentResponse, error)

	// UpdateContent is owner-only; replacing the file bumps the version
	UpdateContent(ctx context.Context, actorID, id uuid.UUID, req model.UpdateContentRequest) (*model.ContentResponse, error)
}

// BlobStore holds the uploaded files
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// BlobCleaner removes superseded files in the background
type BlobCleaner interface {
	ScheduleDeletion(ctx context.Context, key string) error
}

// ReviewTracker is the part of the review repository content needs
type ReviewTracker interface {
	FanOut(ctx context.Context, contentID uuid.UUID) (int64, error)
	CountsByContent(ctx context.Context, contentID uuid.UUID) (reviewModel.Counts, error)
	CountsByContents(ctx context.Context, contentIDs []uuid.UUID) (map[uuid.UUID]reviewModel.Counts, error)
}
