package service

import (
	"context"

	"github.com/google/uuid"

	"compliance-backend/internal/domains/review/model"
)

type ServiceInterface interface {
	// ListReviewItems returns every item of a content with its guideline
	ListReviewItems(ctx context.Context, contentID uuid.UUID) ([]model.ReviewItemResponse, error)

	// UpdateReviewItem records the actor's verdict for one item
	UpdateReviewItem(ctx context.Context, actorID, contentID, itemID uuid.UUID, req model.UpdateReviewItemRequest) (*model.ReviewItemResponse, error)
}

// ContentChecker is satisfied by the content repository
type ContentChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
