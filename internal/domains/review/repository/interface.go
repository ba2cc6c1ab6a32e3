package repository

import (
	"context"

	"github.com/google/uuid"

	"compliance-backend/internal/domains/review/model"
)

type ReviewRepository interface {
	// FanOut seeds one PENDING item per guideline for the content and
	// returns how many were created
	FanOut(ctx context.Context, contentID uuid.UUID) (int64, error)

	CountsByContent(ctx context.Context, contentID uuid.UUID) (model.Counts, error)

	// CountsByContents tallies several contents at once; contents without
	// items are absent from the map
	CountsByContents(ctx context.Context, contentIDs []uuid.UUID) (map[uuid.UUID]model.Counts, error)

	ListByContent(ctx context.Context, contentID uuid.UUID) ([]*model.ReviewItemDetail, error)

	// GetForUpdate locks the item; it must belong to contentID
	GetForUpdate(ctx context.Context, contentID, itemID uuid.UUID) (*model.ReviewItem, error)

	UpdateStatus(ctx context.Context, itemID uuid.UUID, status model.Status, reviewerID uuid.UUID) error

	GetDetail(ctx context.Context, itemID uuid.UUID) (*model.ReviewItemDetail, error)
}
