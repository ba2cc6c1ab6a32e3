package repository

import (
	"context"

	"github.com/google/uuid"

	"compliance-backend/internal/domains/guideline/model"
)

type GuidelineRepository interface {
	// List returns the whole catalog ordered by creation time
	List(ctx context.Context) ([]*model.Guideline, error)

	// GetByID returns model.ErrGuidelineNotFound when missing
	GetByID(ctx context.Context, id uuid.UUID) (*model.Guideline, error)

	Create(ctx context.Context, g *model.Guideline) error

	// Update overwrites title and description
	Update(ctx context.Context, g *model.Guideline) error
}
