package repository

import (
	"context"

	"github.com/google/uuid"

	"compliance-backend/internal/domains/content/model"
)

type ContentRepository interface {
	// Create returns model.ErrDuplicateTitle when the author already owns the title
	Create(ctx context.Context, c *model.Content) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Content, error)

	// GetByIDForUpdate locks the row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Content, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns all content, newest first
	List(ctx context.Context) ([]*model.Content, error)

	ExistsByAuthorAndTitle(ctx context.Context, authorID uuid.UUID, title string) (bool, error)

	// Update sets the non-nil fields; a new file key also bumps the version
	Update(ctx context.Context, id uuid.UUID, title, fileKey *string) (*model.Content, error)
}
