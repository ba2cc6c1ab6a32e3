package repository

import (
	"context"

	"github.com/google/uuid"

	"compliance-backend/internal/domains/user/model"
)

type UserRepository interface {
	// GetByID returns model.ErrUserNotFound when no row exists
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
