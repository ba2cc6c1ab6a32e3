package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"compliance-backend/internal/domains/user/model"
	"compliance-backend/pkg/cache"
	"compliance-backend/pkg/database"
)

const userCacheTTL = 15 * time.Minute

type postgresUserRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresUserRepository(pool *pgxpool.Pool, cache cache.Cache) UserRepository {
	return &postgresUserRepository{pool: pool, cache: cache}
}

func userCacheKey(id uuid.UUID) string {
	return "users:" + id.String()
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User

	if r.cache != nil {
		if found, err := r.cache.Get(ctx, userCacheKey(id), &u); err == nil && found {
			return &u, nil
		}
	}

	query := `
		SELECT id, username, full_name, created_at
		FROM users
		WHERE id = $1
	`

	err := database.Conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Username,
		&u.FullName,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, userCacheKey(id), &u, userCacheTTL)
	}

	return &u, nil
}
