package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/domains/guideline/model"
	"compliance-backend/pkg/cache"
	"compliance-backend/pkg/database"
)

const (
	cacheKeyList   = "guidelines:list"
	cacheKeyPrefix = "guidelines:"
	cacheTTL       = 10 * time.Minute
)

// postgresGuidelineRepository reads through a Redis cache.
// Review fan-out never goes through here, it reads the table directly.
type postgresGuidelineRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresGuidelineRepository(pool *pgxpool.Pool, cache cache.Cache) GuidelineRepository {
	return &postgresGuidelineRepository{pool: pool, cache: cache}
}

func itemKey(id uuid.UUID) string {
	return cacheKeyPrefix + id.String()
}

func (r *postgresGuidelineRepository) List(ctx context.Context) ([]*model.Guideline, error) {
	var cached []*model.Guideline
	if r.cacheGet(ctx, cacheKeyList, &cached) {
		return cached, nil
	}

	query := `
		SELECT id, title, description, created_at
		FROM guidelines
		ORDER BY created_at, id
	`

	rows, err := database.Conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list guidelines: %w", err)
	}
	defer rows.Close()

	guidelines := make([]*model.Guideline, 0)
	for rows.Next() {
		g := &model.Guideline{}
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan guideline: %w", err)
		}
		guidelines = append(guidelines, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate guidelines: %w", err)
	}

	r.cacheSet(ctx, cacheKeyList, guidelines)
	return guidelines, nil
}

func (r *postgresGuidelineRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Guideline, error) {
	g := &model.Guideline{}
	if r.cacheGet(ctx, itemKey(id), g) {
		return g, nil
	}

	query := `
		SELECT id, title, description, created_at
		FROM guidelines
		WHERE id = $1
	`

	err := database.Conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGuidelineNotFound
		}
		return nil, fmt.Errorf("failed to get guideline: %w", err)
	}

	r.cacheSet(ctx, itemKey(id), g)
	return g, nil
}

func (r *postgresGuidelineRepository) Create(ctx context.Context, g *model.Guideline) error {
	query := `
		INSERT INTO guidelines (id, title, description, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := database.Conn(ctx, r.pool).Exec(ctx, query, g.ID, g.Title, g.Description, g.CreatedAt); err != nil {
		return fmt.Errorf("failed to create guideline: %w", err)
	}

	r.invalidate(ctx, cacheKeyList)
	return nil
}

func (r *postgresGuidelineRepository) Update(ctx context.Context, g *model.Guideline) error {
	query := `
		UPDATE guidelines
		SET title = $2, description = $3
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.pool).Exec(ctx, query, g.ID, g.Title, g.Description)
	if err != nil {
		return fmt.Errorf("failed to update guideline: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrGuidelineNotFound
	}

	r.invalidate(ctx, cacheKeyList, itemKey(g.ID))
	return nil
}

// Cache failures degrade to a database read; they never fail the request.

func (r *postgresGuidelineRepository) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.cache == nil {
		return false
	}
	found, err := r.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("guideline cache read failed")
		return false
	}
	return found
}

func (r *postgresGuidelineRepository) cacheSet(ctx context.Context, key string, value interface{}) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, value, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("guideline cache write failed")
	}
}

func (r *postgresGuidelineRepository) invalidate(ctx context.Context, keys ...string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("guideline cache invalidation failed")
	}
}
