package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"compliance-backend/internal/domains/content/model"
	"compliance-backend/pkg/database"
)

const uniqueAuthorTitle = "contents_author_title_key"

const contentColumns = `id, title, file_key, author_id, version, created_at, updated_at`

type postgresContentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &postgresContentRepository{pool: pool}
}

func (r *postgresContentRepository) Create(ctx context.Context, c *model.Content) error {
	query := `
		INSERT INTO contents (id, title, file_key, author_id, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		c.ID, c.Title, c.FileKey, c.AuthorID, c.Version, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, uniqueAuthorTitle) {
			return model.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

func (r *postgresContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *postgresContentRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *postgresContentRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*model.Content, error) {
	c, err := scanContent(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return c, nil
}

func (r *postgresContentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM contents WHERE id = $1)`
	if err := database.Conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check content: %w", err)
	}
	return exists, nil
}

func (r *postgresContentRepository) List(ctx context.Context) ([]*model.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents ORDER BY created_at DESC, id`

	rows, err := database.Conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	defer rows.Close()

	contents := make([]*model.Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contents: %w", err)
	}
	return contents, nil
}

func (r *postgresContentRepository) ExistsByAuthorAndTitle(ctx context.Context, authorID uuid.UUID, title string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM contents WHERE author_id = $1 AND title = $2)`
	if err := database.Conn(ctx, r.pool).QueryRow(ctx, query, authorID, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check title: %w", err)
	}
	return exists, nil
}

func (r *postgresContentRepository) Update(ctx context.Context, id uuid.UUID, title, fileKey *string) (*model.Content, error) {
	query := `
		UPDATE contents
		SET title      = COALESCE($2::varchar, title),
		    file_key   = COALESCE($3::varchar, file_key),
		    version    = version + CASE WHEN $3::varchar IS NULL THEN 0 ELSE 1 END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + contentColumns

	c, err := scanContent(database.Conn(ctx, r.pool).QueryRow(ctx, query, id, title, fileKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrContentNotFound
		}
		if database.IsUniqueViolation(err, uniqueAuthorTitle) {
			return nil, model.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to update content: %w", err)
	}
	return c, nil
}

func scanContent(row pgx.Row) (*model.Content, error) {
	c := &model.Content{}
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.FileKey,
		&c.AuthorID,
		&c.Version,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
