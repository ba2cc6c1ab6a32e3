package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"compliance-backend/internal/domains/review/model"
	"compliance-backend/pkg/database"
)

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

const detailColumns = `
	ri.id, ri.content_id, ri.guideline_id, ri.status, ri.reviewer_id, ri.reviewed_at,
	g.title, g.description, g.created_at, u.full_name
`

const detailJoins = `
	FROM review_items ri
	JOIN guidelines g ON g.id = ri.guideline_id
	LEFT JOIN users u ON u.id = ri.reviewer_id
`

// FanOut reads the catalog in the same statement that inserts, so the
// items match the guidelines visible at that instant
func (r *postgresReviewRepository) FanOut(ctx context.Context, contentID uuid.UUID) (int64, error) {
	query := `
		INSERT INTO review_items (id, content_id, guideline_id, status)
		SELECT gen_random_uuid(), $1::uuid, g.id, $2::varchar
		FROM guidelines g
		ON CONFLICT (content_id, guideline_id) DO NOTHING
	`

	result, err := database.Conn(ctx, r.pool).Exec(ctx, query, contentID, model.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to fan out review items: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *postgresReviewRepository) CountsByContent(ctx context.Context, contentID uuid.UUID) (model.Counts, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $2)
		FROM review_items
		WHERE content_id = $1
	`

	var c model.Counts
	if err := database.Conn(ctx, r.pool).QueryRow(ctx, query, contentID, model.StatusPass).Scan(&c.Total, &c.Passed); err != nil {
		return model.Counts{}, fmt.Errorf("failed to count review items: %w", err)
	}
	return c, nil
}

func (r *postgresReviewRepository) CountsByContents(ctx context.Context, contentIDs []uuid.UUID) (map[uuid.UUID]model.Counts, error) {
	counts := make(map[uuid.UUID]model.Counts, len(contentIDs))
	if len(contentIDs) == 0 {
		return counts, nil
	}

	ids := make([]string, len(contentIDs))
	for i, id := range contentIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT content_id, COUNT(*), COUNT(*) FILTER (WHERE status = $2)
		FROM review_items
		WHERE content_id = ANY($1::uuid[])
		GROUP BY content_id
	`

	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, ids, model.StatusPass)
	if err != nil {
		return nil, fmt.Errorf("failed to count review items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var c model.Counts
		if err := rows.Scan(&id, &c.Total, &c.Passed); err != nil {
			return nil, fmt.Errorf("failed to scan review counts: %w", err)
		}
		counts[id] = c
	}
	return counts, rows.Err()
}

func (r *postgresReviewRepository) ListByContent(ctx context.Context, contentID uuid.UUID) ([]*model.ReviewItemDetail, error) {
	query := `SELECT ` + detailColumns + detailJoins + `
		WHERE ri.content_id = $1
		ORDER BY g.created_at, g.id
	`

	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review items: %w", err)
	}
	defer rows.Close()

	items := make([]*model.ReviewItemDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review item: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review items: %w", err)
	}
	return items, nil
}

func (r *postgresReviewRepository) GetForUpdate(ctx context.Context, contentID, itemID uuid.UUID) (*model.ReviewItem, error) {
	query := `
		SELECT id, content_id, guideline_id, status, reviewer_id, reviewed_at
		FROM review_items
		WHERE id = $1 AND content_id = $2
		FOR UPDATE
	`

	item := &model.ReviewItem{}
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query, itemID, contentID).Scan(
		&item.ID,
		&item.ContentID,
		&item.GuidelineID,
		&item.Status,
		&item.ReviewerID,
		&item.ReviewedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewItemNotFound
		}
		return nil, fmt.Errorf("failed to get review item: %w", err)
	}
	return item, nil
}

// UpdateStatus writes status, reviewer and timestamp in one statement
func (r *postgresReviewRepository) UpdateStatus(ctx context.Context, itemID uuid.UUID, status model.Status, reviewerID uuid.UUID) error {
	query := `
		UPDATE review_items
		SET status = $2, reviewer_id = $3, reviewed_at = NOW()
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.pool).Exec(ctx, query, itemID, status, reviewerID)
	if err != nil {
		return fmt.Errorf("failed to update review item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrReviewItemNotFound
	}
	return nil
}

func (r *postgresReviewRepository) GetDetail(ctx context.Context, itemID uuid.UUID) (*model.ReviewItemDetail, error) {
	query := `SELECT ` + detailColumns + detailJoins + `
		WHERE ri.id = $1
	`

	d, err := scanDetail(database.Conn(ctx, r.pool).QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewItemNotFound
		}
		return nil, fmt.Errorf("failed to get review item: %w", err)
	}
	return d, nil
}

func scanDetail(row pgx.Row) (*model.ReviewItemDetail, error) {
	d := &model.ReviewItemDetail{}
	err := row.Scan(
		&d.ID,
		&d.ContentID,
		&d.GuidelineID,
		&d.Status,
		&d.ReviewerID,
		&d.ReviewedAt,
		&d.GuidelineTitle,
		&d.GuidelineDescription,
		&d.GuidelineCreatedAt,
		&d.ReviewerName,
	)
	return d, err
}
