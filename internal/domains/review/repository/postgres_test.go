package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-backend/internal/domains/review/model"
	"compliance-backend/internal/infrastructure/database/dbtest"
	"compliance-backend/pkg/database"
)

func seedCatalog(t *testing.T, pool *pgxpool.Pool, n int) []uuid.UUID {
	t.Helper()
	base := time.Now().UTC().Add(-time.Hour)
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = dbtest.InsertGuideline(t, pool, "Rule "+string(rune('A'+i)), base.Add(time.Duration(i)*time.Minute))
	}
	return ids
}

func TestPostgresReviewRepository_FanOut(t *testing.T) {
	pool := dbtest.NewPool(t)
	repo := NewPostgresReviewRepository(pool)
	ctx := context.Background()

	t.Run("one pending item per guideline", func(t *testing.T) {
		dbtest.Reset(t, pool)
		guidelines := seedCatalog(t, pool, 3)
		author := dbtest.InsertUser(t, pool, "alice", "Alice")
		content := dbtest.InsertContent(t, pool, author, "Policy")

		created, err := repo.FanOut(ctx, content)
		require.NoError(t, err)
		assert.EqualValues(t, 3, created)

		items, err := repo.ListByContent(ctx, content)
		require.NoError(t, err)
		require.Len(t, items, 3)
		for i, item := range items {
			assert.Equal(t, guidelines[i], item.GuidelineID)
			assert.Equal(t, content, item.ContentID)
			assert.Equal(t, model.StatusPending, item.Status)
			assert.Nil(t, item.ReviewerID)
			assert.Nil(t, item.ReviewedAt)
			assert.Nil(t, item.ReviewerName)
		}
	})

	t.Run("empty catalog seeds nothing", func(t *testing.T) {
		dbtest.Reset(t, pool)
		author := dbtest.InsertUser(t, pool, "alice", "Alice")
		content := dbtest.InsertContent(t, pool, author, "Policy")

		created, err := repo.FanOut(ctx, content)
		require.NoError(t, err)
		assert.Zero(t, created)

		counts, err := repo.CountsByContent(ctx, content)
		require.NoError(t, err)
		assert.Equal(t, model.AggregateNoItems, model.Aggregate(counts))
	})

	t.Run("repeat never duplicates a pair", func(t *testing.T) {
		dbtest.Reset(t, pool)
		seedCatalog(t, pool, 2)
		author := dbtest.InsertUser(t, pool, "alice", "Alice")
		content := dbtest.InsertContent(t, pool, author, "Policy")

		_, err := repo.FanOut(ctx, content)
		require.NoError(t, err)

		dbtest.InsertGuideline(t, pool, "Late rule", time.Now().UTC())
		created, err := repo.FanOut(ctx, content)
		require.NoError(t, err)
		assert.EqualValues(t, 1, created)

		counts, err := repo.CountsByContent(ctx, content)
		require.NoError(t, err)
		assert.Equal(t, 3, counts.Total)
	})

	t.Run("rolled back with the surrounding transaction", func(t *testing.T) {
		dbtest.Reset(t, pool)
		seedCatalog(t, pool, 2)
		author := dbtest.InsertUser(t, pool, "alice", "Alice")
		content := dbtest.InsertContent(t, pool, author, "Policy")

		err := database.NewTransactor(pool).WithinTransaction(ctx, func(ctx context.Context) error {
			if _, err := repo.FanOut(ctx, content); err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)

		counts, err := repo.CountsByContent(ctx, content)
		require.NoError(t, err)
		assert.Zero(t, counts.Total)
	})
}

func TestPostgresReviewRepository_Counts(t *testing.T) {
	pool := dbtest.NewPool(t)
	repo := NewPostgresReviewRepository(pool)
	ctx := context.Background()

	seedCatalog(t, pool, 2)
	reviewer := dbtest.InsertUser(t, pool, "rita", "Rita Reviewer")
	author := dbtest.InsertUser(t, pool, "alice", "Alice")
	passed := dbtest.InsertContent(t, pool, author, "Passed")
	mixed := dbtest.InsertContent(t, pool, author, "Mixed")
	bare := dbtest.InsertContent(t, pool, author, "Bare")

	for _, id := range []uuid.UUID{passed, mixed} {
		_, err := repo.FanOut(ctx, id)
		require.NoError(t, err)
	}

	setAll := func(contentID uuid.UUID, statuses ...model.Status) {
		items, err := repo.ListByContent(ctx, contentID)
		require.NoError(t, err)
		require.Len(t, items, len(statuses))
		for i, item := range items {
			require.NoError(t, repo.UpdateStatus(ctx, item.ID, statuses[i], reviewer))
		}
	}
	setAll(passed, model.StatusPass, model.StatusPass)
	setAll(mixed, model.StatusPass, model.StatusFail)

	counts, err := repo.CountsByContent(ctx, passed)
	require.NoError(t, err)
	assert.Equal(t, model.Counts{Total: 2, Passed: 2}, counts)
	assert.Equal(t, model.AggregateCompleted, model.Aggregate(counts))

	counts, err = repo.CountsByContent(ctx, mixed)
	require.NoError(t, err)
	assert.Equal(t, model.Counts{Total: 2, Passed: 1}, counts)
	assert.Equal(t, model.AggregatePending, model.Aggregate(counts))

	byContent, err := repo.CountsByContents(ctx, []uuid.UUID{passed, mixed, bare})
	require.NoError(t, err)
	assert.Equal(t, model.Counts{Total: 2, Passed: 2}, byContent[passed])
	assert.Equal(t, model.Counts{Total: 2, Passed: 1}, byContent[mixed])
	_, ok := byContent[bare]
	assert.False(t, ok)

	empty, err := repo.CountsByContents(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostgresReviewRepository_UpdateStatus(t *testing.T) {
	pool := dbtest.NewPool(t)
	repo := NewPostgresReviewRepository(pool)
	ctx := context.Background()

	seedCatalog(t, pool, 1)
	reviewer := dbtest.InsertUser(t, pool, "rita", "Rita Reviewer")
	author := dbtest.InsertUser(t, pool, "alice", "Alice")
	content := dbtest.InsertContent(t, pool, author, "Policy")
	other := dbtest.InsertContent(t, pool, author, "Other")
	_, err := repo.FanOut(ctx, content)
	require.NoError(t, err)

	items, err := repo.ListByContent(ctx, content)
	require.NoError(t, err)
	require.Len(t, items, 1)
	itemID := items[0].ID

	t.Run("lookup is scoped to the content", func(t *testing.T) {
		_, err := repo.GetForUpdate(ctx, other, itemID)
		assert.ErrorIs(t, err, model.ErrReviewItemNotFound)

		_, err = repo.GetForUpdate(ctx, content, uuid.New())
		assert.ErrorIs(t, err, model.ErrReviewItemNotFound)
	})

	t.Run("status reviewer and timestamp written together", func(t *testing.T) {
		err := database.NewTransactor(pool).WithinTransaction(ctx, func(ctx context.Context) error {
			item, err := repo.GetForUpdate(ctx, content, itemID)
			if err != nil {
				return err
			}
			assert.Equal(t, model.StatusPending, item.Status)
			return repo.UpdateStatus(ctx, itemID, model.StatusPass, reviewer)
		})
		require.NoError(t, err)

		detail, err := repo.GetDetail(ctx, itemID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPass, detail.Status)
		require.NotNil(t, detail.ReviewerID)
		assert.Equal(t, reviewer, *detail.ReviewerID)
		require.NotNil(t, detail.ReviewedAt)
		require.NotNil(t, detail.ReviewerName)
		assert.Equal(t, "Rita Reviewer", *detail.ReviewerName)
		assert.Equal(t, "Rule A", detail.GuidelineTitle)
	})

	t.Run("failed transaction leaves the item untouched", func(t *testing.T) {
		before, err := repo.GetDetail(ctx, itemID)
		require.NoError(t, err)

		err = database.NewTransactor(pool).WithinTransaction(ctx, func(ctx context.Context) error {
			if err := repo.UpdateStatus(ctx, itemID, model.StatusFail, reviewer); err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)

		after, err := repo.GetDetail(ctx, itemID)
		require.NoError(t, err)
		assert.Equal(t, before.Status, after.Status)
		assert.Equal(t, before.ReviewedAt, after.ReviewedAt)
	})

	t.Run("unknown status rejected by the schema", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, itemID, model.Status("MAYBE"), reviewer)
		assert.Error(t, err)
	})

	t.Run("missing item", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, uuid.New(), model.StatusPass, reviewer)
		assert.ErrorIs(t, err, model.ErrReviewItemNotFound)

		_, err = repo.GetDetail(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrReviewItemNotFound)
	})
}
