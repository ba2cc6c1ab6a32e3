// Package dbtest starts a throwaway PostgreSQL for repository tests and
// applies the embedded schema to it.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"compliance-backend/internal/infrastructure/database"
)

const image = "postgres:16-alpine"

// NewPool starts a container, migrates it and returns a pool on it.
// Skipped with -short or when no Docker daemon is reachable.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres integration test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, image,
		postgres.WithDatabase("compliance_test"),
		postgres.WithUsername("compliance"),
		postgres.WithPassword("compliance"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// Reset empties every table so subtests start from a clean schema
func Reset(t testing.TB, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE review_items, contents, guidelines, users CASCADE`)
	require.NoError(t, err)
}

func InsertUser(t testing.TB, pool *pgxpool.Pool, username, fullName string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, username, full_name) VALUES ($1, $2, $3)`,
		id, username, fullName,
	)
	require.NoError(t, err)
	return id
}

// InsertGuideline stamps created_at explicitly so catalog order is stable
func InsertGuideline(t testing.TB, pool *pgxpool.Pool, title string, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO guidelines (id, title, description, created_at) VALUES ($1, $2, $3, $4)`,
		id, title, title+" description", createdAt,
	)
	require.NoError(t, err)
	return id
}

func InsertContent(t testing.TB, pool *pgxpool.Pool, authorID uuid.UUID, title string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO contents (id, title, file_key, author_id) VALUES ($1, $2, $3, $4)`,
		id, title, "uploads/"+id.String()+".pdf", authorID,
	)
	require.NoError(t, err)
	return id
}
