package dataclient

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"serverless-crud-api/internal/apperrors"
)

func setupPostgres(t *testing.T) Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(
		ctx,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("crud"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Errorf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	db, err := Open(ctx, Options{
		Driver:         DriverPostgres,
		DSN:            dsn,
		MaxOpenConns:   4,
		ConnectTimeout: 5 * time.Second,
		MaxRetries:     5,
		Logger:         logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecuteStatement(ctx, `
		CREATE TABLE items (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			price DECIMAL(10,2) NOT NULL,
			qty INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`)
	require.NoError(t, err)

	return db
}

func TestPgxClient_RoundTrip(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	result, err := db.ExecuteStatement(ctx,
		`INSERT INTO items (id, name, price, qty, created_at)
		 VALUES (:id, :name, :price, :qty, :createdAt)
		 RETURNING id, name, price, qty, created_at`,
		String("id", "a"),
		String("name", "flour"),
		Decimal("price", decimal.RequireFromString("10.50")),
		Long("qty", 3),
		Timestamp("createdAt", created),
	)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "flour", rec["name"])
	assert.Equal(t, int64(3), rec["qty"])
	assert.Equal(t, "10.50", rec["price"])
	assert.True(t, created.Equal(rec["created_at"].(time.Time)))

	records, err := db.ExecuteQuery(ctx, "SELECT id FROM items WHERE qty >= :min", Long("min", 1))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	res, err := db.ExecuteStatement(ctx, "DELETE FROM items WHERE id = :id", String("id", "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.NumberOfRecordsUpdated)
}

func TestPgxClient_UniqueViolationIsDuplicate(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	insert := "INSERT INTO items (id, name, price, created_at) VALUES (:id, :name, :price, :createdAt)"
	_, err := db.ExecuteStatement(ctx, insert,
		String("id", "a"), String("name", "salt"), Double("price", 1), Timestamp("createdAt", time.Now()))
	require.NoError(t, err)

	_, err = db.ExecuteStatement(ctx, insert,
		String("id", "b"), String("name", "salt"), Double("price", 1), Timestamp("createdAt", time.Now()))
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicate(err))
	assert.Equal(t, apperrors.KindDataAccess, apperrors.KindOf(err))
}
