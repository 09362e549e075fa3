package dataclient

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/apperrors"
)

func setupTestClient(t *testing.T) Database {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "dataclient_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	db, err := Open(context.Background(), Options{
		Driver: DriverSQLite,
		DSN:    filepath.Join(tempDir, "test.db"),
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecuteStatement(context.Background(), `
		CREATE TABLE items (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			price DECIMAL(10,2) NOT NULL,
			qty INTEGER NOT NULL DEFAULT 0,
			note TEXT,
			created_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		t.Fatalf("Failed to create items table: %v", err)
	}

	return db
}

func TestSQLClient_StatementAndQuery(t *testing.T) {
	db := setupTestClient(t)
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	result, err := db.ExecuteStatement(ctx,
		`INSERT INTO items (id, name, price, qty, note, created_at)
		 VALUES (:id, :name, :price, :qty, :note, :createdAt)
		 RETURNING id, name, price, qty, note, created_at`,
		String("id", "a"),
		String("name", "flour"),
		Decimal("price", decimal.RequireFromString("10.50")),
		Long("qty", 3),
		Null("note"),
		Timestamp("createdAt", created),
	)
	if err != nil {
		t.Fatalf("ExecuteStatement() failed: %v", err)
	}
	if result.NumberOfRecordsUpdated != 1 || len(result.Records) != 1 {
		t.Fatalf("result = %+v, want one returned record", result)
	}

	rec := result.Records[0]
	if rec["name"] != "flour" {
		t.Errorf("name = %v, want flour", rec["name"])
	}
	if rec["qty"] != int64(3) {
		t.Errorf("qty = %#v, want int64(3)", rec["qty"])
	}
	if rec["note"] != nil {
		t.Errorf("note = %v, want nil", rec["note"])
	}

	records, err := db.ExecuteQuery(ctx, "SELECT id, name FROM items WHERE id = :id", String("id", "a"))
	if err != nil {
		t.Fatalf("ExecuteQuery() failed: %v", err)
	}
	if len(records) != 1 || records[0]["id"] != "a" {
		t.Errorf("records = %v, want item a", records)
	}
}

func TestSQLClient_EmptyQueryReturnsEmptySlice(t *testing.T) {
	db := setupTestClient(t)

	records, err := db.ExecuteQuery(context.Background(), "SELECT id FROM items WHERE id = :id", String("id", "nope"))
	if err != nil {
		t.Fatalf("ExecuteQuery() failed: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("records = %#v, want empty non-nil slice", records)
	}
}

func TestSQLClient_RowsAffected(t *testing.T) {
	db := setupTestClient(t)
	ctx := context.Background()

	_, err := db.ExecuteStatement(ctx,
		"INSERT INTO items (id, name, price, created_at) VALUES (:id, :name, :price, :createdAt)",
		String("id", "a"), String("name", "salt"), Double("price", 1.25), Timestamp("createdAt", time.Now()))
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	res, err := db.ExecuteStatement(ctx, "DELETE FROM items WHERE id = :id", String("id", "a"))
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if res.NumberOfRecordsUpdated != 1 {
		t.Errorf("NumberOfRecordsUpdated = %d, want 1", res.NumberOfRecordsUpdated)
	}

	res, err = db.ExecuteStatement(ctx, "DELETE FROM items WHERE id = :id", String("id", "a"))
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if res.NumberOfRecordsUpdated != 0 {
		t.Errorf("NumberOfRecordsUpdated = %d, want 0", res.NumberOfRecordsUpdated)
	}
}

func TestSQLClient_UniqueViolationIsDuplicate(t *testing.T) {
	db := setupTestClient(t)
	ctx := context.Background()

	insert := "INSERT INTO items (id, name, price, created_at) VALUES (:id, :name, :price, :createdAt)"
	if _, err := db.ExecuteStatement(ctx, insert,
		String("id", "a"), String("name", "sugar"), Double("price", 2), Timestamp("createdAt", time.Now())); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	_, err := db.ExecuteStatement(ctx, insert,
		String("id", "b"), String("name", "sugar"), Double("price", 2), Timestamp("createdAt", time.Now()))
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if !apperrors.IsDataAccess(err) {
		t.Errorf("expected DataAccess kind, got %v", apperrors.KindOf(err))
	}
	if !apperrors.IsDuplicate(err) {
		t.Errorf("expected duplicate entry, got %v", err)
	}
}

func TestSQLClient_MissingParameter(t *testing.T) {
	db := setupTestClient(t)

	_, err := db.ExecuteQuery(context.Background(), "SELECT id FROM items WHERE id = :id")
	if err == nil {
		t.Fatal("expected error for unbound parameter")
	}
	if !apperrors.IsDataAccess(err) {
		t.Errorf("expected DataAccess kind, got %v", apperrors.KindOf(err))
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Options{Driver: "oracle", DSN: "x"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}
