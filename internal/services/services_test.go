package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/apperrors"
	"serverless-crud-api/internal/database"
	"serverless-crud-api/internal/dataclient"
	"serverless-crud-api/internal/identifier"
	"serverless-crud-api/internal/repositories/relational"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

// setupTestServices builds both services over a fresh sqlite database
func setupTestServices(t *testing.T) *ServiceContainer {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "services_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	logger := testLogger()
	ctx := context.Background()

	db, err := dataclient.Open(ctx, dataclient.Options{
		Driver: dataclient.DriverSQLite,
		DSN:    filepath.Join(tempDir, "test.db"),
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.NewInitializer(db, logger).Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	var mu sync.Mutex
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}

	repos, err := relational.NewRepositoryContainer(relational.Deps{
		Client: db,
		IDs:    identifier.NewSequence("id"),
		Clock:  clock,
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}

	container, err := NewServiceContainer(repos, logger)
	if err != nil {
		t.Fatalf("Failed to create services: %v", err)
	}
	if err := container.Validate(); err != nil {
		t.Fatalf("Service container invalid: %v", err)
	}
	return container
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// assertValidation fails unless err is a validation error with message
func assertValidation(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error %q, got nil", message)
	}
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v (kind %v)", err, apperrors.KindOf(err))
	}
	if got := apperrors.MessageOf(err); got != message {
		t.Errorf("message = %q, want %q", got, message)
	}
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestNewServiceContainer_NilRepos(t *testing.T) {
	if _, err := NewServiceContainer(nil, nil); err == nil {
		t.Error("expected error for nil repository container")
	}
}

func TestRequestIsEmpty(t *testing.T) {
	if !(&UpdateUserRequest{}).IsEmpty() {
		t.Error("empty user update should be empty")
	}
	if (&UpdateUserRequest{Email: strPtr("a@b.co")}).IsEmpty() {
		t.Error("user update with email should not be empty")
	}
	if !(&UpdateProductRequest{}).IsEmpty() {
		t.Error("empty product update should be empty")
	}
	if (&UpdateProductRequest{Stock: int64Ptr(0)}).IsEmpty() {
		t.Error("product update with zero stock should not be empty")
	}
}
