package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/config"
	"serverless-crud-api/internal/services"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "container_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	return &config.Config{
		Environment:    "test",
		Port:           "8080",
		AutoInitSchema: true,
		Database: config.DatabaseConfig{
			Driver:          "sqlite3",
			DSN:             filepath.Join(tempDir, "test.db"),
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
			ConnectTimeout:  time.Second,
			MaxRetries:      1,
		},
		Log: config.LogConfig{Level: "error", Format: "text"},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	ctx := context.Background()

	container, err := NewContainer(ctx, testConfig(t))
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.UserService == nil {
		t.Error("UserService is nil")
	}
	if container.ProductService == nil {
		t.Error("ProductService is nil")
	}
	if container.Initializer == nil {
		t.Error("Initializer is nil")
	}
	if err := container.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	// Schema was created on startup, so services work right away
	user, err := container.UserService.CreateUser(ctx, &services.CreateUserRequest{Name: "Ann", Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated user id")
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
	if err := container.Ping(ctx); err == nil {
		t.Error("expected Ping to fail after Close")
	}
	if err := container.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestNewContainer_Errors(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	if _, err := NewContainerWithLogger(context.Background(), nil, logger); err == nil {
		t.Error("expected error for nil config")
	}

	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"
	if _, err := NewContainerWithLogger(context.Background(), cfg, logger); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
