package lambda

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"serverless-crud-api/internal/config"
	"serverless-crud-api/pkg/server"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "connection_manager_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	return &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			Driver:         "sqlite3",
			DSN:            filepath.Join(tempDir, "test.db"),
			MaxOpenConns:   1,
			ConnectTimeout: time.Second,
			MaxRetries:     1,
		},
		Log: config.LogConfig{Level: "error", Format: "json"},
	}
}

func TestConnectionManager_ReusesContainer(t *testing.T) {
	cfg := sqliteConfig(t)
	builds := 0
	cm := NewConnectionManager(func(ctx context.Context, c *config.Config) (*server.Container, error) {
		builds++
		return server.NewContainer(ctx, c)
	}, func() (*config.Config, error) { return cfg, nil })
	t.Cleanup(func() { cm.Cleanup() })

	ctx := context.Background()
	first, err := cm.GetContainer(ctx)
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}
	second, err := cm.GetContainer(ctx)
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}

	if first != second {
		t.Error("expected the warm container to be reused")
	}
	if builds != 1 {
		t.Errorf("builds = %d, want 1", builds)
	}
	if !cm.IsHealthy() {
		t.Error("expected manager to be healthy")
	}

	if err := cm.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if cm.IsHealthy() {
		t.Error("expected manager to be unhealthy after cleanup")
	}

	if _, err := cm.GetContainer(ctx); err != nil {
		t.Fatalf("GetContainer after cleanup failed: %v", err)
	}
	if builds != 2 {
		t.Errorf("builds = %d, want 2", builds)
	}
}

func TestConnectionManager_RetriesFailedBuild(t *testing.T) {
	cfg := sqliteConfig(t)
	fail := true
	cm := NewConnectionManager(func(ctx context.Context, c *config.Config) (*server.Container, error) {
		if fail {
			return nil, errors.New("database unavailable")
		}
		return server.NewContainer(ctx, c)
	}, func() (*config.Config, error) { return cfg, nil })
	t.Cleanup(func() { cm.Cleanup() })

	if _, err := cm.GetContainer(context.Background()); err == nil {
		t.Fatal("expected first build to fail")
	}

	fail = false
	if _, err := cm.GetContainer(context.Background()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestConnectionManager_ConfigError(t *testing.T) {
	cm := NewConnectionManager(server.NewContainer, func() (*config.Config, error) {
		return nil, errors.New("missing DB_DSN")
	})

	if _, err := cm.GetContainer(context.Background()); err == nil {
		t.Error("expected config error")
	}

	// An explicit configuration skips the loader
	cm.Initialize(sqliteConfig(t))
	t.Cleanup(func() { cm.Cleanup() })
	if _, err := cm.GetContainer(context.Background()); err != nil {
		t.Errorf("GetContainer with explicit config failed: %v", err)
	}
}
