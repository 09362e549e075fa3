package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"serverless-crud-api/internal/dataclient"
)

// Initializer creates the application tables through the data client
type Initializer struct {
	client dataclient.Client
	logger *logrus.Logger
}

// NewInitializer creates a new schema initializer
func NewInitializer(client dataclient.Client, logger *logrus.Logger) *Initializer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Initializer{client: client, logger: logger}
}

// Initialize creates the users and products tables concurrently. Both
// creations are idempotent. If either fails the whole call fails, and a
// table already created by the other is left in place.
func (i *Initializer) Initialize(ctx context.Context) error {
	start := time.Now()
	i.logger.Info("Initializing database tables...")

	g, gctx := errgroup.WithContext(ctx)
	for _, table := range []string{UsersTable, ProductsTable} {
		g.Go(func() error {
			return i.createTable(gctx, table)
		})
	}

	if err := g.Wait(); err != nil {
		i.logger.WithError(err).Error("Database initialization failed")
		return err
	}

	i.logger.WithField("duration", time.Since(start)).Info("Database tables initialized successfully")
	return nil
}

func (i *Initializer) createTable(ctx context.Context, table string) error {
	statements, err := TableStatements(table)
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if _, err := i.client.ExecuteStatement(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table, err)
		}
	}

	i.logger.WithField("table", table).Debug("Table ready")
	return nil
}
