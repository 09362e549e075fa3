package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/config"
	"serverless-crud-api/internal/database"
	"serverless-crud-api/internal/dataclient"
	"serverless-crud-api/internal/logging"
	"serverless-crud-api/internal/repositories"
	"serverless-crud-api/internal/repositories/relational"
	"serverless-crud-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *logrus.Logger
	UserService    services.UserService
	ProductService services.ProductService
	Initializer    *database.Initializer

	// Internal dependencies
	db       dataclient.Database
	repos    *repositories.RepositoryContainer
	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container with a logger
// built from cfg
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithLogger(ctx, cfg, logging.New(cfg.Log))
}

// NewContainerWithLogger creates a container that logs through logger
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger.WithFields(cfg.Database.LogFields()).Info("Connecting to database")

	db, err := dataclient.Open(ctx, cfg.Database.ToOptions(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	initializer := database.NewInitializer(db, logger)
	if cfg.AutoInitSchema {
		if err := initializer.Initialize(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	repos, err := relational.NewRepositoryContainer(relational.Deps{
		Client: db,
		Logger: logger,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create repositories: %w", err)
	}

	serviceContainer, err := services.NewServiceContainer(repos, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:         cfg,
		Logger:         logger,
		UserService:    serviceContainer.UserService,
		ProductService: serviceContainer.ProductService,
		Initializer:    initializer,
		db:             db,
		repos:          repos,
		services:       serviceContainer,
	}, nil
}

// Ping checks that the database is still reachable
func (c *Container) Ping(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("container is closed")
	}
	return c.db.Ping(ctx)
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		c.db = nil
	}
	return nil
}
