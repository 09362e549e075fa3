package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/response"
	"serverless-crud-api/pkg/lambda"
)

const (
	msgTablesInitialized = "Database tables initialized successfully"
	msgInitCompleted     = "Database initialization completed"
)

// SchemaInitializer creates the application tables
type SchemaInitializer interface {
	Initialize(ctx context.Context) error
}

// DatabaseHandler exposes schema administration
type DatabaseHandler struct {
	initializer SchemaInitializer
	logger      *logrus.Logger
}

// NewDatabaseHandler creates a new database handler
func NewDatabaseHandler(initializer SchemaInitializer, logger *logrus.Logger) *DatabaseHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &DatabaseHandler{
		initializer: initializer,
		logger:      logger,
	}
}

// @Summary Initialize database schema
// @Description Create the users and products tables if they do not exist
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/database/init [post]
func (h *DatabaseHandler) HandleInitialize(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	start := time.Now()

	if err := h.initializer.Initialize(ctx); err != nil {
		h.logger.WithError(err).Error("Database initialization failed")
		return response.Error(err.Error(), http.StatusInternalServerError), nil
	}

	h.logger.WithField("duration", time.Since(start)).Info("Database initialization completed")
	return response.Success(map[string]string{"message": msgTablesInitialized}, msgInitCompleted), nil
}
