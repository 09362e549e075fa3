package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/config"
	"serverless-crud-api/internal/handlers"
	"serverless-crud-api/internal/logging"
	"serverless-crud-api/internal/middleware"
	"serverless-crud-api/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := server.NewContainerWithLogger(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize container")
	}
	defer container.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authService := middleware.NewAuthService(middleware.AuthConfig{
		JWTSecret: cfg.JWT.Secret,
		Issuer:    cfg.JWT.Issuer,
	})
	if authService == nil {
		logger.Warn("JWT_SECRET not set, admin routes are unprotected")
	}

	router := gin.New()
	handlers.SetupMiddleware(router, cfg, logger)
	handlers.SetupRoutes(router, &handlers.RouterConfig{
		UserService:    container.UserService,
		ProductService: container.ProductService,
		Initializer:    container.Initializer,
		AuthService:    authService,
		Logger:         logger,
	})
	if !cfg.IsProduction() {
		handlers.SetupDevelopmentRoutes(router, authService)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
	}).Info("Server started")

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
