package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"serverless-crud-api/internal/config"
	"serverless-crud-api/internal/middleware"
	"serverless-crud-api/internal/services"
	"serverless-crud-api/pkg/lambda"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	UserService    services.UserService
	ProductService services.ProductService
	Initializer    SchemaInitializer
	AuthService    *middleware.AuthService
	Logger         *logrus.Logger
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	userHandler := NewUserHandler(cfg.UserService, cfg.Logger)
	productHandler := NewProductHandler(cfg.ProductService, cfg.Logger)
	databaseHandler := NewDatabaseHandler(cfg.Initializer, cfg.Logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "serverless-crud-api",
			"mode":    config.GetDeploymentMode(),
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": MsgRouteNotFound,
			"error":   true,
		})
	})

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", lambda.GinHandler(userHandler.HandleCreate))
			users.GET("", lambda.GinHandler(userHandler.HandleList))
			users.GET("/:id", lambda.GinHandler(userHandler.HandleGet))
			users.PUT("/:id", lambda.GinHandler(userHandler.HandleUpdate))
			users.PATCH("/:id", lambda.GinHandler(userHandler.HandleUpdate))
			users.DELETE("/:id", lambda.GinHandler(userHandler.HandleDelete))
		}

		products := v1.Group("/products")
		{
			products.POST("", lambda.GinHandler(productHandler.HandleCreate))
			products.GET("", lambda.GinHandler(productHandler.HandleList))
			products.GET("/category", lambda.GinHandler(productHandler.HandleListByCategory))
			products.GET("/category/:category", lambda.GinHandler(productHandler.HandleListByCategory))
			products.GET("/:id", lambda.GinHandler(productHandler.HandleGet))
			products.PUT("/:id", lambda.GinHandler(productHandler.HandleUpdate))
			products.PATCH("/:id", lambda.GinHandler(productHandler.HandleUpdate))
			products.PATCH("/:id/stock", lambda.GinHandler(productHandler.HandleUpdateStock))
			products.DELETE("/:id", lambda.GinHandler(productHandler.HandleDelete))
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.Authentication(cfg.Logger, cfg.AuthService, middleware.RoleAdmin))
		{
			admin.POST("/database/init", lambda.GinHandler(databaseHandler.HandleInitialize))
		}
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, cfg *config.Config, logger *logrus.Logger) {
	router.Use(gin.Recovery())

	// Request ID and correlation ID
	router.Use(middleware.RequestID())
	router.Use(middleware.CorrelationID())

	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// Request size limit (1MB)
	router.Use(middleware.RequestSizeLimit(1 << 20))
	router.Use(middleware.ContentTypeValidation("application/json"))

	router.Use(middleware.RateLimiter(logger, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	router.Use(middleware.Metrics())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PerformanceMonitor(logger, time.Second))
	router.Use(middleware.AuditLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
}

// SetupDevelopmentRoutes adds development-only routes
func SetupDevelopmentRoutes(router *gin.Engine, authService *middleware.AuthService) {
	if authService == nil {
		return
	}

	dev := router.Group("/dev")
	{
		// Admin token for exercising protected routes locally
		dev.POST("/token", func(c *gin.Context) {
			token, err := authService.GenerateToken("dev-admin", []string{middleware.RoleAdmin})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error(), "error": true})
				return
			}
			c.JSON(http.StatusOK, gin.H{"token": token})
		})
	}
}
