package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	UserService    UserService
	ProductService ProductService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repos *repositories.RepositoryContainer, logger *logrus.Logger) (*ServiceContainer, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository container cannot be nil")
	}

	return &ServiceContainer{
		UserService:    NewUserService(repos.UserRepo, logger),
		ProductService: NewProductService(repos.ProductRepo, logger),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.UserService == nil {
		return fmt.Errorf("user service is nil")
	}
	if sc.ProductService == nil {
		return fmt.Errorf("product service is nil")
	}
	return nil
}
