package relational

import (
	"fmt"

	"serverless-crud-api/internal/repositories"
)

// NewRepositoryContainer builds every repository over the same data client
func NewRepositoryContainer(deps Deps) (*repositories.RepositoryContainer, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("data client cannot be nil")
	}

	return &repositories.RepositoryContainer{
		UserRepo:    NewUserRepository(deps),
		ProductRepo: NewProductRepository(deps),
	}, nil
}
