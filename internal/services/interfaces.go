package services

import (
	"context"

	"github.com/shopspring/decimal"

	"serverless-crud-api/internal/models"
)

// UserService defines the interface for user business logic operations
type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ProductService defines the interface for product business logic operations
type ProductService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error)
	UpdateStock(ctx context.Context, id string, req *UpdateStockRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CreateUserRequest represents a request to create a new user
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,emailfmt,max=255"`
}

// UpdateUserRequest represents a request to update an existing user
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,notblank,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,emailfmt,max=255"`
}

// IsEmpty reports whether the request carries no field to change
func (r *UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required,dgt0,dmax2,dlte=99999999.99"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Stock       *int64           `json:"stock,omitempty" validate:"omitempty,min=0,max=2147483647"`
}

// UpdateProductRequest represents a request to update an existing product
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,notblank,max=255"`
	Description *string          `json:"description,omitempty" validate:"omitempty,notblank"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,dgt0,dmax2,dlte=99999999.99"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,notblank,max=100"`
	Stock       *int64           `json:"stock,omitempty" validate:"omitempty,min=0,max=2147483647"`
}

// IsEmpty reports whether the request carries no field to change
func (r *UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil && r.Category == nil && r.Stock == nil
}

// UpdateStockRequest represents a request to set a product's stock level
type UpdateStockRequest struct {
	Stock *int64 `json:"stock" validate:"required,min=0,max=2147483647"`
}
