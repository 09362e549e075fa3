package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"serverless-crud-api/internal/models"
)

// UserRepository defines persistence operations for users. Lookups that
// match nothing return (nil, nil).
type UserRepository interface {
	// Create inserts a new user with a generated ID and timestamps
	Create(ctx context.Context, name, email string) (*models.User, error)

	// FindByID retrieves a user by its ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail retrieves a user by its normalized email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindAll retrieves every user, newest first
	FindAll(ctx context.Context) ([]*models.User, error)

	// Update applies the supplied fields and refreshes updated_at
	Update(ctx context.Context, id string, fields UserUpdate) (*models.User, error)

	// Delete removes a user, reporting whether a row was deleted
	Delete(ctx context.Context, id string) (bool, error)
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// Create inserts a new product with a generated ID and timestamps
	Create(ctx context.Context, product NewProduct) (*models.Product, error)

	// FindByID retrieves a product by its ID
	FindByID(ctx context.Context, id string) (*models.Product, error)

	// FindAll retrieves every product, newest first
	FindAll(ctx context.Context) ([]*models.Product, error)

	// FindByCategory retrieves products in a category, newest first
	FindByCategory(ctx context.Context, category string) ([]*models.Product, error)

	// Update applies the supplied fields and refreshes updated_at
	Update(ctx context.Context, id string, fields ProductUpdate) (*models.Product, error)

	// UpdateStock sets the stock level
	UpdateStock(ctx context.Context, id string, stock int64) (*models.Product, error)

	// Delete removes a product, reporting whether a row was deleted
	Delete(ctx context.Context, id string) (bool, error)
}

// UserUpdate holds the user fields to change. Nil fields are left as is.
type UserUpdate struct {
	Name  *string
	Email *string
}

// IsEmpty reports whether no field is set
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil
}

// NewProduct holds the values for a product insert
type NewProduct struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    *string
	Stock       int64
}

// ProductUpdate holds the product fields to change. Nil fields are left as is.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Stock       *int64
}

// IsEmpty reports whether no field is set
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Category == nil && u.Stock == nil
}
