package relational

import (
	"context"
	"fmt"
	"strings"

	"serverless-crud-api/internal/dataclient"
	"serverless-crud-api/internal/models"
	"serverless-crud-api/internal/repositories"
)

const productColumns = "id, name, description, price, category, stock, created_at, updated_at"

// ProductRepository implements repositories.ProductRepository over a data client
type ProductRepository struct {
	*BaseRepository[models.Product]
}

// NewProductRepository creates a new product repository
func NewProductRepository(deps Deps) repositories.ProductRepository {
	return &ProductRepository{
		BaseRepository: NewBaseRepository(deps, "products", mapProduct),
	}
}

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, product repositories.NewProduct) (*models.Product, error) {
	id := r.ids.Generate()
	now := r.now()

	query := `
		INSERT INTO products (id, name, description, price, category, stock, created_at, updated_at)
		VALUES (:id, :name, :description, :price, :category, :stock, :createdAt, :updatedAt)
		RETURNING ` + productColumns

	return r.execReturning(ctx, "create", id, query,
		dataclient.String("id", id),
		dataclient.String("name", product.Name),
		dataclient.String("description", product.Description),
		dataclient.Decimal("price", product.Price),
		dataclient.NullableString("category", product.Category),
		dataclient.Long("stock", product.Stock),
		dataclient.Timestamp("createdAt", now),
		dataclient.Timestamp("updatedAt", now),
	)
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = :id`
	return r.queryOne(ctx, "find_by_id", id, query, dataclient.String("id", id))
}

// FindAll retrieves all products, newest first
func (r *ProductRepository) FindAll(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, "find_all", query)
}

// FindByCategory retrieves the products in a category, newest first
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = :category ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, "find_by_category", query, dataclient.String("category", category))
}

// Update changes only the supplied fields. An empty update returns the
// current record untouched.
func (r *ProductRepository) Update(ctx context.Context, id string, fields repositories.ProductUpdate) (*models.Product, error) {
	if fields.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	var sets []string
	var params []dataclient.Param

	if fields.Name != nil {
		sets = append(sets, "name = :name")
		params = append(params, dataclient.String("name", *fields.Name))
	}
	if fields.Description != nil {
		sets = append(sets, "description = :description")
		params = append(params, dataclient.String("description", *fields.Description))
	}
	if fields.Price != nil {
		sets = append(sets, "price = :price")
		params = append(params, dataclient.Decimal("price", *fields.Price))
	}
	if fields.Category != nil {
		sets = append(sets, "category = :category")
		params = append(params, dataclient.String("category", *fields.Category))
	}
	if fields.Stock != nil {
		sets = append(sets, "stock = :stock")
		params = append(params, dataclient.Long("stock", *fields.Stock))
	}

	sets = append(sets, "updated_at = :updatedAt")
	params = append(params,
		dataclient.Timestamp("updatedAt", r.now()),
		dataclient.String("id", id),
	)

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = :id RETURNING %s", strings.Join(sets, ", "), productColumns)
	return r.execReturning(ctx, "update", id, query, params...)
}

// UpdateStock sets the stock level of a product
func (r *ProductRepository) UpdateStock(ctx context.Context, id string, stock int64) (*models.Product, error) {
	query := `UPDATE products SET stock = :stock, updated_at = :updatedAt WHERE id = :id RETURNING ` + productColumns

	return r.execReturning(ctx, "update_stock", id, query,
		dataclient.Long("stock", stock),
		dataclient.Timestamp("updatedAt", r.now()),
		dataclient.String("id", id),
	)
}

// Delete removes a product by ID
func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, id)
}

func mapProduct(record dataclient.Record) (*models.Product, error) {
	var (
		product models.Product
		err     error
	)

	if product.ID, err = stringField(record, "id"); err != nil {
		return nil, err
	}
	if product.Name, err = stringField(record, "name"); err != nil {
		return nil, err
	}
	description, err := optionalStringField(record, "description")
	if err != nil {
		return nil, err
	}
	if description != nil {
		product.Description = *description
	}
	if product.Price, err = decimalField(record, "price"); err != nil {
		return nil, err
	}
	if product.Category, err = optionalStringField(record, "category"); err != nil {
		return nil, err
	}
	if product.Stock, err = int64Field(record, "stock"); err != nil {
		return nil, err
	}
	if product.CreatedAt, err = timeField(record, "created_at"); err != nil {
		return nil, err
	}
	if product.UpdatedAt, err = timeField(record, "updated_at"); err != nil {
		return nil, err
	}

	return &product, nil
}
