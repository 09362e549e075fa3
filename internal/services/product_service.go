package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/apperrors"
	"serverless-crud-api/internal/models"
	"serverless-crud-api/internal/repositories"
)

// productService implements the ProductService interface
type productService struct {
	productRepo repositories.ProductRepository
	validator   *validator.Validate
	logger      *logrus.Logger
}

// NewProductService creates a new product service instance
func NewProductService(productRepo repositories.ProductRepository, logger *logrus.Logger) ProductService {
	if logger == nil {
		logger = logrus.New()
	}
	return &productService{
		productRepo: productRepo,
		validator:   models.NewValidator(),
		logger:      logger,
	}
}

// CreateProduct creates a new product
func (s *productService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if req == nil {
		return nil, apperrors.Validation(MsgBodyRequired)
	}

	normalized := &CreateProductRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Category:    trimOptional(req.Category),
		Stock:       req.Stock,
	}
	if normalized.Category != nil && *normalized.Category == "" {
		normalized.Category = nil
	}

	if err := s.validator.Struct(normalized); err != nil {
		return nil, apperrors.Validation(models.ValidationMessage(err))
	}

	input := repositories.NewProduct{
		Name:        normalized.Name,
		Description: normalized.Description,
		Price:       *normalized.Price,
		Category:    normalized.Category,
	}
	if normalized.Stock != nil {
		input.Stock = *normalized.Stock
	}

	product, err := s.productRepo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	if product == nil {
		return nil, apperrors.DataAccess("create", "products", nil, errors.New("insert returned no row"))
	}

	s.logger.WithField("product_id", product.ID).Info("Product created")
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *productService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Validation(MsgProductIDRequired)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("Product", id)
	}

	return product, nil
}

// ListProducts retrieves all products, newest first
func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListProductsByCategory retrieves the products in a category. An unknown
// category yields an empty list.
func (s *productService) ListProductsByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.Validation(MsgCategoryRequired)
	}

	products, err := s.productRepo.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}

// UpdateProduct applies a partial update to an existing product
func (s *productService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Validation(MsgProductIDRequired)
	}
	if req == nil || req.IsEmpty() {
		return nil, apperrors.Validation(MsgUpdateFieldNeeded)
	}

	normalized := &UpdateProductRequest{
		Name:        trimOptional(req.Name),
		Description: trimOptional(req.Description),
		Price:       req.Price,
		Category:    trimOptional(req.Category),
		Stock:       req.Stock,
	}

	if err := s.validator.Struct(normalized); err != nil {
		return nil, apperrors.Validation(models.ValidationMessage(err))
	}

	product, err := s.productRepo.Update(ctx, id, repositories.ProductUpdate{
		Name:        normalized.Name,
		Description: normalized.Description,
		Price:       normalized.Price,
		Category:    normalized.Category,
		Stock:       normalized.Stock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("Product", id)
	}

	s.logger.WithField("product_id", id).Info("Product updated")
	return product, nil
}

// UpdateStock sets the stock level of a product
func (s *productService) UpdateStock(ctx context.Context, id string, req *UpdateStockRequest) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Validation(MsgProductIDRequired)
	}
	if req == nil {
		req = &UpdateStockRequest{}
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Validation(models.ValidationMessage(err))
	}

	product, err := s.productRepo.UpdateStock(ctx, id, *req.Stock)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("Product", id)
	}

	s.logger.WithFields(logrus.Fields{"product_id": id, "stock": *req.Stock}).Info("Stock updated")
	return product, nil
}

// DeleteProduct deletes a product by ID
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.Validation(MsgProductIDRequired)
	}

	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("Product", id)
	}

	s.logger.WithField("product_id", id).Info("Product deleted")
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
