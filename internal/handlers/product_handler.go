package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/response"
	"serverless-crud-api/internal/services"
	"serverless-crud-api/pkg/lambda"
)

const (
	msgProductCreated  = "Product created successfully"
	msgProductUpdated  = "Product updated successfully"
	msgProductDeleted  = "Product deleted successfully"
	msgProductNotFound = "Product not found"
	msgStockUpdated    = "Stock updated successfully"
)

// ProductHandler handles product-related requests
type ProductHandler struct {
	productService services.ProductService
	logger         *logrus.Logger
	router         *Router
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService services.ProductService, logger *logrus.Logger) *ProductHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	h := &ProductHandler{
		productService: productService,
		logger:         logger,
	}

	h.router = NewRouter()
	h.router.Handle(http.MethodPost, "/products", h.HandleCreate)
	h.router.Handle(http.MethodGet, "/products", h.HandleList)
	h.router.Handle(http.MethodGet, "/products/category/{category}", h.HandleListByCategory)
	h.router.Handle(http.MethodGet, "/products/category", h.HandleListByCategory)
	h.router.Handle(http.MethodPatch, "/products/{id}/stock", h.HandleUpdateStock)
	h.router.Handle(http.MethodGet, "/products/{id}", h.HandleGet)
	h.router.Handle(http.MethodPut, "/products/{id}", h.HandleUpdate)
	h.router.Handle(http.MethodPatch, "/products/{id}", h.HandleUpdate)
	h.router.Handle(http.MethodDelete, "/products/{id}", h.HandleDelete)
	return h
}

// Dispatch routes a proxy request to the matching product operation
func (h *ProductHandler) Dispatch(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return h.router.Dispatch(ctx, req)
}

// @Summary Create a new product
// @Description Create a new product in the catalog
// @Tags products
// @Accept json
// @Produce json
// @Param product body services.CreateProductRequest true "Product data"
// @Success 201 {object} response.Envelope{data=models.Product}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /products [post]
func (h *ProductHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var body services.CreateProductRequest
	if resp := decodeBody(req, &body); resp != nil {
		return resp, nil
	}

	product, err := h.productService.CreateProduct(ctx, &body)
	if err != nil {
		return respondError(h.logger, "create_product", err, msgProductNotFound), nil
	}
	return response.Created(product, msgProductCreated), nil
}

// @Summary List products
// @Description List all products, newest first
// @Tags products
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.Product}
// @Failure 500 {object} response.Envelope
// @Router /products [get]
func (h *ProductHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	products, err := h.productService.ListProducts(ctx)
	if err != nil {
		return respondError(h.logger, "list_products", err, msgProductNotFound), nil
	}
	return response.Success(products, ""), nil
}

// @Summary List products by category
// @Tags products
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} response.Envelope{data=[]models.Product}
// @Failure 400 {object} response.Envelope
// @Router /products/category/{category} [get]
func (h *ProductHandler) HandleListByCategory(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	category := req.PathParam("category")
	if category == "" && req.QueryParams != nil {
		category = req.QueryParams["category"]
	}

	products, err := h.productService.ListProductsByCategory(ctx, category)
	if err != nil {
		return respondError(h.logger, "list_products_by_category", err, msgProductNotFound), nil
	}
	return response.Success(products, ""), nil
}

// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Envelope{data=models.Product}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [get]
func (h *ProductHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	product, err := h.productService.GetProduct(ctx, req.PathParam("id"))
	if err != nil {
		return respondError(h.logger, "get_product", err, msgProductNotFound), nil
	}
	return response.Success(product, ""), nil
}

// @Summary Update a product
// @Description Partially update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body services.UpdateProductRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Product}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [put]
func (h *ProductHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id := req.PathParam("id")
	if id == "" {
		return response.BadRequest(services.MsgProductIDRequired), nil
	}

	var body services.UpdateProductRequest
	if resp := decodeBody(req, &body); resp != nil {
		return resp, nil
	}

	product, err := h.productService.UpdateProduct(ctx, id, &body)
	if err != nil {
		return respondError(h.logger, "update_product", err, msgProductNotFound), nil
	}
	return response.Success(product, msgProductUpdated), nil
}

// @Summary Set product stock
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param stock body services.UpdateStockRequest true "New stock level"
// @Success 200 {object} response.Envelope{data=models.Product}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id}/stock [patch]
func (h *ProductHandler) HandleUpdateStock(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id := req.PathParam("id")
	if id == "" {
		return response.BadRequest(services.MsgProductIDRequired), nil
	}

	// A missing body is reported by the service as a missing stock value
	var body *services.UpdateStockRequest
	if len(strings.TrimSpace(string(req.Body))) > 0 {
		body = &services.UpdateStockRequest{}
		if resp := decodeBody(req, body); resp != nil {
			return resp, nil
		}
	}

	product, err := h.productService.UpdateStock(ctx, id, body)
	if err != nil {
		return respondError(h.logger, "update_stock", err, msgProductNotFound), nil
	}
	return response.Success(product, msgStockUpdated), nil
}

// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [delete]
func (h *ProductHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id := req.PathParam("id")
	if err := h.productService.DeleteProduct(ctx, id); err != nil {
		return respondError(h.logger, "delete_product", err, msgProductNotFound), nil
	}
	return response.Success(map[string]string{"id": id}, msgProductDeleted), nil
}
