package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService   service.ProductService
	inventoryService service.InventoryService
	validator        *validator.Validate
}

func NewProductHandler(productService service.ProductService, inventoryService service.InventoryService) *ProductHandler {
	return &ProductHandler{productService: productService, inventoryService: inventoryService, validator: validator.New()}
}

// CreateProduct godoc
//	@Summary		Create a product
//	@Description	The slug is derived from the title when omitted.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product details"
//	@Success		201		{object}	models.Product				"Product created"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		403		{object}	response.ErrorResponse		"Admin privileges are required"
//	@Failure		409		{object}	response.ErrorResponse		"Slug already in use"
//	@Security		BearerAuth
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid product input")
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.Int64("productId", product.ID), slog.String("slug", product.Slug))
		response.Success(w, http.StatusCreated, product)
	}
}

// GetProduct godoc
//	@Summary	Get a product by id or slug
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string					true	"Product ID or slug"
//	@Success	200	{object}	models.Product			"Product"
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identifier := r.PathValue("id")

		product, err := h.productService.GetProduct(r.Context(), identifier)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to get product", slog.String("product", identifier), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// ListProducts godoc
//	@Summary	List products
//	@Tags		Products
//	@Produce	json
//	@Param		page		query		int							false	"Page number"	default(1)
//	@Param		pageSize	query		int							false	"Page size"		default(10)
//	@Success	200			{object}	models.PaginatedResponse	"Products"
//	@Router		/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, pageSize := utils.Pagination(r)

		products, total, err := h.productService.ListProducts(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// UpdateProduct godoc
//	@Summary	Update a product
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Product ID or slug"
//	@Param		product	body		models.UpdateProductRequest	true	"Fields to change"
//	@Success	200		{object}	models.Product				"Updated product"
//	@Failure	400		{object}	response.ErrorResponse		"Validation error"
//	@Failure	404		{object}	response.ErrorResponse		"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{id} [patch]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		identifier := r.PathValue("id")

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), identifier, &req)
		if err != nil {
			logger.Warn("Failed to update product", slog.String("product", identifier), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//	@Summary		Delete a product
//	@Description	Refused while any order references the product. The product's reactions are dropped with it.
//	@Tags			Products
//	@Param			id	path	string	true	"Product ID or slug"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		409	{object}	response.ErrorResponse	"Product is referenced by orders"
//	@Security		BearerAuth
//	@Router			/products/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		identifier := r.PathValue("id")

		if err := h.productService.DeleteProduct(r.Context(), identifier); err != nil {
			logger.Warn("Failed to delete product", slog.String("product", identifier), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.String("product", identifier))
		w.WriteHeader(http.StatusNoContent)
	}
}

// SetInventory godoc
//	@Summary	Set a product's stock level
//	@Tags		Inventory
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string						true	"Product ID or slug"
//	@Param		inventory	body		models.SetInventoryRequest	true	"Absolute stock level"
//	@Success	200			{object}	models.Product				"Updated product"
//	@Failure	400			{object}	response.ErrorResponse		"Validation error"
//	@Failure	404			{object}	response.ErrorResponse		"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{id}/inventory [put]
func (h *ProductHandler) SetInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SetInventoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.GetProduct(r.Context(), r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		productID := product.ID

		product, err = h.inventoryService.SetInventory(r.Context(), productID, *req.Inventory)
		if err != nil {
			logger.Error("Failed to set inventory", slog.Int64("productId", productID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Inventory set", slog.Int64("productId", productID), slog.Int("inventory", product.Inventory))
		response.Success(w, http.StatusOK, product)
	}
}

// Restock godoc
//	@Summary	Add stock to a product
//	@Tags		Inventory
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Product ID or slug"
//	@Param		restock	body		models.RestockRequest	true	"Quantity received"
//	@Success	200		{object}	models.Product			"Updated product"
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	404		{object}	response.ErrorResponse	"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{id}/inventory/restock [post]
func (h *ProductHandler) Restock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RestockRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.GetProduct(r.Context(), r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		productID := product.ID

		product, err = h.inventoryService.Restock(r.Context(), productID, req.Quantity)
		if err != nil {
			logger.Error("Failed to restock product", slog.Int64("productId", productID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product restocked", slog.Int64("productId", productID), slog.Int("inventory", product.Inventory))
		response.Success(w, http.StatusOK, product)
	}
}
