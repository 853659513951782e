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

type CollectionHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewCollectionHandler(productService service.ProductService) *CollectionHandler {
	return &CollectionHandler{productService: productService, validator: validator.New()}
}

// CreateCollection godoc
//	@Summary	Create a collection
//	@Tags		Collections
//	@Accept		json
//	@Produce	json
//	@Param		collection	body		models.CreateCollectionRequest	true	"Collection title"
//	@Success	201			{object}	models.Collection				"Collection created"
//	@Failure	400			{object}	response.ErrorResponse			"Validation error"
//	@Security	BearerAuth
//	@Router		/collections [post]
func (h *CollectionHandler) CreateCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCollectionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		collection, err := h.productService.CreateCollection(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create collection", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Collection created", slog.Int64("collectionId", collection.ID))
		response.Success(w, http.StatusCreated, collection)
	}
}

// GetCollection godoc
//	@Summary	Get a collection
//	@Tags		Collections
//	@Produce	json
//	@Param		id	path		int						true	"Collection ID"
//	@Success	200	{object}	models.Collection		"Collection"
//	@Failure	404	{object}	response.ErrorResponse	"Collection not found"
//	@Router		/collections/{id} [get]
func (h *CollectionHandler) GetCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		collection, err := h.productService.GetCollection(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, collection)
	}
}

// ListCollections godoc
//	@Summary	List collections with their product counts
//	@Tags		Collections
//	@Produce	json
//	@Success	200	{array}	models.Collection	"Collections"
//	@Router		/collections [get]
func (h *CollectionHandler) ListCollections() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		collections, err := h.productService.ListCollections(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list collections", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, collections)
	}
}

// DeleteCollection godoc
//	@Summary	Delete an empty collection
//	@Tags		Collections
//	@Param		id	path	int	true	"Collection ID"
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Collection not found"
//	@Failure	409	{object}	response.ErrorResponse	"Collection still has products"
//	@Security	BearerAuth
//	@Router		/collections/{id} [delete]
func (h *CollectionHandler) DeleteCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.productService.DeleteCollection(r.Context(), id); err != nil {
			logger.Warn("Failed to delete collection", slog.Int64("collectionId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Collection deleted", slog.Int64("collectionId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
