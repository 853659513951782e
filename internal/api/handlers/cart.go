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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// CreateCart godoc
//	@Summary		Create a cart
//	@Description	Creates an empty anonymous cart. The returned id is the only handle to it.
//	@Tags			Carts
//	@Produce		json
//	@Success		201	{object}	models.Cart				"Cart created"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/carts [post]
func (h *CartHandler) CreateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cart, err := h.cartService.CreateCart(r.Context())
		if err != nil {
			logger.Error("Failed to create cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart created", slog.String("cartId", cart.ID.String()))
		response.Success(w, http.StatusCreated, cart)
	}
}

// GetCart godoc
//	@Summary		Get a cart
//	@Description	Returns the cart with its lines and derived total.
//	@Tags			Carts
//	@Produce		json
//	@Param			id	path		string					true	"Cart ID"	Format(uuid)
//	@Success		200	{object}	models.Cart				"Cart"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid cart ID"
//	@Failure		404	{object}	response.ErrorResponse	"Cart not found"
//	@Router			/carts/{id} [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := utils.ParseUUID(r, "id")
		if err != nil {
			logger.Warn("Invalid cart id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), cartID)
		if err != nil {
			logger.Error("Failed to get cart", slog.String("cartId", cartID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// DeleteCart godoc
//	@Summary	Delete a cart
//	@Tags		Carts
//	@Param		id	path	string	true	"Cart ID"	Format(uuid)
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Cart not found"
//	@Router		/carts/{id} [delete]
func (h *CartHandler) DeleteCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := utils.ParseUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.cartService.DeleteCart(r.Context(), cartID); err != nil {
			logger.Error("Failed to delete cart", slog.String("cartId", cartID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart deleted", slog.String("cartId", cartID.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListItems godoc
//	@Summary	List cart lines
//	@Tags		Carts
//	@Produce	json
//	@Param		id	path		string			true	"Cart ID"	Format(uuid)
//	@Success	200	{array}		models.CartItem	"Cart lines"
//	@Failure	404	{object}	response.ErrorResponse	"Cart not found"
//	@Router		/carts/{id}/items [get]
func (h *CartHandler) ListItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := utils.ParseUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		items, err := h.cartService.ListItems(r.Context(), cartID)
		if err != nil {
			logger.Error("Failed to list cart items", slog.String("cartId", cartID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

// GetItem godoc
//	@Summary	Get a cart line
//	@Tags		Carts
//	@Produce	json
//	@Param		id		path		string			true	"Cart ID"	Format(uuid)
//	@Param		itemId	path		int				true	"Cart item ID"
//	@Success	200		{object}	models.CartItem	"Cart line"
//	@Failure	404		{object}	response.ErrorResponse	"Cart item not found"
//	@Router		/carts/{id}/items/{itemId} [get]
func (h *CartHandler) GetItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.ParseUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		itemID, err := utils.ParseID(r, "itemId")
		if err != nil {
			response.Error(w, err)
			return
		}

		item, err := h.cartService.GetItem(r.Context(), cartID, itemID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

// AddItem godoc
//	@Summary		Add a product to a cart
//	@Description	Adds quantity to the product's line, creating it when absent. The resulting quantity may not exceed stock.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Cart ID"	Format(uuid)
//	@Param			item	body		models.AddItemRequest	true	"Product and quantity"
//	@Success		201		{object}	models.CartItem			"Resulting cart line"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or not enough stock"
//	@Failure		404		{object}	response.ErrorResponse	"Cart not found"
//	@Router			/carts/{id}/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := utils.ParseUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("cartId", cartID.String()))

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		item, err := h.cartService.AddItem(r.Context(), cartID, &req)
		if err != nil {
			logger.Warn("Failed to add item", slog.Int64("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int64("itemId", item.ID), slog.Int("quantity", item.Quantity))
		response.Success(w, http.StatusCreated, item)
	}
}

// UpdateItem godoc
//	@Summary	Change the quantity of a cart line
//	@Tags		Carts
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string							true	"Cart ID"	Format(uuid)
//	@Param		itemId		path		int								true	"Cart item ID"
//	@Param		quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success	200			{object}	models.CartItem					"Updated cart line"
//	@Failure	400			{object}	response.ErrorResponse			"Validation error or not enough stock"
//	@Failure	404			{object}	response.ErrorResponse			"Cart item not found"
//	@Router		/carts/{id}/items/{itemId} [patch]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := utils.ParseUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		itemID, err := utils.ParseID(r, "itemId")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		item, err := h.cartService.UpdateItemQuantity(r.Context(), cartID, itemID, &req)
		if err != nil {
			logger.Warn("Failed to update cart item", slog.Int64("itemId", itemID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

// RemoveItem godoc
//	@Summary	Remove a cart line
//	@Tags		Carts
//	@Param		id		path	string	true	"Cart ID"	Format(uuid)
//	@Param		itemId	path	int		true	"Cart item ID"
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Cart item not found"
//	@Router		/carts/{id}/items/{itemId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.ParseUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		itemID, err := utils.ParseID(r, "itemId")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.cartService.RemoveItem(r.Context(), cartID, itemID); err != nil {
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
