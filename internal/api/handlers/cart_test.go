package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateCart(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		cart := &models.Cart{ID: uuid.New(), Items: []models.CartItem{}, TotalPrice: decimal.Zero}
		mockCartService.On("CreateCart", mock.Anything).Return(cart, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/carts", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.CreateCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		resp := decodeResponse(t, rr)
		assert.True(t, resp.Success)

		var got models.Cart
		dataAs(t, resp, &got)
		assert.Equal(t, cart.ID, got.ID)
		mockCartService.AssertExpectations(t)
	})
}

func TestGetCart(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)
	cartID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		cart := &models.Cart{
			ID:         cartID,
			Items:      []models.CartItem{{ID: 1, Quantity: 2, TotalPrice: decimal.RequireFromString("21.00")}},
			TotalPrice: decimal.RequireFromString("21.00"),
		}
		mockCartService.On("GetCart", mock.Anything, cartID).Return(cart, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/carts/"+cartID.String(), nil, map[string]string{"id": cartID.String()})
		rr := httptest.NewRecorder()

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.Cart
		dataAs(t, decodeResponse(t, rr), &got)
		assert.Equal(t, "21", got.TotalPrice.String())
		assert.Len(t, got.Items, 1)
	})

	t.Run("Invalid UUID", func(t *testing.T) {
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/carts/abc", nil, map[string]string{"id": "abc"})
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeBadRequest, decodeResponse(t, rr).Error.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		missing := uuid.New()
		mockCartService.On("GetCart", mock.Anything, missing).Return(nil, appErrors.NotFoundError("Cart not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/carts/"+missing.String(), nil, map[string]string{"id": missing.String()})
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockCartService.AssertExpectations(t)
	})
}

func TestDeleteCart(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)
	cartID := uuid.New()

	mockCartService.On("DeleteCart", mock.Anything, cartID).Return(nil).Once()

	req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/carts/"+cartID.String(), nil, map[string]string{"id": cartID.String()})
	rr := httptest.NewRecorder()

	cartHandler.DeleteCart().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.Bytes())
	mockCartService.AssertExpectations(t)
}

func TestListCartItems(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)
	cartID := uuid.New()

	items := []models.CartItem{
		{ID: 1, Product: models.SimpleProduct{ID: 11}, Quantity: 1},
		{ID: 2, Product: models.SimpleProduct{ID: 12}, Quantity: 3},
	}
	mockCartService.On("ListItems", mock.Anything, cartID).Return(items, nil).Once()

	req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/carts/"+cartID.String()+"/items", nil, map[string]string{"id": cartID.String()})
	rr := httptest.NewRecorder()

	cartHandler.ListItems().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got []models.CartItem
	dataAs(t, decodeResponse(t, rr), &got)
	assert.Len(t, got, 2)
}

func TestGetCartItem(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)
	cartID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockCartService.On("GetItem", mock.Anything, cartID, int64(4)).Return(&models.CartItem{ID: 4, Quantity: 1}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/", nil, map[string]string{"id": cartID.String(), "itemId": "4"})
		rr := httptest.NewRecorder()

		cartHandler.GetItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Invalid item id", func(t *testing.T) {
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/", nil, map[string]string{"id": cartID.String(), "itemId": "-3"})
		rr := httptest.NewRecorder()

		cartHandler.GetItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCartService.AssertNumberOfCalls(t, "GetItem", 1)
	})
}

func TestAddCartItem(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)
	cartID := uuid.New()
	pathParams := map[string]string{"id": cartID.String()}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		addReq := models.AddItemRequest{ProductID: 11, Quantity: 2}
		item := &models.CartItem{ID: 7, Product: models.SimpleProduct{ID: 11}, Quantity: 2, TotalPrice: decimal.RequireFromString("20.00")}

		mockCartService.On("AddItem", mock.Anything, cartID, &addReq).Return(item, nil).Once()

		body, _ := json.Marshal(addReq)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/carts/"+cartID.String()+"/items", bytes.NewReader(body), pathParams)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.AddItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var got models.CartItem
		dataAs(t, decodeResponse(t, rr), &got)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, 2, got.Quantity)
	})

	t.Run("Quantity below one", func(t *testing.T) {
		body, _ := json.Marshal(models.AddItemRequest{ProductID: 11, Quantity: 0})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/", bytes.NewReader(body), pathParams)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeResponse(t, rr).Error.Code)
	})

	t.Run("Not enough stock", func(t *testing.T) {
		addReq := models.AddItemRequest{ProductID: 11, Quantity: 50}
		mockCartService.On("AddItem", mock.Anything, cartID, &addReq).
			Return(nil, appErrors.ValidationError("The quantity exceeds the available stock.")).Once()

		body, _ := json.Marshal(addReq)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/", bytes.NewReader(body), pathParams)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeResponse(t, rr).Error.Code)
		mockCartService.AssertExpectations(t)
	})
}

func TestUpdateCartItem(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)
	cartID := uuid.New()

	updateReq := models.UpdateQuantityRequest{Quantity: 5}
	mockCartService.On("UpdateItemQuantity", mock.Anything, cartID, int64(3), &updateReq).
		Return(&models.CartItem{ID: 3, Quantity: 5}, nil).Once()

	body, _ := json.Marshal(updateReq)
	req := testutils.CreateTestRequestWithoutContext(http.MethodPatch, "/", bytes.NewReader(body), map[string]string{"id": cartID.String(), "itemId": "3"})
	rr := httptest.NewRecorder()

	cartHandler.UpdateItem().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockCartService.AssertExpectations(t)
}

func TestRemoveCartItem(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)
	cartID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockCartService.On("RemoveItem", mock.Anything, cartID, int64(3)).Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/", nil, map[string]string{"id": cartID.String(), "itemId": "3"})
		rr := httptest.NewRecorder()

		cartHandler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Missing item", func(t *testing.T) {
		mockCartService.On("RemoveItem", mock.Anything, cartID, int64(99)).Return(appErrors.NotFoundError("Cart item not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/", nil, map[string]string{"id": cartID.String(), "itemId": "99"})
		rr := httptest.NewRecorder()

		cartHandler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockCartService.AssertExpectations(t)
	})
}
