package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartService() (service.CartService, *mocks.Repos) {
	repos := mocks.NewRepos()

	return service.NewCartService(repos.Store), repos
}

func TestCreateCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repos := newCartService()

		repos.Carts.On("CreateCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
			return c.ID != uuid.Nil
		})).Return(nil).Once()

		cart, err := svc.CreateCart(ctx)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, cart.ID)
		assert.Empty(t, cart.Items)
		assert.True(t, cart.TotalPrice.IsZero())
	})

	t.Run("Failure - Database error", func(t *testing.T) {
		svc, repos := newCartService()

		repos.Carts.On("CreateCart", ctx, mock.Anything).Return(errors.New("connection refused")).Once()

		cart, err := svc.CreateCart(ctx)

		assert.Nil(t, cart)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))
	})
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()
	svc, repos := newCartService()
	missing := uuid.New()

	repos.Carts.On("GetCart", ctx, testCartID).Return(&models.Cart{ID: testCartID, TotalPrice: price("45.00")}, nil).Once()
	repos.Carts.On("GetCart", ctx, missing).Return(nil, repository.ErrNotFound).Once()

	cart, err := svc.GetCart(ctx, testCartID)
	require.NoError(t, err)
	assert.Equal(t, testCartID, cart.ID)

	_, err = svc.GetCart(ctx, missing)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("New line", func(t *testing.T) {
		// Arrange
		svc, repos := newCartService()
		req := &models.AddItemRequest{ProductID: 11, Quantity: 2}

		repos.Store.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("LockCart", ctx, testCartID).Return(&models.Cart{ID: testCartID}, nil).Once()
		repos.Products.On("GetProductByID", ctx, int64(11)).Return(testProduct(11, 5, "15.00"), nil).Once()
		repos.Carts.On("GetItemByProduct", ctx, testCartID, int64(11)).Return(nil, repository.ErrNotFound).Once()
		repos.Carts.On("SaveItem", ctx, mock.MatchedBy(func(i *models.CartItem) bool {
			return i.Quantity == 2 && i.TotalPrice.Equal(price("30.00"))
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.CartItem).ID = 1
		}).Return(nil).Once()
		repos.Carts.On("ListItems", ctx, testCartID).Return([]models.CartItem{cartLine(1, 11, 2, "15.00")}, nil).Once()
		repos.Carts.On("UpdateTotal", ctx, testCartID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(price("30.00"))
		})).Return(nil).Once()

		// Act
		item, err := svc.AddItem(ctx, testCartID, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1), item.ID)
		assert.Equal(t, "Chef knife", item.Product.Title)
		repos.AssertExpectations(t)
	})

	t.Run("Merges into existing line", func(t *testing.T) {
		svc, repos := newCartService()
		existing := cartLine(1, 11, 3, "15.00")

		repos.Store.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("LockCart", ctx, testCartID).Return(&models.Cart{ID: testCartID}, nil).Once()
		repos.Products.On("GetProductByID", ctx, int64(11)).Return(testProduct(11, 5, "15.00"), nil).Once()
		repos.Carts.On("GetItemByProduct", ctx, testCartID, int64(11)).Return(&existing, nil).Once()
		repos.Carts.On("SaveItem", ctx, mock.MatchedBy(func(i *models.CartItem) bool {
			return i.Quantity == 5 && i.TotalPrice.Equal(price("75.00"))
		})).Return(nil).Once()
		repos.Carts.On("ListItems", ctx, testCartID).Return([]models.CartItem{cartLine(1, 11, 5, "15.00")}, nil).Once()
		repos.Carts.On("UpdateTotal", ctx, testCartID, mock.Anything).Return(nil).Once()

		item, err := svc.AddItem(ctx, testCartID, &models.AddItemRequest{ProductID: 11, Quantity: 2})

		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("Failure - Cumulative quantity above stock", func(t *testing.T) {
		svc, repos := newCartService()
		existing := cartLine(1, 11, 4, "15.00")

		repos.Store.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("LockCart", ctx, testCartID).Return(&models.Cart{ID: testCartID}, nil).Once()
		repos.Products.On("GetProductByID", ctx, int64(11)).Return(testProduct(11, 5, "15.00"), nil).Once()
		repos.Carts.On("GetItemByProduct", ctx, testCartID, int64(11)).Return(&existing, nil).Once()

		_, err := svc.AddItem(ctx, testCartID, &models.AddItemRequest{ProductID: 11, Quantity: 2})

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Contains(t, appErr.Message, "You cannot add more to your cart than is available in stock.")
		assert.Equal(t, "requested 6, available 5", appErr.Detail)
		repos.Carts.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown product", func(t *testing.T) {
		svc, repos := newCartService()

		repos.Store.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("LockCart", ctx, testCartID).Return(&models.Cart{ID: testCartID}, nil).Once()
		repos.Products.On("GetProductByID", ctx, int64(99)).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.AddItem(ctx, testCartID, &models.AddItemRequest{ProductID: 99, Quantity: 1})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
		assert.Contains(t, err.Error(), "Invalid product id.")
	})

	t.Run("Failure - Unknown cart", func(t *testing.T) {
		svc, repos := newCartService()

		repos.Store.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("LockCart", ctx, testCartID).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.AddItem(ctx, testCartID, &models.AddItemRequest{ProductID: 11, Quantity: 1})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
		repos.Products.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Non-positive quantity", func(t *testing.T) {
		svc, repos := newCartService()

		_, err := svc.AddItem(ctx, testCartID, &models.AddItemRequest{ProductID: 11, Quantity: 0})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
		repos.Store.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})
}

func TestUpdateItemQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Reprices from the live product", func(t *testing.T) {
		svc, repos := newCartService()
		line := cartLine(1, 11, 1, "15.00")

		repos.Store.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("LockCart", ctx, testCartID).Return(&models.Cart{ID: testCartID}, nil).Once()
		repos.Carts.On("GetItem", ctx, testCartID, int64(1)).Return(&line, nil).Once()
		repos.Products.On("GetProductByID", ctx, int64(11)).Return(testProduct(11, 10, "12.50"), nil).Once()
		repos.Carts.On("SaveItem", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("ListItems", ctx, testCartID).Return([]models.CartItem{cartLine(1, 11, 4, "12.50")}, nil).Once()
		repos.Carts.On("UpdateTotal", ctx, testCartID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(price("50.00"))
		})).Return(nil).Once()

		item, err := svc.UpdateItemQuantity(ctx, testCartID, 1, &models.UpdateQuantityRequest{Quantity: 4})

		require.NoError(t, err)
		assert.Equal(t, 4, item.Quantity)
		assert.True(t, item.TotalPrice.Equal(price("50.00")))
		repos.AssertExpectations(t)
	})

	t.Run("Failure - Above stock", func(t *testing.T) {
		svc, repos := newCartService()
		line := cartLine(1, 11, 1, "15.00")

		repos.Store.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("LockCart", ctx, testCartID).Return(&models.Cart{ID: testCartID}, nil).Once()
		repos.Carts.On("GetItem", ctx, testCartID, int64(1)).Return(&line, nil).Once()
		repos.Products.On("GetProductByID", ctx, int64(11)).Return(testProduct(11, 2, "15.00"), nil).Once()

		_, err := svc.UpdateItemQuantity(ctx, testCartID, 1, &models.UpdateQuantityRequest{Quantity: 3})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
		repos.Carts.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown item", func(t *testing.T) {
		svc, repos := newCartService()

		repos.Store.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("LockCart", ctx, testCartID).Return(&models.Cart{ID: testCartID}, nil).Once()
		repos.Carts.On("GetItem", ctx, testCartID, int64(8)).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.UpdateItemQuantity(ctx, testCartID, 8, &models.UpdateQuantityRequest{Quantity: 1})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Recomputes the total", func(t *testing.T) {
		svc, repos := newCartService()

		repos.Store.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("LockCart", ctx, testCartID).Return(&models.Cart{ID: testCartID}, nil).Once()
		repos.Carts.On("DeleteItem", ctx, testCartID, int64(1)).Return(nil).Once()
		repos.Carts.On("ListItems", ctx, testCartID).Return([]models.CartItem{}, nil).Once()
		repos.Carts.On("UpdateTotal", ctx, testCartID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.IsZero()
		})).Return(nil).Once()

		require.NoError(t, svc.RemoveItem(ctx, testCartID, 1))
		repos.AssertExpectations(t)
	})

	t.Run("Failure - Unknown item", func(t *testing.T) {
		svc, repos := newCartService()

		repos.Store.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repos.Carts.On("LockCart", ctx, testCartID).Return(&models.Cart{ID: testCartID}, nil).Once()
		repos.Carts.On("DeleteItem", ctx, testCartID, int64(1)).Return(repository.ErrNotFound).Once()

		err := svc.RemoveItem(ctx, testCartID, 1)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
		repos.Carts.AssertNotCalled(t, "UpdateTotal", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListCartItems(t *testing.T) {
	ctx := context.Background()
	svc, repos := newCartService()

	repos.Carts.On("GetCart", ctx, testCartID).Return(&models.Cart{ID: testCartID}, nil).Once()
	repos.Carts.On("ListItems", ctx, testCartID).Return([]models.CartItem{cartLine(1, 11, 1, "15.00")}, nil).Once()

	items, err := svc.ListItems(ctx, testCartID)

	require.NoError(t, err)
	assert.Len(t, items, 1)
}
