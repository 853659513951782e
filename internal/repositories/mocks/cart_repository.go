package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *CartRepository) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Cart), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartRepository) LockCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Cart), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, cartID)
	if items := args.Get(0); items != nil {
		return items.([]models.CartItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartRepository) GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, itemID)
	if item := args.Get(0); item != nil {
		return item.(*models.CartItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartRepository) GetItemByProduct(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	if item := args.Get(0); item != nil {
		return item.(*models.CartItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartRepository) SaveItem(ctx context.Context, item *models.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *CartRepository) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	return m.Called(ctx, cartID, itemID).Error(0)
}

func (m *CartRepository) UpdateTotal(ctx context.Context, cartID uuid.UUID, total decimal.Decimal) error {
	return m.Called(ctx, cartID, total).Error(0)
}

func (m *CartRepository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
