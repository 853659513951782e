package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) GetOrCreateAddress(ctx context.Context, address *models.OrderAddress) error {
	return m.Called(ctx, address).Error(0)
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) CreateOrderItems(ctx context.Context, orderID int64, items []models.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderRepository) LockOrder(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderRepository) ListOrders(ctx context.Context, customerID *int64, page, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, customerID, page, size)
	if o := args.Get(0); o != nil {
		return o.([]models.Order), args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) DeleteOrder(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
