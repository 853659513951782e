package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CustomerRepository struct {
	mock.Mock
}

func (m *CustomerRepository) EnsureCustomer(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.(*models.Customer), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CustomerRepository) GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.(*models.Customer), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CustomerRepository) CreateAddress(ctx context.Context, address *models.CustomerAddress) error {
	return m.Called(ctx, address).Error(0)
}

func (m *CustomerRepository) SetCustomerAddress(ctx context.Context, customerID int64, addressID *int64) error {
	return m.Called(ctx, customerID, addressID).Error(0)
}

func (m *CustomerRepository) UpdateAddress(ctx context.Context, address *models.CustomerAddress) error {
	return m.Called(ctx, address).Error(0)
}

func (m *CustomerRepository) DeleteAddress(ctx context.Context, addressID int64) error {
	return m.Called(ctx, addressID).Error(0)
}

func (m *CustomerRepository) DeleteCustomer(ctx context.Context, customerID int64) error {
	return m.Called(ctx, customerID).Error(0)
}
