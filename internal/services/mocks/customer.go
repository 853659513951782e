package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CustomerService struct {
	mock.Mock
}

func (m *CustomerService) GetOrCreateCustomer(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *CustomerService) CreateAddress(ctx context.Context, userID uuid.UUID, address *models.Address) (*models.CustomerAddress, error) {
	args := m.Called(ctx, userID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CustomerAddress), args.Error(1)
}

func (m *CustomerService) GetAddress(ctx context.Context, userID uuid.UUID) (*models.CustomerAddress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CustomerAddress), args.Error(1)
}

func (m *CustomerService) UpdateAddress(ctx context.Context, userID uuid.UUID, address *models.Address) (*models.CustomerAddress, error) {
	args := m.Called(ctx, userID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CustomerAddress), args.Error(1)
}

func (m *CustomerService) DeleteAddress(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *CustomerService) DeleteCustomer(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
