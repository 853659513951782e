package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductService) GetProduct(ctx context.Context, identifier string) (*models.Product, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

func (m *ProductService) UpdateProduct(ctx context.Context, identifier string, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, identifier, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductService) DeleteProduct(ctx context.Context, identifier string) error {
	return m.Called(ctx, identifier).Error(0)
}

func (m *ProductService) CreateCollection(ctx context.Context, req *models.CreateCollectionRequest) (*models.Collection, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *ProductService) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *ProductService) ListCollections(ctx context.Context) ([]*models.Collection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Collection), args.Error(1)
}

func (m *ProductService) DeleteCollection(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type InventoryService struct {
	mock.Mock
}

func (m *InventoryService) Reserve(ctx context.Context, tx repository.Store, productID int64, quantity int) error {
	return m.Called(ctx, tx, productID, quantity).Error(0)
}

func (m *InventoryService) Restock(ctx context.Context, productID int64, quantity int) (*models.Product, error) {
	args := m.Called(ctx, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *InventoryService) SetInventory(ctx context.Context, productID int64, inventory int) (*models.Product, error) {
	args := m.Called(ctx, productID, inventory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}
