package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	args := m.Called(ctx, page, size)
	if p := args.Get(0); p != nil {
		return p.([]*models.Product), args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepository) DebitInventory(ctx context.Context, id int64, quantity int) (int, error) {
	args := m.Called(ctx, id, quantity)

	return args.Int(0), args.Error(1)
}

func (m *ProductRepository) CreditInventory(ctx context.Context, id int64, quantity int) (int, error) {
	args := m.Called(ctx, id, quantity)

	return args.Int(0), args.Error(1)
}

func (m *ProductRepository) SetInventory(ctx context.Context, id int64, inventory int) error {
	return m.Called(ctx, id, inventory).Error(0)
}

type CollectionRepository struct {
	mock.Mock
}

func (m *CollectionRepository) CreateCollection(ctx context.Context, collection *models.Collection) error {
	return m.Called(ctx, collection).Error(0)
}

func (m *CollectionRepository) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Collection), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CollectionRepository) ListCollections(ctx context.Context) ([]*models.Collection, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]*models.Collection), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CollectionRepository) DeleteCollection(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepository) GetReview(ctx context.Context, productID, id int64) (*models.Review, error) {
	args := m.Called(ctx, productID, id)
	if r := args.Get(0); r != nil {
		return r.(*models.Review), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ReviewRepository) ListReviews(ctx context.Context, productID int64) ([]*models.Review, error) {
	args := m.Called(ctx, productID)
	if r := args.Get(0); r != nil {
		return r.([]*models.Review), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ReviewRepository) DeleteReview(ctx context.Context, productID, id int64) error {
	return m.Called(ctx, productID, id).Error(0)
}
