package mocks

import (
	"context"

	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// Store is a testify mock of repository.Store. WithTx runs fn against the
// same mock unless the expectation returns an error, so repository calls made
// inside the unit are asserted on the mocks returned by the accessors.
type Store struct {
	mock.Mock
}

func (m *Store) Products() repository.ProductRepository {
	return m.Called().Get(0).(repository.ProductRepository)
}

func (m *Store) Collections() repository.CollectionRepository {
	return m.Called().Get(0).(repository.CollectionRepository)
}

func (m *Store) Reviews() repository.ReviewRepository {
	return m.Called().Get(0).(repository.ReviewRepository)
}

func (m *Store) Carts() repository.CartRepository {
	return m.Called().Get(0).(repository.CartRepository)
}

func (m *Store) Customers() repository.CustomerRepository {
	return m.Called().Get(0).(repository.CustomerRepository)
}

func (m *Store) Orders() repository.OrderRepository {
	return m.Called().Get(0).(repository.OrderRepository)
}

func (m *Store) Reactions() repository.ReactionRepository {
	return m.Called().Get(0).(repository.ReactionRepository)
}

func (m *Store) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}

	return fn(m)
}

// Repos bundles one mock per repository and wires them into a Store mock.
type Repos struct {
	Store       *Store
	Products    *ProductRepository
	Collections *CollectionRepository
	Reviews     *ReviewRepository
	Carts       *CartRepository
	Customers   *CustomerRepository
	Orders      *OrderRepository
	Reactions   *ReactionRepository
}

func NewRepos() *Repos {
	r := &Repos{
		Store:       new(Store),
		Products:    new(ProductRepository),
		Collections: new(CollectionRepository),
		Reviews:     new(ReviewRepository),
		Carts:       new(CartRepository),
		Customers:   new(CustomerRepository),
		Orders:      new(OrderRepository),
		Reactions:   new(ReactionRepository),
	}

	r.Store.On("Products").Return(r.Products).Maybe()
	r.Store.On("Collections").Return(r.Collections).Maybe()
	r.Store.On("Reviews").Return(r.Reviews).Maybe()
	r.Store.On("Carts").Return(r.Carts).Maybe()
	r.Store.On("Customers").Return(r.Customers).Maybe()
	r.Store.On("Orders").Return(r.Orders).Maybe()
	r.Store.On("Reactions").Return(r.Reactions).Maybe()

	return r
}

func (r *Repos) AssertExpectations(t mock.TestingT) {
	r.Store.AssertExpectations(t)
	r.Products.AssertExpectations(t)
	r.Collections.AssertExpectations(t)
	r.Reviews.AssertExpectations(t)
	r.Carts.AssertExpectations(t)
	r.Customers.AssertExpectations(t)
	r.Orders.AssertExpectations(t)
	r.Reactions.AssertExpectations(t)
}
