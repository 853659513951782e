package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

// InventoryService owns Product.inventory. Every write is a single conditional
// statement inside a transaction, so stock never drops below zero.
type InventoryService interface {
	// Reserve debits quantity from the product within tx. It is meant to run
	// inside the caller's transaction so the debit commits or aborts with it.
	Reserve(ctx context.Context, tx repository.Store, productID int64, quantity int) error
	Restock(ctx context.Context, productID int64, quantity int) (*models.Product, error)
	SetInventory(ctx context.Context, productID int64, inventory int) (*models.Product, error)
}

type inventoryService struct {
	store repository.Store
	cache cache.Cache
}

func NewInventoryService(store repository.Store, cache cache.Cache) InventoryService {
	return &inventoryService{store: store, cache: cache}
}

func (s *inventoryService) Reserve(ctx context.Context, tx repository.Store, productID int64, quantity int) error {
	if quantity < 1 {
		return appErrors.ValidationError("Quantity must be at least 1")
	}

	available, err := tx.Products().DebitInventory(ctx, productID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return appErrors.InsufficientStockError("You cannot order more than is available in stock.").
				WithDetail(fmt.Sprintf("product %d: requested %d, available %d", productID, quantity, available)).
				WithError(err)
		}

		return storeError(err, "No product with the given ID was found.", "Failed to reserve inventory")
	}

	return nil
}

func (s *inventoryService) Restock(ctx context.Context, productID int64, quantity int) (*models.Product, error) {
	if quantity < 1 {
		return nil, appErrors.ValidationError("Quantity must be at least 1")
	}

	var product *models.Product

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Products().CreditInventory(ctx, productID, quantity); err != nil {
			return err
		}

		var err error
		product, err = tx.Products().GetProductByID(ctx, productID)

		return err
	})
	if err != nil {
		return nil, storeError(err, "No product with the given ID was found.", "Failed to restock product")
	}

	invalidateProduct(ctx, s.cache, product)

	return product, nil
}

func (s *inventoryService) SetInventory(ctx context.Context, productID int64, inventory int) (*models.Product, error) {
	if inventory < 0 {
		return nil, appErrors.ValidationError("Inventory cannot be negative")
	}

	var product *models.Product

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Products().SetInventory(ctx, productID, inventory); err != nil {
			return err
		}

		var err error
		product, err = tx.Products().GetProductByID(ctx, productID)

		return err
	})
	if err != nil {
		return nil, storeError(err, "No product with the given ID was found.", "Failed to set inventory")
	}

	middleware.LoggerFromContext(ctx).Info("Inventory set",
		slog.Int64("productId", productID),
		slog.Int("inventory", inventory),
	)

	invalidateProduct(ctx, s.cache, product)

	return product, nil
}
