package service

import (
	"context"
	"errors"
	"fmt"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

const (
	msgCartNotFound     = "No cart with the given ID was found."
	msgCartItemNotFound = "No cart item with the given ID was found."
	msgStockCeiling     = "You cannot add more to your cart than is available in stock."
)

type CartService interface {
	CreateCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	DeleteCart(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*models.CartItem, error)
	// AddItem merges into the existing line for the product, if any.
	AddItem(ctx context.Context, cartID uuid.UUID, req *models.AddItemRequest) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, req *models.UpdateQuantityRequest) (*models.CartItem, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
}

type cartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) CartService {
	return &cartService{store: store}
}

func (s *cartService) CreateCart(ctx context.Context) (*models.Cart, error) {

	cart := &models.Cart{
		ID:    uuid.New(),
		Items: []models.CartItem{},
	}

	if err := s.store.Carts().CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {

	cart, err := s.store.Carts().GetCart(ctx, id)
	if err != nil {
		return nil, storeError(err, msgCartNotFound, "Failed to fetch cart")
	}

	return cart, nil
}

func (s *cartService) DeleteCart(ctx context.Context, id uuid.UUID) error {

	if err := s.store.Carts().DeleteCart(ctx, id); err != nil {
		return storeError(err, msgCartNotFound, "Failed to delete cart")
	}

	return nil
}

func (s *cartService) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {

	if _, err := s.store.Carts().GetCart(ctx, cartID); err != nil {
		return nil, storeError(err, msgCartNotFound, "Failed to fetch cart")
	}

	items, err := s.store.Carts().ListItems(ctx, cartID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch cart items").WithError(err)
	}

	return items, nil
}

func (s *cartService) GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*models.CartItem, error) {

	item, err := s.store.Carts().GetItem(ctx, cartID, itemID)
	if err != nil {
		return nil, storeError(err, msgCartItemNotFound, "Failed to fetch cart item")
	}

	return item, nil
}

func (s *cartService) AddItem(ctx context.Context, cartID uuid.UUID, req *models.AddItemRequest) (*models.CartItem, error) {

	if req.Quantity < 1 {
		return nil, appErrors.AddValidationError("quantity", "must be at least 1")
	}

	var item *models.CartItem

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Carts().LockCart(ctx, cartID); err != nil {
			return storeError(err, msgCartNotFound, "Failed to fetch cart")
		}

		product, err := tx.Products().GetProductByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return appErrors.AddValidationError("product_id", "Invalid product id.").WithError(err)
			}

			return err
		}

		quantity := req.Quantity

		existing, err := tx.Carts().GetItemByProduct(ctx, cartID, product.ID)
		switch {
		case err == nil:
			quantity += existing.Quantity
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		if quantity > product.Inventory {
			return appErrors.AddValidationError("quantity", msgStockCeiling).
				WithDetail(fmt.Sprintf("requested %d, available %d", quantity, product.Inventory))
		}

		item = &models.CartItem{
			CartID:     cartID,
			Product:    models.SimpleProduct{ID: product.ID, Title: product.Title, UnitPrice: product.UnitPrice},
			Quantity:   quantity,
			TotalPrice: pricing.LineTotal(quantity, product.UnitPrice),
		}

		if err := tx.Carts().SaveItem(ctx, item); err != nil {
			return err
		}

		return recomputeCartTotal(ctx, tx, cartID)
	})
	if err != nil {
		return nil, storeError(err, msgCartNotFound, "Failed to add item to cart")
	}

	return item, nil
}

// UpdateItemQuantity reprices the line from the live product price.
func (s *cartService) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, req *models.UpdateQuantityRequest) (*models.CartItem, error) {

	if req.Quantity < 1 {
		return nil, appErrors.AddValidationError("quantity", "must be at least 1")
	}

	var item *models.CartItem

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Carts().LockCart(ctx, cartID); err != nil {
			return storeError(err, msgCartNotFound, "Failed to fetch cart")
		}

		var err error

		item, err = tx.Carts().GetItem(ctx, cartID, itemID)
		if err != nil {
			return storeError(err, msgCartItemNotFound, "Failed to fetch cart item")
		}

		product, err := tx.Products().GetProductByID(ctx, item.Product.ID)
		if err != nil {
			return err
		}

		if req.Quantity > product.Inventory {
			return appErrors.AddValidationError("quantity", msgStockCeiling).
				WithDetail(fmt.Sprintf("requested %d, available %d", req.Quantity, product.Inventory))
		}

		item.Quantity = req.Quantity
		item.Product.Title = product.Title
		item.Product.UnitPrice = product.UnitPrice
		item.TotalPrice = pricing.LineTotal(req.Quantity, product.UnitPrice)

		if err := tx.Carts().SaveItem(ctx, item); err != nil {
			return err
		}

		return recomputeCartTotal(ctx, tx, cartID)
	})
	if err != nil {
		return nil, storeError(err, msgCartItemNotFound, "Failed to update cart item")
	}

	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Carts().LockCart(ctx, cartID); err != nil {
			return storeError(err, msgCartNotFound, "Failed to fetch cart")
		}

		if err := tx.Carts().DeleteItem(ctx, cartID, itemID); err != nil {
			return storeError(err, msgCartItemNotFound, "Failed to remove cart item")
		}

		return recomputeCartTotal(ctx, tx, cartID)
	})
	if err != nil {
		return storeError(err, msgCartItemNotFound, "Failed to remove cart item")
	}

	return nil
}

// recomputeCartTotal rederives the cart total from the full line set. It must
// run in the same transaction as the line mutation, with the cart locked.
func recomputeCartTotal(ctx context.Context, tx repository.Store, cartID uuid.UUID) error {
	items, err := tx.Carts().ListItems(ctx, cartID)
	if err != nil {
		return err
	}

	return tx.Carts().UpdateTotal(ctx, cartID, pricing.Total(items))
}
