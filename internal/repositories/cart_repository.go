package repository

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	LockCart(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*models.CartItem, error)
	GetItemByProduct(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error)
	SaveItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
	UpdateTotal(ctx context.Context, cartID uuid.UUID, total decimal.Decimal) error
	DeleteCart(ctx context.Context, id uuid.UUID) error
}

type cartRepository struct {
	DB DBTX
}

func NewCartRepo(db DBTX) CartRepository {
	return &cartRepository{DB: db}
}

const cartItemSelect = `
	SELECT ci.id, ci.cart_id, ci.quantity, ci.total_price, p.id, p.title, p.unit_price
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
`

func scanCartItem(row rowScanner) (*models.CartItem, error) {
	item := &models.CartItem{}

	err := row.Scan(&item.ID, &item.CartID, &item.Quantity, &item.TotalPrice, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO carts (id) VALUES ($1) RETURNING total_price, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, cart.ID).Scan(&cart.TotalPrice, &cart.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", translateError(err))
	}

	return nil
}

// GetCart returns the cart header together with its lines.
func (r *cartRepository) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	cart, err := r.getHeader(ctx, `SELECT id, total_price, updated_at FROM carts WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	cart.Items = items

	return cart, nil
}

// LockCart reads the cart header and holds its row lock until the
// surrounding transaction ends. Every mutation of the cart's lines and the
// checkout take this lock first.
func (r *cartRepository) LockCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return r.getHeader(ctx, `SELECT id, total_price, updated_at FROM carts WHERE id = $1 FOR UPDATE`, id)
}

func (r *cartRepository) getHeader(ctx context.Context, query string, id uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&cart.ID, &cart.TotalPrice, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart %s: %w", id, translateError(err))
	}

	cart.Items = []models.CartItem{}

	return cart, nil
}

// ListItems returns the lines ordered by product id, which is also the order
// checkout debits stock in.
func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, cartItemSelect+` WHERE ci.cart_id = $1 ORDER BY ci.product_id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	defer rows.Close()

	items := []models.CartItem{}

	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepository) GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item, err := scanCartItem(r.DB.QueryRowContext(dbCtx, cartItemSelect+` WHERE ci.cart_id = $1 AND ci.id = $2`, cartID, itemID))
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item %d: %w", itemID, translateError(err))
	}

	return item, nil
}

func (r *cartRepository) GetItemByProduct(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item, err := scanCartItem(r.DB.QueryRowContext(dbCtx, cartItemSelect+` WHERE ci.cart_id = $1 AND ci.product_id = $2`, cartID, productID))
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item for product %d: %w", productID, translateError(err))
	}

	return item, nil
}

// SaveItem writes the line with its absolute quantity and total. The
// (cart_id, product_id) constraint turns a second line for the same product
// into an update of the existing one.
func (r *cartRepository) SaveItem(ctx context.Context, item *models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity, total_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT one_product_per_cart
		DO UPDATE SET quantity = EXCLUDED.quantity, total_price = EXCLUDED.total_price
		RETURNING id
	`

	err := r.DB.QueryRowContext(dbCtx, query, item.CartID, item.Product.ID, item.Quantity, item.TotalPrice).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to save cart item: %w", translateError(err))
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", itemID, translateError(err))
	}

	return expectAffected(result, "cart item", itemID)
}

func (r *cartRepository) UpdateTotal(ctx context.Context, cartID uuid.UUID, total decimal.Decimal) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE carts SET total_price = $1, updated_at = NOW() WHERE id = $2`, total, cartID)
	if err != nil {
		return fmt.Errorf("failed to update cart total: %w", translateError(err))
	}

	return expectAffected(result, "cart", cartID)
}

// DeleteCart removes the cart; its lines go with it.
func (r *cartRepository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", id, translateError(err))
	}

	return expectAffected(result, "cart", id)
}
