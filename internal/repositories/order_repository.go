package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type OrderRepository interface {
	GetOrCreateAddress(ctx context.Context, address *models.OrderAddress) error
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, orderID int64, items []models.OrderItem) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	LockOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, customerID *int64, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, id int64) error
}

type orderRepository struct {
	DB DBTX
}

func NewOrderRepo(db DBTX) OrderRepository {
	return &orderRepository{DB: db}
}

const orderSelect = `
	SELECT o.id, o.customer_id, o.status, o.total_price, o.created_at, o.updated_at,
		a.id, a.first_name, a.last_name, a.phone_number, a.apartment_number, a.street_number,
		a.street, a.postal_code, a.city, a.state, a.country
	FROM orders o
	JOIN order_addresses a ON a.id = o.address_id
`

const orderItemsQuery = `
	SELECT oi.id, oi.order_id, oi.quantity, oi.total_price, p.id, p.title, p.unit_price
	FROM order_items oi
	JOIN products p ON p.id = oi.product_id
	WHERE oi.order_id = $1
	ORDER BY oi.product_id
`

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{Address: &models.OrderAddress{}}

	var apartment sql.NullString

	err := row.Scan(&order.ID, &order.CustomerID, &order.Status, &order.TotalPrice, &order.CreatedAt, &order.UpdatedAt,
		&order.Address.ID, &order.Address.FirstName, &order.Address.LastName, &order.Address.PhoneNumber, &apartment,
		&order.Address.StreetNumber, &order.Address.Street, &order.Address.PostalCode, &order.Address.City,
		&order.Address.State, &order.Address.Country)
	if err != nil {
		return nil, err
	}

	order.Address.ApartmentNumber = nullableString(apartment)

	return order, nil
}

// GetOrCreateAddress stores the snapshot once per distinct field tuple. An
// identical snapshot taken earlier, or concurrently, is reused.
func (r *orderRepository) GetOrCreateAddress(ctx context.Context, address *models.OrderAddress) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO order_addresses (fingerprint, ` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (fingerprint) DO UPDATE SET fingerprint = EXCLUDED.fingerprint
		RETURNING id
	`

	args := append([]any{address.Fingerprint()}, addressArgs(&address.Address)...)

	if err := r.DB.QueryRowContext(dbCtx, query, args...).Scan(&address.ID); err != nil {
		return fmt.Errorf("failed to snapshot order address: %w", translateError(err))
	}

	return nil
}

// CreateOrder inserts the order header. Items are written separately.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO orders (customer_id, address_id, status, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, order.CustomerID, order.Address.ID, order.Status, order.TotalPrice).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", translateError(err))
	}

	return nil
}

func (r *orderRepository) CreateOrderItems(ctx context.Context, orderID int64, items []models.OrderItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO order_items (order_id, product_id, quantity, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	for i := range items {
		err := r.DB.QueryRowContext(dbCtx, query, orderID, items[i].Product.ID, items[i].Quantity, items[i].TotalPrice).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", translateError(err))
		}

		items[i].OrderID = orderID
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get the order: %w", translateError(err))
	}

	if order.Items, err = r.listItems(dbCtx, id); err != nil {
		return nil, err
	}

	return order, nil
}

// LockOrder reads the order header under a row lock.
func (r *orderRepository) LockOrder(ctx context.Context, id int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, customer_id, status, total_price, created_at, updated_at FROM orders WHERE id = $1 FOR UPDATE`

	order := &models.Order{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.ID, &order.CustomerID, &order.Status, &order.TotalPrice, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to lock the order: %w", translateError(err))
	}

	return order, nil
}

// ListOrders pages through the orders of one customer, or through all orders
// when customerID is nil.
func (r *orderRepository) ListOrders(ctx context.Context, customerID *int64, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE ($1::BIGINT IS NULL OR customer_id = $1)`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, customerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	// Offset
	offset := (page - 1) * size

	query := orderSelect + `
		WHERE ($1::BIGINT IS NULL OR o.customer_id = $1)
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, customerID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := []models.Order{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, *order)
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// now for each order we have to fetch the respective order items
	for i := range orders {
		if orders[i].Items, err = r.listItems(dbCtx, orders[i].ID); err != nil {
			return nil, 0, err
		}
	}

	return orders, total, nil
}

func (r *orderRepository) listItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, orderItemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	items := []models.OrderItem{}

	for rows.Next() {
		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.OrderID, &item.Quantity, &item.TotalPrice, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateOrderStatus writes order.Status and refreshes order.UpdatedAt.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`

	if err := r.DB.QueryRowContext(dbCtx, query, order.Status, order.ID).Scan(&order.UpdatedAt); err != nil {
		return fmt.Errorf("failed to update order status: %w", translateError(err))
	}

	return nil
}

// DeleteOrder removes the order and its items. The address snapshot stays.
func (r *orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", translateError(err))
	}

	return expectAffected(result, "order", id)
}
