package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	DeleteProduct(ctx context.Context, id int64) error
	DebitInventory(ctx context.Context, id int64, quantity int) (int, error)
	CreditInventory(ctx context.Context, id int64, quantity int) (int, error)
	SetInventory(ctx context.Context, id int64, inventory int) error
}

type productRepository struct {
	DB DBTX
}

func NewProductRepo(db DBTX) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, title, slug, description, unit_price, inventory, collection_id, last_update`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	err := row.Scan(&product.ID, &product.Title, &product.Slug, &product.Description, &product.UnitPrice, &product.Inventory, &product.CollectionID, &product.LastUpdate)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (title, slug, description, unit_price, inventory, collection_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, last_update
	`

	err := r.DB.QueryRowContext(dbCtx, query, product.Title, product.Slug, product.Description, product.UnitPrice, product.Inventory, product.CollectionID).Scan(&product.ID, &product.LastUpdate)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", translateError(err))
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, translateError(err))
	}

	return product, nil
}

func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, slug))
	if err != nil {
		return nil, fmt.Errorf("failed to get product %q: %w", slug, translateError(err))
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET title = $1, slug = $2, description = $3, unit_price = $4, collection_id = $5, last_update = NOW()
		WHERE id = $6
		RETURNING inventory, last_update
	`

	err := r.DB.QueryRowContext(dbCtx, query, product.Title, product.Slug, product.Description, product.UnitPrice, product.CollectionID, product.ID).Scan(&product.Inventory, &product.LastUpdate)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, translateError(err))
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products`

	err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Offset
	offset := (page - 1) * size

	query := `SELECT ` + productColumns + ` FROM products ORDER BY title, id LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// DeleteProduct fails with ErrReferenced while order items still point at the product.
func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, translateError(err))
	}

	return expectAffected(result, "product", id)
}

// DebitInventory removes quantity from the stock counter in a single
// conditional statement, so concurrent debits serialize on the row lock and
// the counter can never drop below zero. It returns the remaining stock.
func (r *productRepository) DebitInventory(ctx context.Context, id int64, quantity int) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET inventory = inventory - $1, last_update = NOW()
		WHERE id = $2 AND inventory >= $1
		RETURNING inventory
	`

	var remaining int

	err := r.DB.QueryRowContext(dbCtx, query, quantity, id).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}

	err = translateError(err)
	if !errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("failed to debit inventory of product %d: %w", id, err)
	}

	// No row matched: either the product is gone or the stock is too low.
	var current int

	err = r.DB.QueryRowContext(dbCtx, `SELECT inventory FROM products WHERE id = $1`, id).Scan(&current)
	if err != nil {
		return 0, fmt.Errorf("failed to debit inventory of product %d: %w", id, translateError(err))
	}

	return current, fmt.Errorf("product %d has %d in stock, %d requested: %w", id, current, quantity, ErrInsufficientStock)
}

func (r *productRepository) CreditInventory(ctx context.Context, id int64, quantity int) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET inventory = inventory + $1, last_update = NOW()
		WHERE id = $2
		RETURNING inventory
	`

	var updated int

	err := r.DB.QueryRowContext(dbCtx, query, quantity, id).Scan(&updated)
	if err != nil {
		return 0, fmt.Errorf("failed to credit inventory of product %d: %w", id, translateError(err))
	}

	return updated, nil
}

func (r *productRepository) SetInventory(ctx context.Context, id int64, inventory int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE products SET inventory = $1, last_update = NOW() WHERE id = $2`, inventory, id)
	if err != nil {
		return fmt.Errorf("failed to set inventory of product %d: %w", id, translateError(err))
	}

	return expectAffected(result, "product", id)
}
