package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Collection struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	ProductsCount int    `json:"products_count"`
}

type Product struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory"`
	CollectionID int64           `json:"collection_id"`
	LastUpdate   time.Time       `json:"last_update"`
}

// SimpleProduct is the product view embedded in cart and order lines.
type SimpleProduct struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreateCollectionRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type CreateProductRequest struct {
	Title        string          `json:"title" validate:"required,max=255"`
	Slug         string          `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description  string          `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory" validate:"gte=0"`
	CollectionID int64           `json:"collection_id" validate:"required"`
}

type UpdateProductRequest struct {
	Title        *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Slug         *string          `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description  *string          `json:"description,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	CollectionID *int64           `json:"collection_id,omitempty"`
}

// SetInventoryRequest carries an administrative absolute stock level.
type SetInventoryRequest struct {
	Inventory *int `json:"inventory" validate:"required,gte=0"`
}

type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
