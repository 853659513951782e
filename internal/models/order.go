package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusInProgress        OrderStatus = "in_progress"
	OrderStatusIssuedForDelivery OrderStatus = "issued_for_delivery"
	OrderStatusCompleted         OrderStatus = "completed"
)

var orderStatusRank = map[OrderStatus]int{
	OrderStatusInProgress:        0,
	OrderStatusIssuedForDelivery: 1,
	OrderStatusCompleted:         2,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]

	return ok
}

// CanTransitionTo allows moving forward only; there is no way back.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}

	to, ok := orderStatusRank[next]

	return ok && to > from
}

type OrderAddress struct {
	ID int64 `json:"id"`
	Address
}

type OrderItem struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"-"`
	Product    SimpleProduct   `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.TotalPrice
}

// Order totals are fixed when the order is created.
type Order struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Address    *OrderAddress   `json:"address"`
	Status     OrderStatus     `json:"status"`
	Items      []OrderItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type CheckoutRequest struct {
	CartID uuid.UUID `json:"cart_id" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=in_progress issued_for_delivery completed"`
}
