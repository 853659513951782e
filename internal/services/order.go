package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/events"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

const (
	msgOrderNotFound = "No order with the given ID was found."
	publishTimeout   = 5 * time.Second
)

type OrderService interface {
	// Checkout converts the cart into an order in one transaction and
	// announces the order once it has committed.
	Checkout(ctx context.Context, claims *models.Claims, cartID uuid.UUID) (*models.Order, error)
	GetOrder(ctx context.Context, claims *models.Claims, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, claims *models.Claims, page, pageSize int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type orderService struct {
	store     repository.Store
	inventory InventoryService
	publisher events.Publisher
}

func NewOrderService(store repository.Store, inventory InventoryService, publisher events.Publisher) OrderService {
	return &orderService{store: store, inventory: inventory, publisher: publisher}
}

func (s *orderService) Checkout(ctx context.Context, claims *models.Claims, cartID uuid.UUID) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("cartId", cartID.String()))

	var order *models.Order

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		order = nil

		cart, err := tx.Carts().LockCart(ctx, cartID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return appErrors.EmptyCartError("No cart with the given id was found.").WithError(err)
			}

			return err
		}

		lines, err := tx.Carts().ListItems(ctx, cart.ID)
		if err != nil {
			return err
		}

		if len(lines) == 0 {
			return appErrors.EmptyCartError("The cart is empty.")
		}

		customer, err := tx.Customers().EnsureCustomer(ctx, claims.UserID)
		if err != nil {
			return err
		}

		if customer.Address == nil {
			return appErrors.MissingAddressError(msgNoAddress)
		}

		snapshot := &models.OrderAddress{Address: customer.Address.Address}
		if err := tx.Orders().GetOrCreateAddress(ctx, snapshot); err != nil {
			return err
		}

		items := make([]models.OrderItem, len(lines))
		for i, line := range lines {
			items[i] = models.OrderItem{
				Product:    line.Product,
				Quantity:   line.Quantity,
				TotalPrice: line.TotalPrice,
			}
		}

		created := &models.Order{
			CustomerID: customer.ID,
			Address:    snapshot,
			Status:     models.OrderStatusInProgress,
			TotalPrice: pricing.Total(items),
		}

		if err := tx.Orders().CreateOrder(ctx, created); err != nil {
			return err
		}

		// Lines come back ordered by product id, so concurrent checkouts
		// debit shared products in the same order.
		for _, line := range lines {
			if err := s.inventory.Reserve(ctx, tx, line.Product.ID, line.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Orders().CreateOrderItems(ctx, created.ID, items); err != nil {
			return err
		}

		created.Items = items

		if err := tx.Carts().DeleteCart(ctx, cart.ID); err != nil {
			return err
		}

		order = created

		return nil
	})
	if err != nil {
		outcome := "error"
		if appErr, ok := appErrors.IsAppError(err); ok {
			outcome = strings.ToLower(appErr.Code)
		}

		metrics.CheckoutsTotal.WithLabelValues(outcome).Inc()
		logger.Warn("Checkout aborted", slog.String("outcome", outcome), slog.String("error", err.Error()))

		return nil, storeError(err, msgCartNotFound, "Failed to place order")
	}

	metrics.CheckoutsTotal.WithLabelValues("committed").Inc()
	logger.Info("Checkout committed",
		slog.Int64("orderId", order.ID),
		slog.String("total", order.TotalPrice.StringFixed(pricing.Places)),
	)

	s.announce(ctx, order, claims)

	return order, nil
}

// announce publishes the order-created event. It runs after commit and its
// failure never affects the order.
func (s *orderService) announce(ctx context.Context, order *models.Order, claims *models.Claims) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	name := claims.Name
	if name == "" && order.Address != nil {
		name = strings.TrimSpace(order.Address.FirstName + " " + order.Address.LastName)
	}

	event := events.NewOrderCreated(order.ID, name, claims.Email)

	if err := s.publisher.PublishOrderCreated(pubCtx, event); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to publish order created event",
			slog.Int64("orderId", order.ID),
			slog.String("error", err.Error()),
		)
	}
}

// GetOrder hides orders of other customers behind a not-found.
func (s *orderService) GetOrder(ctx context.Context, claims *models.Claims, id int64) (*models.Order, error) {

	order, err := s.store.Orders().GetOrderByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgOrderNotFound, "Failed to fetch order")
	}

	if claims.IsAdmin() {
		return order, nil
	}

	customer, err := s.store.Customers().GetCustomerByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, storeError(err, msgOrderNotFound, "Failed to fetch order")
	}

	if customer.ID != order.CustomerID {
		return nil, appErrors.NotFoundError(msgOrderNotFound)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, claims *models.Claims, page, pageSize int) ([]models.Order, int, error) {

	var customerID *int64

	if !claims.IsAdmin() {
		customer, err := s.store.Customers().GetCustomerByUserID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []models.Order{}, 0, nil
			}

			return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
		}

		customerID = &customer.ID
	}

	orders, total, err := s.store.Orders().ListOrders(ctx, customerID, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateOrderStatus only moves forward along
// in_progress -> issued_for_delivery -> completed.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {

	if !status.Valid() {
		return nil, appErrors.AddValidationError("status", fmt.Sprintf("unknown status %q", status))
	}

	var order *models.Order

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		current, err := tx.Orders().LockOrder(ctx, id)
		if err != nil {
			return err
		}

		if !current.Status.CanTransitionTo(status) {
			return appErrors.ConflictError(fmt.Sprintf("Order cannot move from %s to %s.", current.Status, status))
		}

		current.Status = status

		if err := tx.Orders().UpdateOrderStatus(ctx, current); err != nil {
			return err
		}

		order, err = tx.Orders().GetOrderByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, storeError(err, msgOrderNotFound, "Failed to update order status")
	}

	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {

	if err := s.store.Orders().DeleteOrder(ctx, id); err != nil {
		return storeError(err, msgOrderNotFound, "Failed to delete order")
	}

	middleware.LoggerFromContext(ctx).Info("Order deleted", slog.Int64("orderId", id))

	return nil
}
