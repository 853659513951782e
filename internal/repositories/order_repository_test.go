package repository_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderCols = []string{"id", "customer_id", "status", "total_price", "created_at", "updated_at",
		"address_id", "first_name", "last_name", "phone_number", "apartment_number", "street_number",
		"street", "postal_code", "city", "state", "country"}
	orderItemCols = []string{"id", "order_id", "quantity", "total_price", "product_id", "title", "unit_price"}
)

func testAddress() models.Address {
	return models.Address{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PhoneNumber:  "+442071234567",
		StreetNumber: "12",
		Street:       "St James's Square",
		PostalCode:   "SW1Y 4JH",
		City:         "London",
		State:        "London",
		Country:      "UK",
	}
}

func TestNewOrderRepo(t *testing.T) {
	db, _ := newMockDB(t)

	assert.NotNil(t, repository.NewOrderRepo(db))
}

func TestOrderRepository(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	t.Run("GetOrCreateAddress", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)
		address := &models.OrderAddress{Address: testAddress()}
		a := address.Address

		mock.ExpectQuery(`INSERT INTO order_addresses \(fingerprint, .+ON CONFLICT \(fingerprint\) DO UPDATE SET fingerprint = EXCLUDED.fingerprint RETURNING id`).
			WithArgs(a.Fingerprint(), a.FirstName, a.LastName, a.PhoneNumber, nil, a.StreetNumber, a.Street, a.PostalCode, a.City, a.State, a.Country).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

		// Act
		err := repo.GetOrCreateAddress(ctx, address)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(4), address.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateOrder", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)
		order := &models.Order{
			CustomerID: 2,
			Address:    &models.OrderAddress{ID: 4},
			Status:     models.OrderStatusInProgress,
			TotalPrice: decimal.RequireFromString("29.97"),
		}

		mock.ExpectQuery(`INSERT INTO orders \(customer_id, address_id, status, total_price\)`).
			WithArgs(int64(2), int64(4), "in_progress", order.TotalPrice).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(100), now, now))

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(100), order.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateOrderItems", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewOrderRepo(db)
			items := []models.OrderItem{
				{Product: models.SimpleProduct{ID: 11}, Quantity: 3, TotalPrice: decimal.RequireFromString("29.97")},
				{Product: models.SimpleProduct{ID: 12}, Quantity: 1, TotalPrice: decimal.RequireFromString("5.00")},
			}

			mock.ExpectQuery(`INSERT INTO order_items`).
				WithArgs(int64(100), int64(11), 3, items[0].TotalPrice).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
			mock.ExpectQuery(`INSERT INTO order_items`).
				WithArgs(int64(100), int64(12), 1, items[1].TotalPrice).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))

			// Act
			err := repo.CreateOrderItems(ctx, 100, items)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, int64(1), items[0].ID)
			assert.Equal(t, int64(2), items[1].ID)
			assert.Equal(t, int64(100), items[1].OrderID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Duplicate product line", func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewOrderRepo(db)

			mock.ExpectQuery(`INSERT INTO order_items`).
				WillReturnError(&pq.Error{Code: "23505", Constraint: "one_product_per_order"})

			err := repo.CreateOrderItems(ctx, 100, []models.OrderItem{{Product: models.SimpleProduct{ID: 11}, Quantity: 1}})

			require.ErrorIs(t, err, repository.ErrDuplicate)
		})
	})

	t.Run("GetOrderByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewOrderRepo(db)

			mock.ExpectQuery(`FROM orders o JOIN order_addresses a ON a.id = o.address_id WHERE o.id = \$1`).
				WithArgs(int64(100)).
				WillReturnRows(sqlmock.NewRows(orderCols).AddRow(int64(100), int64(2), "in_progress", "29.97", now, now,
					int64(4), "Ada", "Lovelace", "+442071234567", nil, "12", "St James's Square", "SW1Y 4JH", "London", "London", "UK"))
			mock.ExpectQuery(`FROM order_items oi JOIN products p ON p.id = oi.product_id WHERE oi.order_id = \$1`).
				WithArgs(int64(100)).
				WillReturnRows(sqlmock.NewRows(orderItemCols).AddRow(int64(1), int64(100), 3, "29.97", int64(11), "Blue Mug", "12.00"))

			// Act
			order, err := repo.GetOrderByID(ctx, 100)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, models.OrderStatusInProgress, order.Status)
			assert.Nil(t, order.Address.ApartmentNumber)
			assert.Equal(t, "Ada", order.Address.FirstName)
			require.Len(t, order.Items, 1)
			assert.True(t, decimal.RequireFromString("29.97").Equal(order.Items[0].TotalPrice), "line total is the stored snapshot")
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewOrderRepo(db)

			mock.ExpectQuery(`FROM orders o`).WillReturnRows(sqlmock.NewRows(orderCols))

			_, err := repo.GetOrderByID(ctx, 100)

			require.ErrorIs(t, err, repository.ErrNotFound)
		})
	})

	t.Run("ListOrders for one customer", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)
		customerID := int64(2)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE \(\$1::BIGINT IS NULL OR customer_id = \$1\)`).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`ORDER BY o.created_at DESC, o.id DESC LIMIT \$2 OFFSET \$3`).
			WithArgs(customerID, 10, 0).
			WillReturnRows(sqlmock.NewRows(orderCols).AddRow(int64(100), int64(2), "completed", "29.97", now, now,
				int64(4), "Ada", "Lovelace", "+442071234567", "3B", "12", "St James's Square", "SW1Y 4JH", "London", "London", "UK"))
		mock.ExpectQuery(`FROM order_items oi`).
			WithArgs(int64(100)).
			WillReturnRows(sqlmock.NewRows(orderItemCols))

		// Act
		orders, total, err := repo.ListOrders(ctx, &customerID, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, orders, 1)
		require.NotNil(t, orders[0].Address.ApartmentNumber)
		assert.Equal(t, "3B", *orders[0].Address.ApartmentNumber)
		assert.Empty(t, orders[0].Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListOrders for everyone", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders`).
			WithArgs(nil).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`FROM orders o`).
			WithArgs(nil, 10, 0).
			WillReturnRows(sqlmock.NewRows(orderCols))

		orders, total, err := repo.ListOrders(ctx, nil, 1, 10)

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LockOrder", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)

		mock.ExpectQuery(`FROM orders WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(100)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "status", "total_price", "created_at", "updated_at"}).
				AddRow(int64(100), int64(2), "issued_for_delivery", "29.97", now, now))

		order, err := repo.LockOrder(ctx, 100)

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusIssuedForDelivery, order.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateOrderStatus", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)
		order := &models.Order{ID: 100, Status: models.OrderStatusCompleted}

		mock.ExpectQuery(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 RETURNING updated_at`).
			WithArgs("completed", int64(100)).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		require.NoError(t, repo.UpdateOrderStatus(ctx, order))
		assert.WithinDuration(t, now, order.UpdatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteOrder", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)

		mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
			WithArgs(int64(100)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteOrder(ctx, 100))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
