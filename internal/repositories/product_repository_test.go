package repository_test

import (
	"errors"
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

var productCols = []string{"id", "title", "slug", "description", "unit_price", "inventory", "collection_id", "last_update"}

func TestNewProductRepo(t *testing.T) {
	db, _ := newMockDB(t)

	repo := repository.NewProductRepo(db)
	assert.NotNil(t, repo, "NewProductRepo should return a non-nil repository")
}

func TestProductRepository(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	t.Run("CreateProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewProductRepo(db)
			product := &models.Product{
				Title:        "Blue Mug",
				Slug:         "blue-mug",
				UnitPrice:    decimal.RequireFromString("9.99"),
				Inventory:    5,
				CollectionID: 3,
			}

			mock.ExpectQuery(`INSERT INTO products \(title, slug, description, unit_price, inventory, collection_id\)`).
				WithArgs("Blue Mug", "blue-mug", "", product.UnitPrice, 5, int64(3)).
				WillReturnRows(sqlmock.NewRows([]string{"id", "last_update"}).AddRow(int64(11), now))

			// Act
			err := repo.CreateProduct(ctx, product)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, int64(11), product.ID)
			assert.WithinDuration(t, now, product.LastUpdate, time.Second)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Duplicate slug", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewProductRepo(db)

			mock.ExpectQuery(`INSERT INTO products`).
				WillReturnError(&pq.Error{Code: "23505", Constraint: "products_slug_key"})

			// Act
			err := repo.CreateProduct(ctx, &models.Product{Title: "Mug", Slug: "mug"})

			// Assert
			require.ErrorIs(t, err, repository.ErrDuplicate)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetProductByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewProductRepo(db)

			mock.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
				WithArgs(int64(11)).
				WillReturnRows(sqlmock.NewRows(productCols).AddRow(int64(11), "Blue Mug", "blue-mug", "", "9.99", 5, int64(3), now))

			// Act
			product, err := repo.GetProductByID(ctx, 11)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "Blue Mug", product.Title)
			assert.True(t, decimal.RequireFromString("9.99").Equal(product.UnitPrice))
			assert.Equal(t, 5, product.Inventory)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewProductRepo(db)

			mock.ExpectQuery(`FROM products WHERE id = \$1`).
				WithArgs(int64(99)).
				WillReturnRows(sqlmock.NewRows(productCols))

			// Act
			product, err := repo.GetProductByID(ctx, 99)

			// Assert
			require.ErrorIs(t, err, repository.ErrNotFound)
			assert.Nil(t, product)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetProductBySlug", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewProductRepo(db)

		mock.ExpectQuery(`FROM products WHERE slug = \$1`).
			WithArgs("blue-mug").
			WillReturnRows(sqlmock.NewRows(productCols).AddRow(int64(11), "Blue Mug", "blue-mug", "", "9.99", 5, int64(3), now))

		// Act
		product, err := repo.GetProductBySlug(ctx, "blue-mug")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(11), product.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListProducts", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewProductRepo(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(`FROM products ORDER BY title, id LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 10).
			WillReturnRows(sqlmock.NewRows(productCols).
				AddRow(int64(1), "A", "a", "", "1.00", 1, int64(1), now).
				AddRow(int64(2), "B", "b", "", "2.00", 0, int64(1), now))

		// Act
		products, total, err := repo.ListProducts(ctx, 2, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Len(t, products, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateProduct", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewProductRepo(db)
		product := &models.Product{ID: 11, Title: "Mug", Slug: "mug", UnitPrice: decimal.RequireFromString("12.50"), CollectionID: 3}

		mock.ExpectQuery(`UPDATE products SET title = \$1, slug = \$2`).
			WithArgs("Mug", "mug", "", product.UnitPrice, int64(3), int64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"inventory", "last_update"}).AddRow(4, now))

		// Act
		err := repo.UpdateProduct(ctx, product)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 4, product.Inventory)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewProductRepo(db)

			mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).WithArgs(int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, repo.DeleteProduct(ctx, 11))
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Referenced by orders", func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewProductRepo(db)

			mock.ExpectExec(`DELETE FROM products`).WillReturnError(&pq.Error{Code: "23503", Constraint: "order_items_product_id_fkey"})

			err := repo.DeleteProduct(ctx, 11)

			require.ErrorIs(t, err, repository.ErrReferenced)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewProductRepo(db)

			mock.ExpectExec(`DELETE FROM products`).WillReturnResult(sqlmock.NewResult(0, 0))

			require.ErrorIs(t, repo.DeleteProduct(ctx, 11), repository.ErrNotFound)
		})
	})

	t.Run("DebitInventory", func(t *testing.T) {
		debitSQL := `UPDATE products SET inventory = inventory - \$1, last_update = NOW\(\) WHERE id = \$2 AND inventory >= \$1`

		t.Run("Success", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewProductRepo(db)

			mock.ExpectQuery(debitSQL).
				WithArgs(3, int64(11)).
				WillReturnRows(sqlmock.NewRows([]string{"inventory"}).AddRow(0))

			// Act
			remaining, err := repo.DebitInventory(ctx, 11, 3)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, 0, remaining)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Insufficient stock", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewProductRepo(db)

			mock.ExpectQuery(debitSQL).
				WithArgs(3, int64(11)).
				WillReturnRows(sqlmock.NewRows([]string{"inventory"}))
			mock.ExpectQuery(`SELECT inventory FROM products WHERE id = \$1`).
				WithArgs(int64(11)).
				WillReturnRows(sqlmock.NewRows([]string{"inventory"}).AddRow(2))

			// Act
			current, err := repo.DebitInventory(ctx, 11, 3)

			// Assert
			require.ErrorIs(t, err, repository.ErrInsufficientStock)
			assert.Equal(t, 2, current)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Unknown product", func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := repository.NewProductRepo(db)

			mock.ExpectQuery(debitSQL).WillReturnRows(sqlmock.NewRows([]string{"inventory"}))
			mock.ExpectQuery(`SELECT inventory FROM products`).WillReturnRows(sqlmock.NewRows([]string{"inventory"}))

			// Act
			_, err := repo.DebitInventory(ctx, 11, 3)

			// Assert
			require.ErrorIs(t, err, repository.ErrNotFound)
			assert.False(t, errors.Is(err, repository.ErrInsufficientStock))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("CreditInventory", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewProductRepo(db)

		mock.ExpectQuery(`UPDATE products SET inventory = inventory \+ \$1`).
			WithArgs(2, int64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"inventory"}).AddRow(7))

		updated, err := repo.CreditInventory(ctx, 11, 2)

		require.NoError(t, err)
		assert.Equal(t, 7, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SetInventory", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewProductRepo(db)

		mock.ExpectExec(`UPDATE products SET inventory = \$1`).
			WithArgs(0, int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetInventory(ctx, 11, 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
