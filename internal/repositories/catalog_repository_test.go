package repository_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRepository(t *testing.T) {
	ctx := t.Context()

	t.Run("CreateCollection", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCollectionRepo(db)
		collection := &models.Collection{Title: "Kitchen"}

		mock.ExpectQuery(`INSERT INTO collections \(title\) VALUES \(\$1\) RETURNING id`).
			WithArgs("Kitchen").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

		require.NoError(t, repo.CreateCollection(ctx, collection))
		assert.Equal(t, int64(4), collection.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetCollection counts products", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCollectionRepo(db)

		mock.ExpectQuery(`LEFT JOIN products p ON p.collection_id = c.id WHERE c.id = \$1`).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "count"}).AddRow(int64(4), "Kitchen", 7))

		collection, err := repo.GetCollection(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 7, collection.ProductsCount)
	})

	t.Run("ListCollections", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCollectionRepo(db)

		mock.ExpectQuery(`GROUP BY c.id, c.title ORDER BY c.title`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "count"}).
				AddRow(int64(1), "Garden", 0).
				AddRow(int64(4), "Kitchen", 7))

		collections, err := repo.ListCollections(ctx)

		require.NoError(t, err)
		require.Len(t, collections, 2)
		assert.Equal(t, "Garden", collections[0].Title)
	})

	t.Run("DeleteCollection with products", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCollectionRepo(db)

		mock.ExpectExec(`DELETE FROM collections WHERE id = \$1`).
			WithArgs(int64(4)).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "products_collection_id_fkey"})

		require.ErrorIs(t, repo.DeleteCollection(ctx, 4), repository.ErrReferenced)
	})

	t.Run("DeleteCollection missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCollectionRepo(db)

		mock.ExpectExec(`DELETE FROM collections`).WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.DeleteCollection(ctx, 4), repository.ErrNotFound)
	})
}

func TestReviewRepository(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	reviewCols := []string{"id", "product_id", "author_id", "rating", "content", "created_at"}

	t.Run("CreateReview", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewReviewRepo(db)
			review := &models.Review{ProductID: 11, AuthorID: testUserID, Rating: 8, Content: "Sturdy and sharp"}

			mock.ExpectQuery(`INSERT INTO reviews \(product_id, author_id, rating, content\)`).
				WithArgs(int64(11), testUserID, 8, "Sturdy and sharp").
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

			require.NoError(t, repo.CreateReview(ctx, review))
			assert.Equal(t, int64(3), review.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Second review by the same author", func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewReviewRepo(db)

			mock.ExpectQuery(`INSERT INTO reviews`).
				WillReturnError(&pq.Error{Code: "23505", Constraint: "one_review_for_product_per_user"})

			err := repo.CreateReview(ctx, &models.Review{ProductID: 11, AuthorID: testUserID})

			require.ErrorIs(t, err, repository.ErrDuplicate)
		})
	})

	t.Run("GetReview scoped to product", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReviewRepo(db)

		mock.ExpectQuery(`FROM reviews WHERE product_id = \$1 AND id = \$2`).
			WithArgs(int64(12), int64(3)).
			WillReturnRows(sqlmock.NewRows(reviewCols))

		_, err := repo.GetReview(ctx, 12, 3)

		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("ListReviews", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReviewRepo(db)

		mock.ExpectQuery(`FROM reviews WHERE product_id = \$1 ORDER BY created_at DESC, id DESC`).
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows(reviewCols).AddRow(int64(3), int64(11), testUserID.String(), 8, "Sturdy and sharp", now))

		reviews, err := repo.ListReviews(ctx, 11)

		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, testUserID, reviews[0].AuthorID)
	})

	t.Run("DeleteReview", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReviewRepo(db)

		mock.ExpectExec(`DELETE FROM reviews WHERE product_id = \$1 AND id = \$2`).
			WithArgs(int64(11), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteReview(ctx, 11, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
