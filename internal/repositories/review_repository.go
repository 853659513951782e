package repository

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, productID, id int64) (*models.Review, error)
	ListReviews(ctx context.Context, productID int64) ([]*models.Review, error)
	DeleteReview(ctx context.Context, productID, id int64) error
}

type reviewRepository struct {
	DB DBTX
}

func NewReviewRepo(db DBTX) ReviewRepository {
	return &reviewRepository{DB: db}
}

// CreateReview returns ErrDuplicate when the author already reviewed the product.
func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (product_id, author_id, rating, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, review.ProductID, review.AuthorID, review.Rating, review.Content).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", translateError(err))
	}

	return nil
}

func (r *reviewRepository) GetReview(ctx context.Context, productID, id int64) (*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, author_id, rating, content, created_at
		FROM reviews
		WHERE product_id = $1 AND id = $2
	`

	review := &models.Review{}

	err := r.DB.QueryRowContext(dbCtx, query, productID, id).Scan(&review.ID, &review.ProductID, &review.AuthorID, &review.Rating, &review.Content, &review.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get review %d: %w", id, translateError(err))
	}

	return review, nil
}

func (r *reviewRepository) ListReviews(ctx context.Context, productID int64) ([]*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, author_id, rating, content, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	defer rows.Close()

	reviews := []*models.Review{}

	for rows.Next() {
		review := &models.Review{}

		if err := rows.Scan(&review.ID, &review.ProductID, &review.AuthorID, &review.Rating, &review.Content, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) DeleteReview(ctx context.Context, productID, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM reviews WHERE product_id = $1 AND id = $2`, productID, id)
	if err != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, translateError(err))
	}

	return expectAffected(result, "review", id)
}
