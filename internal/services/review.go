package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

const (
	msgReviewNotFound = "No review with the given ID was found."
	minReviewLength   = 10
)

type ReviewService interface {
	CreateReview(ctx context.Context, claims *models.Claims, productIdentifier string, req *models.CreateReviewRequest) (*models.Review, error)
	GetReview(ctx context.Context, productIdentifier string, reviewID int64) (*models.Review, error)
	ListReviews(ctx context.Context, productIdentifier string) ([]*models.Review, error)
	// DeleteReview is allowed for the author and for admins.
	DeleteReview(ctx context.Context, claims *models.Claims, productIdentifier string, reviewID int64) error
}

type reviewService struct {
	store    repository.Store
	resolver TargetResolver
	policy   *bluemonday.Policy
}

func NewReviewService(store repository.Store, resolver TargetResolver) ReviewService {
	return &reviewService{store: store, resolver: resolver, policy: bluemonday.StrictPolicy()}
}

func (s *reviewService) CreateReview(ctx context.Context, claims *models.Claims, productIdentifier string, req *models.CreateReviewRequest) (*models.Review, error) {

	content := strings.TrimSpace(s.policy.Sanitize(req.Content))
	if utf8.RuneCountInString(content) < minReviewLength {
		return nil, appErrors.AddValidationError("content", "must contain at least 10 characters of text")
	}

	productID, err := s.resolver.ResolveProduct(ctx, productIdentifier)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID: productID,
		AuthorID:  claims.UserID,
		Rating:    req.Rating,
		Content:   content,
	}

	if err := s.store.Reviews().CreateReview(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.ConflictError("You have already reviewed this product.").WithError(err)
		}

		return nil, storeError(err, msgProductNotFound, "Failed to create review")
	}

	return review, nil
}

func (s *reviewService) GetReview(ctx context.Context, productIdentifier string, reviewID int64) (*models.Review, error) {

	productID, err := s.resolver.ResolveProduct(ctx, productIdentifier)
	if err != nil {
		return nil, err
	}

	review, err := s.store.Reviews().GetReview(ctx, productID, reviewID)
	if err != nil {
		return nil, storeError(err, msgReviewNotFound, "Failed to fetch review")
	}

	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, productIdentifier string) ([]*models.Review, error) {

	productID, err := s.resolver.ResolveProduct(ctx, productIdentifier)
	if err != nil {
		return nil, err
	}

	reviews, err := s.store.Reviews().ListReviews(ctx, productID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	return reviews, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, claims *models.Claims, productIdentifier string, reviewID int64) error {

	productID, err := s.resolver.ResolveProduct(ctx, productIdentifier)
	if err != nil {
		return err
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		review, err := tx.Reviews().GetReview(ctx, productID, reviewID)
		if err != nil {
			return err
		}

		if !claims.IsAdmin() && review.AuthorID != claims.UserID {
			return appErrors.ForbiddenError("You can only delete your own reviews.")
		}

		if err := tx.Reactions().DeleteTargetReactions(ctx, models.Target{Kind: models.TargetReview, ID: review.ID}); err != nil {
			return err
		}

		return tx.Reviews().DeleteReview(ctx, productID, reviewID)
	})
	if err != nil {
		return storeError(err, msgReviewNotFound, "Failed to delete review")
	}

	return nil
}
