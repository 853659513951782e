package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

// TargetResolver turns the identifiers found in a request path into reaction
// targets, failing with NOT_FOUND when the entity does not exist.
type TargetResolver interface {
	ResolveProduct(ctx context.Context, identifier string) (int64, error)
	ProductTarget(ctx context.Context, identifier string) (models.Target, error)
	// ReviewTarget only resolves reviews that belong to the identified product.
	ReviewTarget(ctx context.Context, productIdentifier string, reviewID int64) (models.Target, error)
}

type targetResolver struct {
	store    repository.Store
	products ProductService
}

func NewTargetResolver(store repository.Store, products ProductService) TargetResolver {
	return &targetResolver{store: store, products: products}
}

func (r *targetResolver) ResolveProduct(ctx context.Context, identifier string) (int64, error) {
	product, err := r.products.GetProduct(ctx, identifier)
	if err != nil {
		return 0, err
	}

	return product.ID, nil
}

func (r *targetResolver) ProductTarget(ctx context.Context, identifier string) (models.Target, error) {
	id, err := r.ResolveProduct(ctx, identifier)
	if err != nil {
		return models.Target{}, err
	}

	return models.Target{Kind: models.TargetProduct, ID: id}, nil
}

func (r *targetResolver) ReviewTarget(ctx context.Context, productIdentifier string, reviewID int64) (models.Target, error) {
	productID, err := r.ResolveProduct(ctx, productIdentifier)
	if err != nil {
		return models.Target{}, err
	}

	review, err := r.store.Reviews().GetReview(ctx, productID, reviewID)
	if err != nil {
		return models.Target{}, storeError(err, msgReviewNotFound, "Failed to fetch review")
	}

	return models.Target{Kind: models.TargetReview, ID: review.ID}, nil
}
