package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ReviewService struct {
	mock.Mock
}

func (m *ReviewService) CreateReview(ctx context.Context, claims *models.Claims, productIdentifier string, req *models.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, claims, productIdentifier, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *ReviewService) GetReview(ctx context.Context, productIdentifier string, reviewID int64) (*models.Review, error) {
	args := m.Called(ctx, productIdentifier, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *ReviewService) ListReviews(ctx context.Context, productIdentifier string) ([]*models.Review, error) {
	args := m.Called(ctx, productIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Review), args.Error(1)
}

func (m *ReviewService) DeleteReview(ctx context.Context, claims *models.Claims, productIdentifier string, reviewID int64) error {
	return m.Called(ctx, claims, productIdentifier, reviewID).Error(0)
}

type TargetResolver struct {
	mock.Mock
}

func (m *TargetResolver) ResolveProduct(ctx context.Context, identifier string) (int64, error) {
	args := m.Called(ctx, identifier)

	return args.Get(0).(int64), args.Error(1)
}

func (m *TargetResolver) ProductTarget(ctx context.Context, identifier string) (models.Target, error) {
	args := m.Called(ctx, identifier)

	return args.Get(0).(models.Target), args.Error(1)
}

func (m *TargetResolver) ReviewTarget(ctx context.Context, productIdentifier string, reviewID int64) (models.Target, error) {
	args := m.Called(ctx, productIdentifier, reviewID)

	return args.Get(0).(models.Target), args.Error(1)
}

type ReactionService struct {
	mock.Mock
}

func (m *ReactionService) CreateReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target, value models.ReactionValue) (*models.Reaction, error) {
	args := m.Called(ctx, userID, ledger, target, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *ReactionService) GetReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target) (*models.Reaction, error) {
	args := m.Called(ctx, userID, ledger, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *ReactionService) ReplaceReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target, value models.ReactionValue) (*models.Reaction, error) {
	args := m.Called(ctx, userID, ledger, target, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *ReactionService) DeleteReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target) error {
	return m.Called(ctx, userID, ledger, target).Error(0)
}

func (m *ReactionService) Summary(ctx context.Context, ledger models.ReactionLedger, target models.Target) (*models.ReactionSummary, error) {
	args := m.Called(ctx, ledger, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ReactionSummary), args.Error(1)
}
