package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ReactionRepository struct {
	mock.Mock
}

func (m *ReactionRepository) CreateReaction(ctx context.Context, reaction *models.Reaction) error {
	return m.Called(ctx, reaction).Error(0)
}

func (m *ReactionRepository) GetReaction(ctx context.Context, ledger models.ReactionLedger, userID uuid.UUID, target models.Target) (*models.Reaction, error) {
	args := m.Called(ctx, ledger, userID, target)
	if r := args.Get(0); r != nil {
		return r.(*models.Reaction), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ReactionRepository) UpdateReactionValue(ctx context.Context, reaction *models.Reaction) error {
	return m.Called(ctx, reaction).Error(0)
}

func (m *ReactionRepository) DeleteReaction(ctx context.Context, ledger models.ReactionLedger, userID uuid.UUID, target models.Target) error {
	return m.Called(ctx, ledger, userID, target).Error(0)
}

func (m *ReactionRepository) DeleteTargetReactions(ctx context.Context, target models.Target) error {
	return m.Called(ctx, target).Error(0)
}

func (m *ReactionRepository) DeleteProductReviewReactions(ctx context.Context, productID int64) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *ReactionRepository) Summarize(ctx context.Context, ledger models.ReactionLedger, target models.Target) (*models.ReactionSummary, error) {
	args := m.Called(ctx, ledger, target)
	if s := args.Get(0); s != nil {
		return s.(*models.ReactionSummary), args.Error(1)
	}

	return nil, args.Error(1)
}
