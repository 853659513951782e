package repository

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

// ReactionRepository stores reactions keyed by (ledger, user, target). The
// one_reaction_per_user constraint is the only guard against duplicates.
type ReactionRepository interface {
	CreateReaction(ctx context.Context, reaction *models.Reaction) error
	GetReaction(ctx context.Context, ledger models.ReactionLedger, userID uuid.UUID, target models.Target) (*models.Reaction, error)
	UpdateReactionValue(ctx context.Context, reaction *models.Reaction) error
	DeleteReaction(ctx context.Context, ledger models.ReactionLedger, userID uuid.UUID, target models.Target) error
	DeleteTargetReactions(ctx context.Context, target models.Target) error
	DeleteProductReviewReactions(ctx context.Context, productID int64) error
	Summarize(ctx context.Context, ledger models.ReactionLedger, target models.Target) (*models.ReactionSummary, error)
}

type reactionRepository struct {
	DB DBTX
}

func NewReactionRepo(db DBTX) ReactionRepository {
	return &reactionRepository{DB: db}
}

// CreateReaction returns ErrDuplicate when the user already reacted to the
// target in this ledger.
func (r *reactionRepository) CreateReaction(ctx context.Context, reaction *models.Reaction) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reactions (ledger, user_id, target_type, target_id, value)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.DB.QueryRowContext(dbCtx, query, reaction.Ledger, reaction.UserID, reaction.Kind, reaction.Target.ID, reaction.Value).Scan(&reaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create reaction: %w", translateError(err))
	}

	return nil
}

func (r *reactionRepository) GetReaction(ctx context.Context, ledger models.ReactionLedger, userID uuid.UUID, target models.Target) (*models.Reaction, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, value FROM reactions
		WHERE ledger = $1 AND user_id = $2 AND target_type = $3 AND target_id = $4
	`

	reaction := &models.Reaction{Ledger: ledger, UserID: userID, Target: target}

	err := r.DB.QueryRowContext(dbCtx, query, ledger, userID, target.Kind, target.ID).Scan(&reaction.ID, &reaction.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to get reaction: %w", translateError(err))
	}

	return reaction, nil
}

// UpdateReactionValue replaces the value of an existing reaction and fills in its id.
func (r *reactionRepository) UpdateReactionValue(ctx context.Context, reaction *models.Reaction) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE reactions SET value = $1
		WHERE ledger = $2 AND user_id = $3 AND target_type = $4 AND target_id = $5
		RETURNING id
	`

	err := r.DB.QueryRowContext(dbCtx, query, reaction.Value, reaction.Ledger, reaction.UserID, reaction.Kind, reaction.Target.ID).Scan(&reaction.ID)
	if err != nil {
		return fmt.Errorf("failed to update reaction: %w", translateError(err))
	}

	return nil
}

func (r *reactionRepository) DeleteReaction(ctx context.Context, ledger models.ReactionLedger, userID uuid.UUID, target models.Target) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM reactions WHERE ledger = $1 AND user_id = $2 AND target_type = $3 AND target_id = $4`

	result, err := r.DB.ExecContext(dbCtx, query, ledger, userID, target.Kind, target.ID)
	if err != nil {
		return fmt.Errorf("failed to delete reaction: %w", translateError(err))
	}

	return expectAffected(result, "reaction on "+string(target.Kind), target.ID)
}

// DeleteTargetReactions drops every reaction in every ledger for target.
func (r *reactionRepository) DeleteTargetReactions(ctx context.Context, target models.Target) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `DELETE FROM reactions WHERE target_type = $1 AND target_id = $2`, target.Kind, target.ID)
	if err != nil {
		return fmt.Errorf("failed to delete reactions: %w", translateError(err))
	}

	return nil
}

func (r *reactionRepository) DeleteProductReviewReactions(ctx context.Context, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM reactions
		WHERE target_type = $1 AND target_id IN (SELECT id FROM reviews WHERE product_id = $2)
	`

	if _, err := r.DB.ExecContext(dbCtx, query, models.TargetReview, productID); err != nil {
		return fmt.Errorf("failed to delete review reactions: %w", translateError(err))
	}

	return nil
}

func (r *reactionRepository) Summarize(ctx context.Context, ledger models.ReactionLedger, target models.Target) (*models.ReactionSummary, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*) FILTER (WHERE value = 1), COUNT(*) FILTER (WHERE value = -1)
		FROM reactions
		WHERE ledger = $1 AND target_type = $2 AND target_id = $3
	`

	summary := &models.ReactionSummary{}

	err := r.DB.QueryRowContext(dbCtx, query, ledger, target.Kind, target.ID).Scan(&summary.Likes, &summary.Dislikes)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize reactions: %w", err)
	}

	return summary, nil
}
