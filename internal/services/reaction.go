package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

// ReactionService keeps at most one reaction per (ledger, user, target). The
// ledger never looks at the target beyond its (kind, id) key; callers resolve
// and validate targets first.
type ReactionService interface {
	CreateReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target, value models.ReactionValue) (*models.Reaction, error)
	GetReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target) (*models.Reaction, error)
	ReplaceReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target, value models.ReactionValue) (*models.Reaction, error)
	DeleteReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target) error
	Summary(ctx context.Context, ledger models.ReactionLedger, target models.Target) (*models.ReactionSummary, error)
}

type reactionService struct {
	store repository.Store
}

func NewReactionService(store repository.Store) ReactionService {
	return &reactionService{store: store}
}

func (s *reactionService) CreateReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target, value models.ReactionValue) (*models.Reaction, error) {

	if err := validateReaction(ledger, target, &value); err != nil {
		return nil, err
	}

	reaction := &models.Reaction{Ledger: ledger, UserID: userID, Target: target, Value: value}

	// The unique constraint decides; a prior existence check would race.
	if err := s.store.Reactions().CreateReaction(ctx, reaction); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.ReactionConflictsTotal.WithLabelValues(string(ledger), string(target.Kind)).Inc()
			middleware.LoggerFromContext(ctx).Info("Duplicate reaction rejected",
				slog.String("ledger", string(ledger)),
				slog.String("targetType", string(target.Kind)),
				slog.Int64("targetId", target.ID),
			)

			return nil, appErrors.ConflictError(conflictMessage(ledger, target.Kind)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to save reaction").WithError(err)
	}

	return reaction, nil
}

func (s *reactionService) GetReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target) (*models.Reaction, error) {

	if err := validateReaction(ledger, target, nil); err != nil {
		return nil, err
	}

	reaction, err := s.store.Reactions().GetReaction(ctx, ledger, userID, target)
	if err != nil {
		return nil, storeError(err, "Reaction not found", "Failed to fetch reaction")
	}

	return reaction, nil
}

func (s *reactionService) ReplaceReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target, value models.ReactionValue) (*models.Reaction, error) {

	if err := validateReaction(ledger, target, &value); err != nil {
		return nil, err
	}

	reaction := &models.Reaction{Ledger: ledger, UserID: userID, Target: target, Value: value}

	if err := s.store.Reactions().UpdateReactionValue(ctx, reaction); err != nil {
		return nil, storeError(err, "Reaction not found", "Failed to update reaction")
	}

	return reaction, nil
}

func (s *reactionService) DeleteReaction(ctx context.Context, userID uuid.UUID, ledger models.ReactionLedger, target models.Target) error {

	if err := validateReaction(ledger, target, nil); err != nil {
		return err
	}

	if err := s.store.Reactions().DeleteReaction(ctx, ledger, userID, target); err != nil {
		return storeError(err, "Reaction not found", "Failed to delete reaction")
	}

	return nil
}

func (s *reactionService) Summary(ctx context.Context, ledger models.ReactionLedger, target models.Target) (*models.ReactionSummary, error) {

	if err := validateReaction(ledger, target, nil); err != nil {
		return nil, err
	}

	summary, err := s.store.Reactions().Summarize(ctx, ledger, target)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to summarize reactions").WithError(err)
	}

	return summary, nil
}

func validateReaction(ledger models.ReactionLedger, target models.Target, value *models.ReactionValue) error {
	if !ledger.Valid() {
		return appErrors.NotFoundError(fmt.Sprintf("Unknown reaction ledger %q", ledger))
	}

	if !target.Kind.Valid() || target.ID <= 0 {
		return appErrors.BadRequestError("Invalid reaction target")
	}

	if value != nil && !value.Valid() {
		return appErrors.AddValidationError("value", "must be 1 or -1")
	}

	return nil
}

func conflictMessage(ledger models.ReactionLedger, kind models.TargetKind) string {
	if ledger == models.LedgerVotes {
		return fmt.Sprintf("You have already voted on this %s.", kind)
	}

	return fmt.Sprintf("You have already liked or disliked this %s.", kind)
}
