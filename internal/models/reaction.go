package models

import "github.com/google/uuid"

// TargetKind enumerates the entity types that accept reactions.
type TargetKind string

const (
	TargetProduct TargetKind = "product"
	TargetReview  TargetKind = "review"
)

func (k TargetKind) Valid() bool {
	switch k {
	case TargetProduct, TargetReview:
		return true
	}

	return false
}

// Target is the (kind, id) composite key of a reacted-to entity.
type Target struct {
	Kind TargetKind `json:"target_type"`
	ID   int64      `json:"target_id"`
}

// ReactionLedger separates independent reaction families over the same targets.
type ReactionLedger string

const (
	LedgerLikes ReactionLedger = "likes"
	LedgerVotes ReactionLedger = "votes"
)

func (l ReactionLedger) Valid() bool {
	switch l {
	case LedgerLikes, LedgerVotes:
		return true
	}

	return false
}

type ReactionValue int16

const (
	ReactionDislike ReactionValue = -1
	ReactionLike    ReactionValue = 1
)

func (v ReactionValue) Valid() bool {
	return v == ReactionDislike || v == ReactionLike
}

type Reaction struct {
	ID     int64          `json:"id"`
	Ledger ReactionLedger `json:"ledger"`
	UserID uuid.UUID      `json:"user_id"`
	Target
	Value ReactionValue `json:"value"`
}

type ReactionRequest struct {
	Value ReactionValue `json:"value" validate:"required,oneof=-1 1"`
}

type ReactionSummary struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}
