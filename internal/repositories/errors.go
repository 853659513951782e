package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrReferenced        = errors.New("record is referenced by other records")
	ErrConstraint        = errors.New("constraint violation")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Postgres SQLSTATE codes the repositories care about.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// translateError maps driver errors onto the package sentinels while keeping
// the original error in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w (%s): %w", ErrDuplicate, pqErr.Constraint, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w (%s): %w", ErrReferenced, pqErr.Constraint, err)
		case pgCheckViolation:
			return fmt.Errorf("%w (%s): %w", ErrConstraint, pqErr.Constraint, err)
		}
	}

	return err
}

// IsRetryable reports whether err aborted a transaction that can be run again
// as a whole.
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code == pgSerializationFailure || pqErr.Code == pgDeadlockDetected
}

// ConstraintName returns the violated constraint carried by err, if any.
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}

	return ""
}
