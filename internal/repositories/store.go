package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same repository code
// runs inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store hands out repositories bound to one connection or transaction.
type Store interface {
	Products() ProductRepository
	Collections() CollectionRepository
	Reviews() ReviewRepository
	Carts() CartRepository
	Customers() CustomerRepository
	Orders() OrderRepository
	Reactions() ReactionRepository

	// WithTx runs fn as one atomic unit. A non-nil error from fn rolls the
	// whole unit back. Serialization failures and deadlocks rerun fn from
	// the start, up to the configured retry budget. Calling WithTx on a
	// Store that is already transactional joins the open transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type sqlStore struct {
	db         *sql.DB
	q          DBTX
	inTx       bool
	maxRetries int
}

func NewStore(db *sql.DB, maxRetries int) Store {
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &sqlStore{db: db, q: db, maxRetries: maxRetries}
}

func (s *sqlStore) Products() ProductRepository       { return NewProductRepo(s.q) }
func (s *sqlStore) Collections() CollectionRepository { return NewCollectionRepo(s.q) }
func (s *sqlStore) Reviews() ReviewRepository         { return NewReviewRepo(s.q) }
func (s *sqlStore) Carts() CartRepository             { return NewCartRepo(s.q) }
func (s *sqlStore) Customers() CustomerRepository     { return NewCustomerRepo(s.q) }
func (s *sqlStore) Orders() OrderRepository           { return NewOrderRepo(s.q) }
func (s *sqlStore) Reactions() ReactionRepository     { return NewReactionRepo(s.q) }

func (s *sqlStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}

	logger := middleware.LoggerFromContext(ctx)

	var err error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err = s.runTx(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}

		if ctx.Err() != nil {
			return err
		}

		logger.Warn("Transaction aborted by the database, retrying",
			slog.Int("attempt", attempt+1),
			slog.Int("maxRetries", s.maxRetries),
			slog.String("error", err.Error()),
		)
	}

	return err
}

func (s *sqlStore) runTx(ctx context.Context, fn func(tx Store) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&sqlStore{db: s.db, q: tx, inTx: true, maxRetries: s.maxRetries}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
