package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB            *sql.DB
	Store         Store
	Notifications NotificationRepository
}

// Open returns a traced postgres handle configured from cfg.
func Open(cfg *config.Database) (*sql.DB, error) {
	db, err := otelsql.Open("postgres", cfg.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func New(ctx context.Context, cfg *config.Config) (*Repository, error) {

	db, err := Open(&cfg.Database)
	if err != nil {
		return nil, err
	}

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Repository{
		DB:            db,
		Store:         NewStore(db, cfg.Checkout.MaxTxRetries),
		Notifications: NewNotificationRepo(db),
	}, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
