package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements are idempotent. The unique and foreign key constraints
// carry the correctness of the cart, order and reaction invariants, so they
// live in the database rather than in application checks.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS collections (
		id    BIGSERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id            BIGSERIAL PRIMARY KEY,
		title         VARCHAR(255) NOT NULL,
		slug          VARCHAR(255) NOT NULL UNIQUE,
		description   TEXT NOT NULL DEFAULT '',
		unit_price    NUMERIC(10, 2) NOT NULL CHECK (unit_price >= 0),
		inventory     INTEGER NOT NULL CHECK (inventory >= 0),
		collection_id BIGINT NOT NULL REFERENCES collections (id) ON DELETE RESTRICT,
		last_update   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id         BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
		author_id  UUID NOT NULL,
		rating     SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 10),
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT one_review_for_product_per_user UNIQUE (product_id, author_id)
	)`,
	`CREATE TABLE IF NOT EXISTS customer_addresses (
		id               BIGSERIAL PRIMARY KEY,
		first_name       VARCHAR(255) NOT NULL,
		last_name        VARCHAR(255) NOT NULL,
		phone_number     VARCHAR(32) NOT NULL UNIQUE,
		apartment_number VARCHAR(50),
		street_number    VARCHAR(50) NOT NULL,
		street           VARCHAR(255) NOT NULL,
		postal_code      VARCHAR(10) NOT NULL,
		city             VARCHAR(255) NOT NULL,
		state            VARCHAR(255) NOT NULL,
		country          VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id         BIGSERIAL PRIMARY KEY,
		user_id    UUID NOT NULL UNIQUE,
		address_id BIGINT UNIQUE REFERENCES customer_addresses (id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_addresses (
		id               BIGSERIAL PRIMARY KEY,
		fingerprint      CHAR(64) NOT NULL UNIQUE,
		first_name       VARCHAR(255) NOT NULL,
		last_name        VARCHAR(255) NOT NULL,
		phone_number     VARCHAR(32) NOT NULL,
		apartment_number VARCHAR(50),
		street_number    VARCHAR(50) NOT NULL,
		street           VARCHAR(255) NOT NULL,
		postal_code      VARCHAR(10) NOT NULL,
		city             VARCHAR(255) NOT NULL,
		state            VARCHAR(255) NOT NULL,
		country          VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS carts (
		id          UUID PRIMARY KEY,
		total_price NUMERIC(12, 2) NOT NULL DEFAULT 0,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id          BIGSERIAL PRIMARY KEY,
		cart_id     UUID NOT NULL REFERENCES carts (id) ON DELETE CASCADE,
		product_id  BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
		quantity    INTEGER NOT NULL CHECK (quantity >= 1),
		total_price NUMERIC(12, 2) NOT NULL,
		CONSTRAINT one_product_per_cart UNIQUE (cart_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers (id) ON DELETE RESTRICT,
		address_id  BIGINT NOT NULL REFERENCES order_addresses (id) ON DELETE RESTRICT,
		status      VARCHAR(32) NOT NULL DEFAULT 'in_progress'
			CHECK (status IN ('in_progress', 'issued_for_delivery', 'completed')),
		total_price NUMERIC(12, 2) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id          BIGSERIAL PRIMARY KEY,
		order_id    BIGINT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		product_id  BIGINT NOT NULL REFERENCES products (id) ON DELETE RESTRICT,
		quantity    INTEGER NOT NULL CHECK (quantity >= 1),
		total_price NUMERIC(12, 2) NOT NULL,
		CONSTRAINT one_product_per_order UNIQUE (order_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reactions (
		id          BIGSERIAL PRIMARY KEY,
		ledger      VARCHAR(16) NOT NULL CHECK (ledger IN ('likes', 'votes')),
		user_id     UUID NOT NULL,
		target_type VARCHAR(16) NOT NULL CHECK (target_type IN ('product', 'review')),
		target_id   BIGINT NOT NULL,
		value       SMALLINT NOT NULL CHECK (value IN (-1, 1)),
		CONSTRAINT one_reaction_per_user UNIQUE (ledger, user_id, target_type, target_id)
	)`,
	`CREATE INDEX IF NOT EXISTS reactions_target_idx ON reactions (target_type, target_id)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id            UUID PRIMARY KEY,
		type          VARCHAR(16) NOT NULL,
		recipient     VARCHAR(255) NOT NULL,
		subject       VARCHAR(255) NOT NULL DEFAULT '',
		content       TEXT NOT NULL,
		status        VARCHAR(16) NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		metadata      JSONB,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates any missing tables, constraints and indexes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}
