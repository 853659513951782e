package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type CustomerRepository interface {
	EnsureCustomer(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	CreateAddress(ctx context.Context, address *models.CustomerAddress) error
	SetCustomerAddress(ctx context.Context, customerID int64, addressID *int64) error
	UpdateAddress(ctx context.Context, address *models.CustomerAddress) error
	DeleteAddress(ctx context.Context, addressID int64) error
	DeleteCustomer(ctx context.Context, customerID int64) error
}

type customerRepository struct {
	DB DBTX
}

func NewCustomerRepo(db DBTX) CustomerRepository {
	return &customerRepository{DB: db}
}

const addressColumns = `first_name, last_name, phone_number, apartment_number, street_number, street, postal_code, city, state, country`

func addressArgs(a *models.Address) []any {
	return []any{a.FirstName, a.LastName, a.PhoneNumber, a.ApartmentNumber, a.StreetNumber, a.Street, a.PostalCode, a.City, a.State, a.Country}
}

// scanAddress reads an id column followed by addressColumns.
func scanAddress(row rowScanner, id *int64, a *models.Address) error {
	var apartment sql.NullString

	err := row.Scan(id, &a.FirstName, &a.LastName, &a.PhoneNumber, &apartment, &a.StreetNumber, &a.Street, &a.PostalCode, &a.City, &a.State, &a.Country)
	if err != nil {
		return err
	}

	a.ApartmentNumber = nullableString(apartment)

	return nil
}

// EnsureCustomer returns the customer for userID, creating it on first use.
// Concurrent first calls converge on the same row through the unique user_id.
func (r *customerRepository) EnsureCustomer(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `INSERT INTO customers (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", translateError(err))
	}

	return r.GetCustomerByUserID(ctx, userID)
}

func (r *customerRepository) GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	customer := &models.Customer{}

	var addressID sql.NullInt64

	err := r.DB.QueryRowContext(dbCtx, `SELECT id, user_id, address_id FROM customers WHERE user_id = $1`, userID).Scan(&customer.ID, &customer.UserID, &addressID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", translateError(err))
	}

	if !addressID.Valid {
		return customer, nil
	}

	address := &models.CustomerAddress{}

	err = scanAddress(r.DB.QueryRowContext(dbCtx, `SELECT id, `+addressColumns+` FROM customer_addresses WHERE id = $1`, addressID.Int64), &address.ID, &address.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer address: %w", translateError(err))
	}

	customer.Address = address

	return customer, nil
}

// CreateAddress returns ErrDuplicate when the phone number is already used by
// another saved address.
func (r *customerRepository) CreateAddress(ctx context.Context, address *models.CustomerAddress) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO customer_addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.DB.QueryRowContext(dbCtx, query, addressArgs(&address.Address)...).Scan(&address.ID)
	if err != nil {
		return fmt.Errorf("failed to create address: %w", translateError(err))
	}

	return nil
}

func (r *customerRepository) SetCustomerAddress(ctx context.Context, customerID int64, addressID *int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE customers SET address_id = $1 WHERE id = $2`, addressID, customerID)
	if err != nil {
		return fmt.Errorf("failed to set customer address: %w", translateError(err))
	}

	return expectAffected(result, "customer", customerID)
}

func (r *customerRepository) UpdateAddress(ctx context.Context, address *models.CustomerAddress) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE customer_addresses
		SET first_name = $1, last_name = $2, phone_number = $3, apartment_number = $4, street_number = $5,
			street = $6, postal_code = $7, city = $8, state = $9, country = $10
		WHERE id = $11
	`

	args := append(addressArgs(&address.Address), address.ID)

	result, err := r.DB.ExecContext(dbCtx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", translateError(err))
	}

	return expectAffected(result, "address", address.ID)
}

func (r *customerRepository) DeleteAddress(ctx context.Context, addressID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM customer_addresses WHERE id = $1`, addressID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", translateError(err))
	}

	return expectAffected(result, "address", addressID)
}

// DeleteCustomer fails with ErrReferenced while the customer has orders.
func (r *customerRepository) DeleteCustomer(ctx context.Context, customerID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", translateError(err))
	}

	return expectAffected(result, "customer", customerID)
}
