package service

import (
	"context"
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

const msgNoAddress = "Customer has no address."

// CustomerService manages the customer record that mirrors each identity and
// its single saved address.
type CustomerService interface {
	GetOrCreateCustomer(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	CreateAddress(ctx context.Context, userID uuid.UUID, address *models.Address) (*models.CustomerAddress, error)
	GetAddress(ctx context.Context, userID uuid.UUID) (*models.CustomerAddress, error)
	UpdateAddress(ctx context.Context, userID uuid.UUID, address *models.Address) (*models.CustomerAddress, error)
	DeleteAddress(ctx context.Context, userID uuid.UUID) error
	DeleteCustomer(ctx context.Context, userID uuid.UUID) error
}

type customerService struct {
	store repository.Store
}

func NewCustomerService(store repository.Store) CustomerService {
	return &customerService{store: store}
}

func (s *customerService) GetOrCreateCustomer(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {

	customer, err := s.store.Customers().EnsureCustomer(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load customer").WithError(err)
	}

	return customer, nil
}

func (s *customerService) CreateAddress(ctx context.Context, userID uuid.UUID, address *models.Address) (*models.CustomerAddress, error) {

	created := &models.CustomerAddress{Address: *address}

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		customer, err := tx.Customers().EnsureCustomer(ctx, userID)
		if err != nil {
			return err
		}

		if customer.Address != nil {
			return appErrors.ConflictError("Customer already has an address.")
		}

		if err := tx.Customers().CreateAddress(ctx, created); err != nil {
			return err
		}

		return tx.Customers().SetCustomerAddress(ctx, customer.ID, &created.ID)
	})
	if err != nil {
		return nil, addressError(err, "Failed to create address")
	}

	return created, nil
}

func (s *customerService) GetAddress(ctx context.Context, userID uuid.UUID) (*models.CustomerAddress, error) {

	customer, err := s.store.Customers().GetCustomerByUserID(ctx, userID)
	if err != nil {
		return nil, storeError(err, msgNoAddress, "Failed to load customer")
	}

	if customer.Address == nil {
		return nil, appErrors.NotFoundError(msgNoAddress)
	}

	return customer.Address, nil
}

func (s *customerService) UpdateAddress(ctx context.Context, userID uuid.UUID, address *models.Address) (*models.CustomerAddress, error) {

	var updated *models.CustomerAddress

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		customer, err := tx.Customers().GetCustomerByUserID(ctx, userID)
		if err != nil {
			return err
		}

		if customer.Address == nil {
			return appErrors.NotFoundError(msgNoAddress)
		}

		updated = &models.CustomerAddress{ID: customer.Address.ID, Address: *address}

		return tx.Customers().UpdateAddress(ctx, updated)
	})
	if err != nil {
		return nil, addressError(err, "Failed to update address")
	}

	return updated, nil
}

// DeleteAddress leaves existing order snapshots untouched; they are separate rows.
func (s *customerService) DeleteAddress(ctx context.Context, userID uuid.UUID) error {

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		customer, err := tx.Customers().GetCustomerByUserID(ctx, userID)
		if err != nil {
			return err
		}

		if customer.Address == nil {
			return appErrors.NotFoundError(msgNoAddress)
		}

		if err := tx.Customers().SetCustomerAddress(ctx, customer.ID, nil); err != nil {
			return err
		}

		return tx.Customers().DeleteAddress(ctx, customer.Address.ID)
	})
	if err != nil {
		return storeError(err, msgNoAddress, "Failed to delete address")
	}

	return nil
}

// DeleteCustomer is refused while the customer has orders.
func (s *customerService) DeleteCustomer(ctx context.Context, userID uuid.UUID) error {

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		customer, err := tx.Customers().GetCustomerByUserID(ctx, userID)
		if err != nil {
			return err
		}

		if err := tx.Customers().DeleteCustomer(ctx, customer.ID); err != nil {
			return err
		}

		if customer.Address != nil {
			return tx.Customers().DeleteAddress(ctx, customer.Address.ID)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return appErrors.ConflictError("Customer can not be deleted because it is associated with one or more orders.").WithError(err)
		}

		return storeError(err, "Customer not found", "Failed to delete customer")
	}

	return nil
}

func addressError(err error, failed string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return appErrors.ConflictError("An address with this phone number already exists.").WithError(err)
	}

	return storeError(err, msgNoAddress, failed)
}
