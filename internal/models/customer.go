package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Address holds the shipping fields shared by customer and order addresses.
type Address struct {
	FirstName       string  `json:"first_name" validate:"required,max=255"`
	LastName        string  `json:"last_name" validate:"required,max=255"`
	PhoneNumber     string  `json:"phone_number" validate:"required,e164"`
	ApartmentNumber *string `json:"apartment_number,omitempty" validate:"omitempty,max=50"`
	StreetNumber    string  `json:"street_number" validate:"required,max=50"`
	Street          string  `json:"street" validate:"required,max=255"`
	PostalCode      string  `json:"postal_code" validate:"required,max=10"`
	City            string  `json:"city" validate:"required,max=255"`
	State           string  `json:"state" validate:"required,max=255"`
	Country         string  `json:"country" validate:"required,max=255"`
}

// Fingerprint identifies an address by its full field tuple.
func (a Address) Fingerprint() string {
	apartment := ""
	if a.ApartmentNumber != nil {
		apartment = *a.ApartmentNumber
	}

	fields := []string{
		a.FirstName, a.LastName, a.PhoneNumber, apartment, a.StreetNumber,
		a.Street, a.PostalCode, a.City, a.State, a.Country,
	}

	sum := sha256.Sum256([]byte(strings.Join(fields, "\x1f")))

	return hex.EncodeToString(sum[:])
}

type CustomerAddress struct {
	ID int64 `json:"id"`
	Address
}

type Customer struct {
	ID      int64            `json:"id"`
	UserID  uuid.UUID        `json:"user_id"`
	Address *CustomerAddress `json:"address,omitempty"`
}
