package service_test

import (
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	testUserID = uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e7f-90a1b2c3d4e5")
	testCartID = uuid.MustParse("1a2b3c4d-5e6f-4a1b-9c2d-3e4f5a6b7c8d")
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testClaims() *models.Claims {
	return &models.Claims{UserID: testUserID, Email: "ada@example.com", Name: "Ada Lovelace"}
}

func adminClaims() *models.Claims {
	return &models.Claims{UserID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin}
}

func testProduct(id int64, inventory int, unitPrice string) *models.Product {
	return &models.Product{
		ID:           id,
		Title:        "Chef knife",
		Slug:         "chef-knife",
		UnitPrice:    price(unitPrice),
		Inventory:    inventory,
		CollectionID: 1,
	}
}

func cartLine(id, productID int64, quantity int, unitPrice string) models.CartItem {
	unit := price(unitPrice)

	return models.CartItem{
		ID:         id,
		CartID:     testCartID,
		Product:    models.SimpleProduct{ID: productID, Title: "Chef knife", UnitPrice: unit},
		Quantity:   quantity,
		TotalPrice: unit.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

func testCustomer(withAddress bool) *models.Customer {
	customer := &models.Customer{ID: 2, UserID: testUserID}

	if withAddress {
		customer.Address = &models.CustomerAddress{
			ID: 9,
			Address: models.Address{
				FirstName:    "Ada",
				LastName:     "Lovelace",
				PhoneNumber:  "+442071234567",
				StreetNumber: "12",
				Street:       "St James's Square",
				PostalCode:   "SW1Y 4JH",
				City:         "London",
				State:        "London",
				Country:      "UK",
			},
		}
	}

	return customer
}
