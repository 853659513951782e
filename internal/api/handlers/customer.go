package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// CustomerHandler serves the authenticated user's customer profile and its
// single shipping address under /customers/me.
type CustomerHandler struct {
	customerService service.CustomerService
	validator       *validator.Validate
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, validator: validator.New()}
}

// GetProfile godoc
//	@Summary	Get the caller's customer profile
//	@Tags		Customers
//	@Produce	json
//	@Success	200	{object}	models.Customer			"Customer"
//	@Failure	401	{object}	response.ErrorResponse	"Authentication required"
//	@Security	BearerAuth
//	@Router		/customers/me [get]
func (h *CustomerHandler) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		customer, err := h.customerService.GetOrCreateCustomer(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to load customer", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, customer)
	}
}

// DeleteProfile godoc
//	@Summary		Delete the caller's customer profile
//	@Description	Removes the customer and its address. Orders already placed are kept.
//	@Tags			Customers
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse	"Customer not found"
//	@Security		BearerAuth
//	@Router			/customers/me [delete]
func (h *CustomerHandler) DeleteProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.customerService.DeleteCustomer(r.Context(), claims.UserID); err != nil {
			logger.Warn("Failed to delete customer", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Customer deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetAddress godoc
//	@Summary	Get the caller's shipping address
//	@Tags		Customers
//	@Produce	json
//	@Success	200	{object}	models.CustomerAddress	"Address"
//	@Failure	404	{object}	response.ErrorResponse	"Address not found"
//	@Security	BearerAuth
//	@Router		/customers/me/address [get]
func (h *CustomerHandler) GetAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		address, err := h.customerService.GetAddress(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, address)
	}
}

// CreateAddress godoc
//	@Summary	Set the caller's shipping address
//	@Tags		Customers
//	@Accept		json
//	@Produce	json
//	@Param		address	body		models.Address			true	"Shipping address"
//	@Success	201		{object}	models.CustomerAddress	"Address created"
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	409		{object}	response.ErrorResponse	"Address already exists"
//	@Security	BearerAuth
//	@Router		/customers/me/address [post]
func (h *CustomerHandler) CreateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.Address
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid address input")
			return
		}

		address, err := h.customerService.CreateAddress(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to create address", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Address created", slog.Int64("addressId", address.ID))
		response.Success(w, http.StatusCreated, address)
	}
}

// UpdateAddress godoc
//	@Summary	Replace the caller's shipping address
//	@Tags		Customers
//	@Accept		json
//	@Produce	json
//	@Param		address	body		models.Address			true	"Shipping address"
//	@Success	200		{object}	models.CustomerAddress	"Address updated"
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	404		{object}	response.ErrorResponse	"Address not found"
//	@Security	BearerAuth
//	@Router		/customers/me/address [put]
func (h *CustomerHandler) UpdateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.Address
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		address, err := h.customerService.UpdateAddress(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to update address", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, address)
	}
}

// DeleteAddress godoc
//	@Summary	Delete the caller's shipping address
//	@Tags		Customers
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Address not found"
//	@Security	BearerAuth
//	@Router		/customers/me/address [delete]
func (h *CustomerHandler) DeleteAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.customerService.DeleteAddress(r.Context(), claims.UserID); err != nil {
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
