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

type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validator: validator.New()}
}

// CreateReview godoc
//	@Summary		Review a product
//	@Description	One review per user per product. Content is stripped of markup.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Product ID or slug"
//	@Param			review	body		models.CreateReviewRequest	true	"Rating and content"
//	@Success		201		{object}	models.Review				"Review created"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		404		{object}	response.ErrorResponse		"Product not found"
//	@Failure		409		{object}	response.ErrorResponse		"Already reviewed"
//	@Security		BearerAuth
//	@Router			/products/{id}/reviews [post]
func (h *ReviewHandler) CreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.CreateReview(r.Context(), claims, r.PathValue("id"), &req)
		if err != nil {
			logger.Warn("Failed to create review", slog.String("product", r.PathValue("id")), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Review created", slog.Int64("reviewId", review.ID), slog.Int64("productId", review.ProductID))
		response.Success(w, http.StatusCreated, review)
	}
}

// ListReviews godoc
//	@Summary	List a product's reviews
//	@Tags		Reviews
//	@Produce	json
//	@Param		id	path		string					true	"Product ID or slug"
//	@Success	200	{array}		models.Review			"Reviews"
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Router		/products/{id}/reviews [get]
func (h *ReviewHandler) ListReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		reviews, err := h.reviewService.ListReviews(r.Context(), r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, reviews)
	}
}

// GetReview godoc
//	@Summary	Get a review
//	@Tags		Reviews
//	@Produce	json
//	@Param		id			path		string					true	"Product ID or slug"
//	@Param		reviewId	path		int						true	"Review ID"
//	@Success	200			{object}	models.Review			"Review"
//	@Failure	404			{object}	response.ErrorResponse	"Review not found"
//	@Router		/products/{id}/reviews/{reviewId} [get]
func (h *ReviewHandler) GetReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		reviewID, err := utils.ParseID(r, "reviewId")
		if err != nil {
			response.Error(w, err)
			return
		}

		review, err := h.reviewService.GetReview(r.Context(), r.PathValue("id"), reviewID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, review)
	}
}

// DeleteReview godoc
//	@Summary		Delete a review
//	@Description	Allowed for the review's author and for admins.
//	@Tags			Reviews
//	@Param			id			path	string	true	"Product ID or slug"
//	@Param			reviewId	path	int		true	"Review ID"
//	@Success		204
//	@Failure		403	{object}	response.ErrorResponse	"Not the author"
//	@Failure		404	{object}	response.ErrorResponse	"Review not found"
//	@Security		BearerAuth
//	@Router			/products/{id}/reviews/{reviewId} [delete]
func (h *ReviewHandler) DeleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		reviewID, err := utils.ParseID(r, "reviewId")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.reviewService.DeleteReview(r.Context(), claims, r.PathValue("id"), reviewID); err != nil {
			logger.Warn("Failed to delete review", slog.Int64("reviewId", reviewID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Review deleted", slog.Int64("reviewId", reviewID))
		w.WriteHeader(http.StatusNoContent)
	}
}
