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

// ReactionHandler serves every reaction ledger for both products and reviews.
// The ledger comes from the {ledger} path value; a {reviewId} path value
// switches the target from the product to one of its reviews.
type ReactionHandler struct {
	reactionService service.ReactionService
	resolver        service.TargetResolver
	validator       *validator.Validate
}

func NewReactionHandler(reactionService service.ReactionService, resolver service.TargetResolver) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService, resolver: resolver, validator: validator.New()}
}

func (h *ReactionHandler) resolve(r *http.Request) (models.ReactionLedger, models.Target, error) {
	ledger := models.ReactionLedger(r.PathValue("ledger"))
	if !ledger.Valid() {
		return "", models.Target{}, errors.NotFoundError("Unknown reaction ledger").WithDetail(string(ledger))
	}

	if r.PathValue("reviewId") == "" {
		target, err := h.resolver.ProductTarget(r.Context(), r.PathValue("id"))

		return ledger, target, err
	}

	reviewID, err := utils.ParseID(r, "reviewId")
	if err != nil {
		return "", models.Target{}, err
	}

	target, err := h.resolver.ReviewTarget(r.Context(), r.PathValue("id"), reviewID)

	return ledger, target, err
}

func (h *ReactionHandler) logger(r *http.Request, ledger models.ReactionLedger, target models.Target) *slog.Logger {
	return middleware.LoggerFromContext(r.Context()).With(
		slog.String("ledger", string(ledger)),
		slog.String("targetType", string(target.Kind)),
		slog.Int64("targetId", target.ID),
	)
}

// CreateReaction godoc
//	@Summary		React to a product or review
//	@Description	A user holds at most one reaction per ledger and target. Value is 1 or -1.
//	@Tags			Reactions
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string					true	"Product ID or slug"
//	@Param			ledger		path		string					true	"Reaction ledger"	Enums(likes, votes)
//	@Param			reaction	body		models.ReactionRequest	true	"Reaction value"
//	@Success		201			{object}	models.Reaction			"Reaction recorded"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		404			{object}	response.ErrorResponse	"Unknown ledger or target"
//	@Failure		409			{object}	response.ErrorResponse	"Already reacted"
//	@Failure		429			{object}	response.ErrorResponse	"Too many requests"
//	@Security		BearerAuth
//	@Router			/products/{id}/{ledger} [post]
//	@Router			/products/{id}/reviews/{reviewId}/{ledger} [post]
func (h *ReactionHandler) CreateReaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		ledger, target, err := h.resolve(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger := h.logger(r, ledger, target)

		var req models.ReactionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		reaction, err := h.reactionService.CreateReaction(r.Context(), claims.UserID, ledger, target, req.Value)
		if err != nil {
			logger.Warn("Failed to create reaction", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Reaction created", slog.Int("value", int(reaction.Value)))
		response.Success(w, http.StatusCreated, reaction)
	}
}

// GetReaction godoc
//	@Summary	Get the caller's reaction
//	@Tags		Reactions
//	@Produce	json
//	@Param		id		path		string					true	"Product ID or slug"
//	@Param		ledger	path		string					true	"Reaction ledger"	Enums(likes, votes)
//	@Success	200		{object}	models.Reaction			"Reaction"
//	@Failure	404		{object}	response.ErrorResponse	"No reaction"
//	@Security	BearerAuth
//	@Router		/products/{id}/{ledger} [get]
//	@Router		/products/{id}/reviews/{reviewId}/{ledger} [get]
func (h *ReactionHandler) GetReaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		ledger, target, err := h.resolve(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		reaction, err := h.reactionService.GetReaction(r.Context(), claims.UserID, ledger, target)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, reaction)
	}
}

// ReplaceReaction godoc
//	@Summary	Change the caller's reaction
//	@Tags		Reactions
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string					true	"Product ID or slug"
//	@Param		ledger		path		string					true	"Reaction ledger"	Enums(likes, votes)
//	@Param		reaction	body		models.ReactionRequest	true	"Reaction value"
//	@Success	200			{object}	models.Reaction			"Reaction updated"
//	@Failure	404			{object}	response.ErrorResponse	"No reaction"
//	@Security	BearerAuth
//	@Router		/products/{id}/{ledger} [put]
//	@Router		/products/{id}/reviews/{reviewId}/{ledger} [put]
func (h *ReactionHandler) ReplaceReaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		ledger, target, err := h.resolve(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.ReactionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		reaction, err := h.reactionService.ReplaceReaction(r.Context(), claims.UserID, ledger, target, req.Value)
		if err != nil {
			h.logger(r, ledger, target).Warn("Failed to replace reaction", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, reaction)
	}
}

// DeleteReaction godoc
//	@Summary	Withdraw the caller's reaction
//	@Tags		Reactions
//	@Param		id		path	string	true	"Product ID or slug"
//	@Param		ledger	path	string	true	"Reaction ledger"	Enums(likes, votes)
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"No reaction"
//	@Security	BearerAuth
//	@Router		/products/{id}/{ledger} [delete]
//	@Router		/products/{id}/reviews/{reviewId}/{ledger} [delete]
func (h *ReactionHandler) DeleteReaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		ledger, target, err := h.resolve(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.reactionService.DeleteReaction(r.Context(), claims.UserID, ledger, target); err != nil {
			response.Error(w, err)
			return
		}

		h.logger(r, ledger, target).Info("Reaction deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

// Summary godoc
//	@Summary	Count likes and dislikes on a target
//	@Tags		Reactions
//	@Produce	json
//	@Param		id		path		string					true	"Product ID or slug"
//	@Param		ledger	path		string					true	"Reaction ledger"	Enums(likes, votes)
//	@Success	200		{object}	models.ReactionSummary	"Counts"
//	@Failure	404		{object}	response.ErrorResponse	"Unknown ledger or target"
//	@Router		/products/{id}/{ledger}/summary [get]
//	@Router		/products/{id}/reviews/{reviewId}/{ledger}/summary [get]
func (h *ReactionHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		ledger, target, err := h.resolve(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		summary, err := h.reactionService.Summary(r.Context(), ledger, target)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}
