package controllers

import (
	"log/slog"
	"net/http"

	"eventpay/internal/delivery/http/helpers"
	"eventpay/internal/delivery/http/middleware"
	"eventpay/internal/domain"
)

// AddReviewRequest is the request body for POST /participant/events/{eventID}/reviews.
type AddReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// Validate implements Validator. Range is checked by the review gate.
func (req AddReviewRequest) Validate() []string {
	var errs []string
	if req.Rating == nil {
		errs = append(errs, "rating is required")
	}
	return errs
}

// ReviewSuccessResponse is the success response envelope for POST /participant/events/{eventID}/reviews (201).
type ReviewSuccessResponse struct {
	Data  *domain.Review    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListReviewsSuccessResponse is the success response envelope for GET /reviews/me (200).
type ListReviewsSuccessResponse struct {
	Data  []*domain.Review  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ReviewController struct {
	Logger  *slog.Logger
	Service domain.ReviewService
}

func NewReviewController(logger *slog.Logger, svc domain.ReviewService) *ReviewController {
	return &ReviewController{
		Logger:  logger,
		Service: svc,
	}
}

// AddReview godoc
// @Summary Review an event
// @Description Participants review an event once it has taken place. Rating is an integer from 1 to 5.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param review body AddReviewRequest true "Rating and optional comment"
// @Success 201 {object} controllers.ReviewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid rating, event not completed)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not a participant)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already reviewed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participant/events/{eventID}/reviews [post]
func (c *ReviewController) AddReview(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req AddReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	review, err := c.Service.AddReview(r.Context(), caller, domain.AddReviewInput{
		EventID: eventID,
		Rating:  *req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, review)
}

// ListMyReviews godoc
// @Summary List my reviews
// @Description USER callers get the reviews they wrote; HOST callers get the reviews about their events.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListReviewsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reviews/me [get]
func (c *ReviewController) ListMyReviews(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reviews, err := c.Service.ListMyReviews(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reviews)
}
