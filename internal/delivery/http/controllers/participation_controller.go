package controllers

import (
	"log/slog"
	"net/http"

	"eventpay/internal/delivery/http/helpers"
	"eventpay/internal/delivery/http/middleware"
	"eventpay/internal/domain"
)

// JoinEventSuccessResponse is the success response envelope for POST /participant/events/{eventID}/join (201).
type JoinEventSuccessResponse struct {
	Data  *domain.JoinResult `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListReservationsSuccessResponse is the success response envelope for GET /participant/reservations (200).
type ListReservationsSuccessResponse struct {
	Data  []*domain.Reservation `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type ParticipationController struct {
	Logger  *slog.Logger
	Service domain.ParticipationService
}

func NewParticipationController(logger *slog.Logger, svc domain.ParticipationService) *ParticipationController {
	return &ParticipationController{
		Logger:  logger,
		Service: svc,
	}
}

// Join godoc
// @Summary Join an event
// @Description Reserves a seat for the caller, records a PENDING payment and returns the hosted checkout URL. Seats are admitted while participantCount < maxParticipants.
// @Tags participation
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} controllers.JoinEventSuccessResponse "data contains reservationId, paymentId and checkoutUrl"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (past event)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already joined, already paid, event full, event not open)"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway (checkout session could not be created)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participant/events/{eventID}/join [post]
func (c *ParticipationController) Join(w http.ResponseWriter, r *http.Request) {
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
	result, err := c.Service.Join(r.Context(), caller, eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// ListMyReservations godoc
// @Summary List my reservations
// @Description Returns the caller's reservations, newest first, with their paid flag.
// @Tags participation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListReservationsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participant/reservations [get]
func (c *ParticipationController) ListMyReservations(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reservations, err := c.Service.ListMyReservations(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reservations)
}
