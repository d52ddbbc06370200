package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventpay/internal/delivery/http/helpers"
	"eventpay/internal/delivery/http/middleware"
	"eventpay/internal/domain"
)

// CreateEventRequest is the request body for POST /host/events.
type CreateEventRequest struct {
	Name            string  `json:"name"`
	Date            string  `json:"date"`
	Fee             float64 `json:"fee"`
	MaxParticipants int     `json:"maxParticipants"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (req CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "name is required")
	}
	if req.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(time.RFC3339, req.Date); err != nil {
		errs = append(errs, "date must be RFC3339")
	}
	if req.Fee < 0 {
		errs = append(errs, "fee must not be negative")
	}
	if req.MaxParticipants < 0 {
		errs = append(errs, "maxParticipants must not be negative")
	}
	return errs
}

// UpdateEventStatusRequest is the request body for PATCH /host/events/{eventID}/status.
type UpdateEventStatusRequest struct {
	Status domain.EventStatus `json:"status"`
}

// Validate implements Validator.
func (req UpdateEventStatusRequest) Validate() []string {
	if !req.Status.Valid() {
		return []string{"status must be one of OPEN, CLOSED, CANCELLED, COMPLETED"}
	}
	return nil
}

// EventSuccessResponse is the success response envelope for host event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PaymentOverviewSuccessResponse is the success response envelope for GET /host/payments/overview (200).
type PaymentOverviewSuccessResponse struct {
	Data  *domain.PaymentOverview `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type HostController struct {
	Logger   *slog.Logger
	Service  domain.HostService
	Payments domain.PaymentService
}

func NewHostController(logger *slog.Logger, svc domain.HostService, payments domain.PaymentService) *HostController {
	return &HostController{
		Logger:   logger,
		Service:  svc,
		Payments: payments,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Hosts create a capacity-limited event. participantCount starts at 0 and status at OPEN.
// @Tags host
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /host/events [post]
func (c *HostController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	date, _ := time.Parse(time.RFC3339, req.Date)
	event, err := c.Service.CreateEvent(r.Context(), caller, domain.CreateEventInput{
		Name:            req.Name,
		Date:            date,
		Fee:             req.Fee,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEventStatus godoc
// @Summary Update event status
// @Description The owning host or an admin moves the event between OPEN, CLOSED, CANCELLED and COMPLETED.
// @Tags host
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status body UpdateEventStatusRequest true "New status"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /host/events/{eventID}/status [patch]
func (c *HostController) UpdateEventStatus(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.UpdateEventStatus(r.Context(), caller, eventID, req.Status)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// PaymentOverview godoc
// @Summary Payment overview
// @Description Sum of PAID and PENDING payment amounts across the host's events.
// @Tags host
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.PaymentOverviewSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /host/payments/overview [get]
func (c *HostController) PaymentOverview(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	overview, err := c.Payments.Overview(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, overview)
}
