package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventpay/internal/delivery/http/helpers"
	"eventpay/internal/domain"
)

// writeServiceError maps a domain error to its HTTP status and envelope code.
// Anything unrecognised is logged and reported as 500 without leaking details.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrPastEvent),
		errors.Is(err, domain.ErrEventNotCompleted):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotParticipant):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrPaymentNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyJoined),
		errors.Is(err, domain.ErrPaymentAlreadyExists),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrEventNotOpen),
		errors.Is(err, domain.ErrAlreadyReviewed):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrCheckoutUnavailable):
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeBadGateway, domain.ErrCheckoutUnavailable.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
