package domain

import "errors"

// Generic sentinel errors shared by repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// Participation and payment errors.
var (
	ErrAlreadyJoined        = errors.New("already joined this event")
	ErrPaymentAlreadyExists = errors.New("payment already exists for this event")
	ErrEventNotFound        = errors.New("event not found")
	ErrPastEvent            = errors.New("cannot join past events")
	ErrEventNotOpen         = errors.New("event is not open for joining")
	ErrCapacityExceeded     = errors.New("event has reached maximum participants")
	ErrCheckoutUnavailable  = errors.New("checkout session could not be created")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrInvalidPayload       = errors.New("invalid webhook payload")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrPaymentNotFound      = errors.New("payment not found")
)

// Review errors.
var (
	ErrNotParticipant    = errors.New("only participants can review this event")
	ErrEventNotCompleted = errors.New("event has not taken place yet")
	ErrInvalidRating     = errors.New("rating must be an integer between 1 and 5")
	ErrAlreadyReviewed   = errors.New("event already reviewed")
)
