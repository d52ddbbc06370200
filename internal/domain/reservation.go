package domain

import (
	"context"
	"time"
)

// Reservation records that a user has claimed a slot in an event.
// A user holds at most one reservation per event.
// swagger:model Reservation
type Reservation struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	EventID  string    `json:"eventId"`
	Paid     bool      `json:"paid"`
	JoinedAt time.Time `json:"joinedAt"`
}

// NewReservation creates an unpaid Reservation. ID is typically set by the repository on create.
func NewReservation(userID, eventID string, joinedAt time.Time) *Reservation {
	return &Reservation{
		UserID:   userID,
		EventID:  eventID,
		JoinedAt: joinedAt,
	}
}

// ReservationRepository defines storage operations for reservations.
type ReservationRepository interface {
	// Create inserts the reservation. Returns ErrAlreadyJoined on a (user, event) conflict.
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Reservation, error)
	ListByUserID(ctx context.Context, userID string) ([]*Reservation, error)
	// MarkPaid sets paid=true. changed is false when the reservation was already paid.
	// Returns ErrReservationNotFound when no row has the id.
	MarkPaid(ctx context.Context, id string) (changed bool, err error)
}

// Transactor runs fn inside a single local transaction. Repository calls made with the
// context passed to fn join that transaction. Returning an error from fn rolls it back.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// JoinResult is returned to a caller that successfully joined an event.
// swagger:model JoinResult
type JoinResult struct {
	ReservationID string `json:"reservationId"`
	PaymentID     string `json:"paymentId"`
	CheckoutURL   string `json:"checkoutUrl"`
}

// ParticipationService admits callers into events and starts their checkout.
type ParticipationService interface {
	Join(ctx context.Context, caller Caller, eventID string) (*JoinResult, error)
	ListMyReservations(ctx context.Context, caller Caller) ([]*Reservation, error)
}
