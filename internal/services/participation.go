package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"eventpay/internal/clock"
	"eventpay/internal/domain"
)

type participationService struct {
	tx           domain.Transactor
	events       domain.EventRepository
	ledger       domain.CapacityLedger
	reservations domain.ReservationRepository
	payments     domain.PaymentRepository
	users        domain.UserRepository
	gateway      domain.CheckoutGateway
	clock        clock.Clock
	logger       *slog.Logger
	timeout      time.Duration
}

// NewParticipationService wires the join flow.
func NewParticipationService(
	tx domain.Transactor,
	events domain.EventRepository,
	ledger domain.CapacityLedger,
	reservations domain.ReservationRepository,
	payments domain.PaymentRepository,
	users domain.UserRepository,
	gateway domain.CheckoutGateway,
	clk clock.Clock,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ParticipationService {
	return &participationService{
		tx:           tx,
		events:       events,
		ledger:       ledger,
		reservations: reservations,
		payments:     payments,
		users:        users,
		gateway:      gateway,
		clock:        clk,
		logger:       logger,
		timeout:      timeout,
	}
}

// Join admits the caller into eventID and opens a checkout session for the fee.
// Admission, the reservation and the PENDING payment commit together; the gateway
// is called only after that commit.
func (s *participationService) Join(ctx context.Context, caller domain.Caller, eventID string) (*domain.JoinResult, error) {
	if caller.Role != domain.RoleUser {
		return nil, domain.ErrForbidden
	}
	// A malformed id would fail the uuid cast in Postgres and abort the transaction.
	if err := uuid.Validate(eventID); err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	var (
		event       *domain.Event
		reservation *domain.Reservation
		payment     *domain.Payment
	)
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		_, err := s.reservations.GetByEventAndUser(ctx, eventID, user.ID)
		if err == nil {
			return domain.ErrAlreadyJoined
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get reservation: %w", err)
		}

		paid, err := s.payments.HasPaid(ctx, user.ID, eventID)
		if err != nil {
			return err
		}
		if paid {
			return domain.ErrPaymentAlreadyExists
		}

		event, err = s.events.GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}
		now := s.clock.Now()
		if event.HasStarted(now) {
			return domain.ErrPastEvent
		}
		if event.Status != domain.EventStatusOpen {
			return domain.ErrEventNotOpen
		}

		if _, err := s.ledger.Admit(ctx, event.ID); err != nil {
			return err
		}

		reservation = domain.NewReservation(user.ID, event.ID, now)
		if err := s.reservations.Create(ctx, reservation); err != nil {
			return err
		}
		payment = domain.NewPayment(user.ID, event.ID, event.Fee, uuid.NewString(), now)
		return s.payments.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, domain.CheckoutSessionRequest{
		BuyerEmail:    user.Email,
		ProductName:   fmt.Sprintf("Event with %s", event.Name),
		UnitAmount:    event.FeeMinorUnits(),
		ReservationID: reservation.ID,
		PaymentID:     payment.ID,
	})
	if err != nil {
		s.logger.Error("checkout session failed",
			"reservation_id", reservation.ID,
			"payment_id", payment.ID,
			"event_id", event.ID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrCheckoutUnavailable, err)
	}

	if err := s.payments.AttachCheckoutSession(ctx, payment.ID, session.ID); err != nil {
		s.logger.Warn("attach checkout session failed", "payment_id", payment.ID, "session_id", session.ID, "error", err)
	}

	s.logger.Info("participant joined",
		"event_id", event.ID,
		"user_id", user.ID,
		"reservation_id", reservation.ID,
		"payment_id", payment.ID,
	)
	return &domain.JoinResult{
		ReservationID: reservation.ID,
		PaymentID:     payment.ID,
		CheckoutURL:   session.URL,
	}, nil
}

func (s *participationService) ListMyReservations(ctx context.Context, caller domain.Caller) ([]*domain.Reservation, error) {
	if caller.Role != domain.RoleUser {
		return nil, domain.ErrForbidden
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reservations, err := s.reservations.ListByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}
