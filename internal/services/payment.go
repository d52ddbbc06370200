package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventpay/internal/domain"
)

type paymentService struct {
	tx           domain.Transactor
	verifier     domain.WebhookVerifier
	reservations domain.ReservationRepository
	payments     domain.PaymentRepository
	events       domain.EventRepository
	users        domain.UserRepository
	emailService domain.EmailService
	logger       *slog.Logger
	timeout      time.Duration
}

// NewPaymentService wires the webhook reconciler and the host payment overview.
// emailService may be nil, in which case no confirmation is sent.
func NewPaymentService(
	tx domain.Transactor,
	verifier domain.WebhookVerifier,
	reservations domain.ReservationRepository,
	payments domain.PaymentRepository,
	events domain.EventRepository,
	users domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.PaymentService {
	return &paymentService{
		tx:           tx,
		verifier:     verifier,
		reservations: reservations,
		payments:     payments,
		events:       events,
		users:        users,
		emailService: emailService,
		logger:       logger,
		timeout:      timeout,
	}
}

// Reconcile applies a signed gateway delivery. Only checkout completion changes state, and
// applying the same delivery again converges on the same rows without side effects.
func (s *paymentService) Reconcile(ctx context.Context, payload []byte, signatureHeader string) error {
	evt, err := s.verifier.Verify(payload, signatureHeader)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			s.logger.Warn("webhook signature rejected", "security", true, "error", err)
			return domain.ErrInvalidSignature
		}
		return err
	}

	if evt.Type != domain.GatewayEventCheckoutCompleted {
		s.logger.Info("webhook event ignored", "event_id", evt.ID, "type", evt.Type)
		return nil
	}
	if evt.ReservationID == "" || evt.PaymentID == "" {
		s.logger.Warn("checkout completed without correlation metadata", "event_id", evt.ID)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var transitioned bool
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.reservations.MarkPaid(ctx, evt.ReservationID); err != nil {
			return err
		}
		changed, err := s.payments.MarkPaid(ctx, evt.PaymentID, evt.Payload)
		if err != nil {
			return err
		}
		transitioned = changed
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) || errors.Is(err, domain.ErrPaymentNotFound) {
			s.logger.Warn("webhook references unknown rows",
				"event_id", evt.ID,
				"reservation_id", evt.ReservationID,
				"payment_id", evt.PaymentID,
			)
		}
		return err
	}

	if !transitioned {
		s.logger.Info("webhook redelivery ignored", "event_id", evt.ID, "payment_id", evt.PaymentID)
		return nil
	}
	s.logger.Info("payment confirmed", "event_id", evt.ID, "payment_id", evt.PaymentID, "reservation_id", evt.ReservationID)
	s.notifyPaid(ctx, evt.PaymentID)
	return nil
}

func (s *paymentService) notifyPaid(ctx context.Context, paymentID string) {
	if s.emailService == nil {
		return
	}
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		s.logger.Error("load payment for confirmation email", "payment_id", paymentID, "error", err)
		return
	}
	user, err := s.users.GetByID(ctx, payment.UserID)
	if err != nil {
		s.logger.Error("load buyer for confirmation email", "payment_id", paymentID, "error", err)
		return
	}
	event, err := s.events.GetByID(ctx, payment.EventID)
	if err != nil {
		s.logger.Error("load event for confirmation email", "payment_id", paymentID, "error", err)
		return
	}
	data := &domain.PaymentConfirmedEmailData{
		Email:         user.Email,
		Name:          user.Name,
		EventName:     event.Name,
		Amount:        payment.Amount,
		TransactionID: payment.TransactionID,
	}
	if err := s.emailService.SendPaymentConfirmed(ctx, data); err != nil {
		s.logger.Error("send payment confirmation", "payment_id", paymentID, "error", err)
	}
}

func (s *paymentService) Overview(ctx context.Context, caller domain.Caller) (*domain.PaymentOverview, error) {
	if caller.Role != domain.RoleHost {
		return nil, domain.ErrForbidden
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	paid, err := s.payments.SumByHostAndStatus(ctx, caller.UserID, domain.PaymentStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("sum paid payments: %w", err)
	}
	pending, err := s.payments.SumByHostAndStatus(ctx, caller.UserID, domain.PaymentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("sum pending payments: %w", err)
	}
	return &domain.PaymentOverview{TotalEarnings: paid, Pending: pending}, nil
}
