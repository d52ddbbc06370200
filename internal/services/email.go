package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventpay/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendPaymentConfirmed sends the receipt for a confirmed payment using the "payment_confirmed" template.
func (s *emailService) SendPaymentConfirmed(ctx context.Context, data *domain.PaymentConfirmedEmailData) error {
	if data == nil {
		return fmt.Errorf("payment confirmed data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("payment_confirmed", data)
	if err != nil {
		return fmt.Errorf("failed to render payment_confirmed template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send payment confirmation email: %w", err)
	}
	s.logger.Info("payment confirmation sent", "to", data.Email, "transaction_id", data.TransactionID)
	return nil
}
