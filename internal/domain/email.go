package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// PaymentConfirmedEmailData holds data for the payment confirmation email.
type PaymentConfirmedEmailData struct {
	Email         string
	Name          string
	EventName     string
	Amount        float64
	TransactionID string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendPaymentConfirmed(ctx context.Context, data *PaymentConfirmedEmailData) error
}
