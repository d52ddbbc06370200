package domain

import (
	"context"
	"encoding/json"
	"time"
)

// PaymentStatus is the lifecycle state of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// Payment is a single payment attempt for a reservation.
// Amount equals the event fee at creation time and never changes afterwards.
// swagger:model Payment
type Payment struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	EventID          string          `json:"eventId"`
	Amount           float64         `json:"amount"`
	TransactionID    string          `json:"transactionId"`
	Status           PaymentStatus   `json:"status"`
	GatewaySessionID string          `json:"gatewaySessionId,omitempty"`
	GatewayPayload   json.RawMessage `json:"gatewayPayload,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// NewPayment returns a PENDING payment. ID is typically set by the repository on create.
func NewPayment(userID, eventID string, amount float64, transactionID string, now time.Time) *Payment {
	return &Payment{
		UserID:        userID,
		EventID:       eventID,
		Amount:        amount,
		TransactionID: transactionID,
		Status:        PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// PaymentOverview sums payment amounts over a host's events.
// swagger:model PaymentOverview
type PaymentOverview struct {
	TotalEarnings float64 `json:"totalEarnings"`
	Pending       float64 `json:"pending"`
}

// PaymentRepository defines storage operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	// HasPaid reports whether a PAID payment exists for the user and event.
	HasPaid(ctx context.Context, userID, eventID string) (bool, error)
	AttachCheckoutSession(ctx context.Context, id, sessionID string) error
	// MarkPaid moves a payment to PAID and stores the gateway payload. It is a no-op
	// (changed=false) when the payment is already PAID. Returns ErrPaymentNotFound when no row has the id.
	MarkPaid(ctx context.Context, id string, payload json.RawMessage) (changed bool, err error)
	SumByHostAndStatus(ctx context.Context, hostID string, status PaymentStatus) (float64, error)
}

// CheckoutSessionRequest carries what the gateway needs to build a hosted checkout.
type CheckoutSessionRequest struct {
	BuyerEmail    string
	ProductName   string
	UnitAmount    int64
	ReservationID string
	PaymentID     string
}

// CheckoutSession is the gateway's answer to a checkout request.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutGateway creates hosted checkout sessions at the external payment processor.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
}

// GatewayEventCheckoutCompleted is the only gateway event type that changes state.
const GatewayEventCheckoutCompleted = "checkout.session.completed"

// GatewayEvent is an authenticated, decoded webhook delivery.
type GatewayEvent struct {
	ID            string
	Type          string
	ReservationID string
	PaymentID     string
	// Payload is the gateway's object for the event, kept byte for byte.
	Payload json.RawMessage
}

// WebhookVerifier authenticates a raw webhook body against its signature header.
// It returns ErrInvalidSignature when the delivery did not come from the gateway.
type WebhookVerifier interface {
	Verify(payload []byte, signatureHeader string) (*GatewayEvent, error)
}

// PaymentService reconciles gateway confirmations and reports payment totals.
type PaymentService interface {
	Reconcile(ctx context.Context, payload []byte, signatureHeader string) error
	Overview(ctx context.Context, caller Caller) (*PaymentOverview, error)
}
