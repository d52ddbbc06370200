// Package stripe adapts Stripe Checkout to the payment ports: hosted checkout sessions
// going out and signed webhook deliveries coming back.
package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"eventpay/internal/domain"
)

// Metadata keys carried through the gateway round trip.
const (
	MetadataReservationID = "reservationId"
	MetadataPaymentID     = "paymentId"
)

// CheckoutConfig holds the static parts of every checkout session.
type CheckoutConfig struct {
	SecretKey  string
	Currency   string
	SuccessURL string
	CancelURL  string
	// APIURL overrides the Stripe API base URL (stripe-mock, tests).
	APIURL string
}

type checkoutGateway struct {
	api *client.API
	cfg CheckoutConfig
}

// NewCheckoutGateway returns a CheckoutGateway backed by the Stripe API.
func NewCheckoutGateway(cfg CheckoutConfig) domain.CheckoutGateway {
	var backends *stripe.Backends
	if cfg.APIURL != "" {
		backends = &stripe.Backends{
			API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
				URL:               stripe.String(cfg.APIURL),
				MaxNetworkRetries: stripe.Int64(0),
			}),
		}
	}
	if cfg.Currency == "" {
		cfg.Currency = string(stripe.CurrencyUSD)
	}
	return &checkoutGateway{api: client.New(cfg.SecretKey, backends), cfg: cfg}
}

func (g *checkoutGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutSessionRequest) (*domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.BuyerEmail),
		SuccessURL:    stripe.String(g.cfg.SuccessURL),
		CancelURL:     stripe.String(g.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.cfg.Currency),
					UnitAmount: stripe.Int64(req.UnitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
			},
		},
		ClientReferenceID: stripe.String(req.ReservationID),
	}
	params.AddMetadata(MetadataReservationID, req.ReservationID)
	params.AddMetadata(MetadataPaymentID, req.PaymentID)
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}
	return &domain.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
