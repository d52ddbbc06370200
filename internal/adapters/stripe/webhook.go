package stripe

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"eventpay/internal/domain"
)

type webhookVerifier struct {
	secret    string
	tolerance time.Duration
}

// NewWebhookVerifier returns a WebhookVerifier that checks the Stripe-Signature header against
// the endpoint secret. Signatures older than tolerance are rejected; zero means the library default.
func NewWebhookVerifier(secret string, tolerance time.Duration) domain.WebhookVerifier {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &webhookVerifier{secret: secret, tolerance: tolerance}
}

func (v *webhookVerifier) Verify(payload []byte, signatureHeader string) (*domain.GatewayEvent, error) {
	if err := webhook.ValidatePayloadWithTolerance(payload, signatureHeader, v.secret, v.tolerance); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	var evt stripe.Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	out := &domain.GatewayEvent{ID: evt.ID, Type: string(evt.Type)}
	if evt.Data == nil {
		return out, nil
	}
	out.Payload = evt.Data.Raw

	var obj struct {
		Metadata map[string]string `json:"metadata"`
	}
	if len(evt.Data.Raw) > 0 {
		if err := json.Unmarshal(evt.Data.Raw, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
		}
	}
	out.ReservationID = obj.Metadata[MetadataReservationID]
	out.PaymentID = obj.Metadata[MetadataPaymentID]
	return out, nil
}
