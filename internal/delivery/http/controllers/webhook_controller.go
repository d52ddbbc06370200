package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"eventpay/internal/delivery/http/helpers"
	"eventpay/internal/domain"
)

// maxWebhookBytes caps the webhook body; Stripe events are well below this.
const maxWebhookBytes = 64 << 10

// StripeSignatureHeader carries the webhook signature.
const StripeSignatureHeader = "Stripe-Signature"

// WebhookAck is the body returned for accepted deliveries.
type WebhookAck struct {
	Received bool `json:"received"`
}

type WebhookController struct {
	Logger  *slog.Logger
	Service domain.PaymentService
}

func NewWebhookController(logger *slog.Logger, svc domain.PaymentService) *WebhookController {
	return &WebhookController{
		Logger:  logger,
		Service: svc,
	}
}

// Stripe godoc
// @Summary Stripe webhook
// @Description Receives signed Stripe events. checkout.session.completed marks the reservation paid and the payment PAID; other types are acknowledged and ignored. Redelivery is safe.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature header"
// @Success 200 {object} controllers.WebhookAck
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (signature or payload rejected)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (rows not visible yet, Stripe retries)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webhooks/stripe [post]
func (c *WebhookController) Stripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unreadable body")
		return
	}

	err = c.Service.Reconcile(r.Context(), payload, r.Header.Get(StripeSignatureHeader))
	switch {
	case err == nil:
		helpers.WriteJSONSuccess(w, http.StatusOK, WebhookAck{Received: true})
	case errors.Is(err, domain.ErrInvalidSignature), errors.Is(err, domain.ErrInvalidPayload):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		writeServiceError(w, r, c.Logger, err)
	}
}
