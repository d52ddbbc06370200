package stripe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpay/internal/domain"
)

func TestCheckoutGateway_CreateCheckoutSession(t *testing.T) {
	var (
		path string
		form url.Values
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"cs_test_123","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_123"}`)
	}))
	defer srv.Close()

	gw := NewCheckoutGateway(CheckoutConfig{
		SecretKey:  "sk_test_123",
		Currency:   "eur",
		SuccessURL: "https://app.example.com/paid",
		CancelURL:  "https://app.example.com/cancelled",
		APIURL:     srv.URL,
	})

	got, err := gw.CreateCheckoutSession(context.Background(), domain.CheckoutSessionRequest{
		BuyerEmail:    "ana@example.com",
		ProductName:   "Event with Rooftop Jazz",
		UnitAmount:    2550,
		ReservationID: "res-1",
		PaymentID:     "pay-1",
	})
	require.NoError(t, err)
	assert.Equal(t, &domain.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/pay/cs_test_123"}, got)

	assert.Equal(t, "/v1/checkout/sessions", path)
	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "ana@example.com", form.Get("customer_email"))
	assert.Equal(t, "https://app.example.com/paid", form.Get("success_url"))
	assert.Equal(t, "https://app.example.com/cancelled", form.Get("cancel_url"))
	assert.Equal(t, "eur", form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "2550", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "Event with Rooftop Jazz", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "1", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "res-1", form.Get("metadata[reservationId]"))
	assert.Equal(t, "pay-1", form.Get("metadata[paymentId]"))
}

func TestCheckoutGateway_CreateCheckoutSession_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"type":"invalid_request_error","message":"Invalid email"}}`)
	}))
	defer srv.Close()

	gw := NewCheckoutGateway(CheckoutConfig{SecretKey: "sk_test_123", APIURL: srv.URL})
	_, err := gw.CreateCheckoutSession(context.Background(), domain.CheckoutSessionRequest{UnitAmount: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create stripe checkout session")
}
