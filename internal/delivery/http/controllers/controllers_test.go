package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"eventpay/internal/delivery/http/helpers"
	"eventpay/internal/delivery/http/middleware"
	"eventpay/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var (
	participant = domain.Caller{UserID: "user-1", Email: "ana@example.com", Role: domain.RoleUser}
	host        = domain.Caller{UserID: "host-1", Email: "host@example.com", Role: domain.RoleHost}
)

func withCaller(ctx context.Context, c *domain.Caller) context.Context {
	if c == nil {
		return ctx
	}
	return middleware.SetCaller(ctx, *c)
}

// decodeEnvelope decodes the response envelope; data is decoded into dataOut when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dataOut any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if dataOut != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, dataOut))
	}
	return env.Error
}
