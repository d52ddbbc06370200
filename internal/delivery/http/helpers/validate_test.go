package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingRequest struct {
	Rating int `json:"rating"`
}

func (r ratingRequest) Validate() []string {
	if r.Rating == 0 {
		return []string{"rating is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "valid", body: `{"rating":4}`, wantOK: true},
		{name: "valid with trailing newline", body: "{\"rating\":4}\n", wantOK: true},
		{name: "unknown field", body: `{"rating":4,"stars":5}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest},
		{name: "malformed", body: `{"rating":`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest},
		{name: "fails validation", body: `{}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMsg: "rating is required"},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMsg: "request body is required"},
		{name: "two objects", body: `{"rating":4}{"rating":5}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMsg: "single JSON object"},
		{
			name:       "over the size cap",
			body:       `{"rating":4,"pad":"` + strings.Repeat("x", maxBodyBytes) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   ErrCodeTooLarge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest ratingRequest

			ok := DecodeAndValidate(rr, req, &dest)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, 4, dest.Rating)
				return
			}
			assert.Equal(t, tt.wantStatus, rr.Code)
			var env APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Contains(t, env.Error.Message, tt.wantMsg)
			assert.Nil(t, env.Data)
		})
	}
}
