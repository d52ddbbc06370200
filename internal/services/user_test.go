package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventpay/internal/clock"
	"eventpay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenIssuer struct {
	userID, email string
	role          domain.Role
	expiry        time.Duration
	err           error
}

func (f *fakeTokenIssuer) Issue(userID, email string, role domain.Role, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.userID, f.email, f.role, f.expiry = userID, email, role, expiry
	return "token-" + userID, nil
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		role    domain.Role
		wantErr error
	}{
		{name: "participant", email: " Ana@Example.com ", role: domain.RoleUser},
		{name: "host", email: "host@example.com", role: domain.RoleHost},
		{name: "bad email", email: "not-an-email", role: domain.RoleUser, wantErr: domain.ErrInvalidInput},
		{name: "bad role", email: "x@example.com", role: "OWNER", wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			svc := NewUserService(memUsers{store}, &fakeTokenIssuer{}, time.Hour, clock.NewFixed(testNow))

			u, err := svc.Register(ctx, tt.email, "Ana", tt.role)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.users)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, u.ID)
			assert.Equal(t, tt.role, u.Role)
			assert.Equal(t, testNow, u.CreatedAt)
			assert.Regexp(t, `^[a-z@.]+$`, u.Email)
		})
	}
}

func TestUserService_IssueToken(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addUser("h1", "host@example.com", domain.RoleHost)

	issuer := &fakeTokenIssuer{}
	svc := NewUserService(memUsers{store}, issuer, 2*time.Hour, clock.NewFixed(testNow))

	token, err := svc.IssueToken(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "token-h1", token)
	assert.Equal(t, domain.RoleHost, issuer.role)
	assert.Equal(t, 2*time.Hour, issuer.expiry)

	_, err = svc.IssueToken(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("bad key")
	_, err = NewUserService(memUsers{store}, &fakeTokenIssuer{err: boom}, time.Hour, clock.NewFixed(testNow)).IssueToken(ctx, "h1")
	assert.ErrorIs(t, err, boom)
}
