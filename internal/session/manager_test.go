package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/config"
	"tradedesk/internal/domain"
	"tradedesk/internal/session"
	"tradedesk/mocks"
)

const secret = "test-secret"

func sign(t *testing.T, claims session.Claims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func validClaims() session.Claims {
	return session.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ID:        "jti-1",
			Issuer:    "erp",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:        "Asha",
		Email:       "asha@example.com",
		Permissions: []string{domain.PermSalesInvoiceCreate, domain.PermWorkOrderRead},
	}
}

func TestManager_LoadValidToken(t *testing.T) {
	store := new(mocks.MockTokenRevocationStore)
	store.On("IsRevoked", mock.Anything, "jti-1").Return(false, nil)
	m := session.NewManager(config.JWTConfig{Secret: secret, Issuer: "erp"}, store)
	token := sign(t, validClaims(), secret)

	sess, err := m.Load(context.Background(), "Bearer "+token)

	require.NoError(t, err)
	assert.Equal(t, "user-42", sess.UserID)
	assert.Equal(t, "Asha", sess.Name)
	assert.Equal(t, token, sess.Token)
	assert.Equal(t, "jti-1", sess.TokenID)
	assert.True(t, sess.Can(domain.PermSalesInvoiceCreate))
	assert.False(t, sess.Can(domain.PermEInvoiceExport))
	store.AssertExpectations(t)
}

func TestManager_LoadRejectsBadTokens(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil
	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"
	noSubject := validClaims()
	noSubject.Subject = ""

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"wrong key", sign(t, validClaims(), "other-secret")},
		{"expired", sign(t, expired, secret)},
		{"no expiry", sign(t, noExpiry, secret)},
		{"wrong issuer", sign(t, wrongIssuer, secret)},
		{"no subject", sign(t, noSubject, secret)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockTokenRevocationStore)
			m := session.NewManager(config.JWTConfig{Secret: secret, Issuer: "erp"}, store)

			sess, err := m.Load(context.Background(), tt.token)

			assert.Nil(t, sess)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			store.AssertNotCalled(t, "IsRevoked", mock.Anything, mock.Anything)
		})
	}
}

func TestManager_LoadRejectsNoneAlgorithm(t *testing.T) {
	store := new(mocks.MockTokenRevocationStore)
	m := session.NewManager(config.JWTConfig{Secret: secret}, store)
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Load(context.Background(), token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestManager_LoadRevoked(t *testing.T) {
	store := new(mocks.MockTokenRevocationStore)
	store.On("IsRevoked", mock.Anything, "jti-1").Return(true, nil)
	m := session.NewManager(config.JWTConfig{Secret: secret}, store)

	_, err := m.Load(context.Background(), sign(t, validClaims(), secret))

	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
	assert.True(t, session.IsAuthError(err))
}

func TestManager_LoadStoreFailureFailsClosed(t *testing.T) {
	store := new(mocks.MockTokenRevocationStore)
	store.On("IsRevoked", mock.Anything, "jti-1").Return(false, errors.New("redis down"))
	m := session.NewManager(config.JWTConfig{Secret: secret}, store)

	sess, err := m.Load(context.Background(), sign(t, validClaims(), secret))

	assert.Nil(t, sess)
	require.Error(t, err)
	assert.False(t, session.IsAuthError(err))
}

func TestManager_TokenWithoutJTIKeyedByHash(t *testing.T) {
	claims := validClaims()
	claims.ID = ""
	store := new(mocks.MockTokenRevocationStore)
	store.On("IsRevoked", mock.Anything, mock.MatchedBy(func(id string) bool {
		return len(id) == len("sha256:")+64
	})).Return(false, nil)
	m := session.NewManager(config.JWTConfig{Secret: secret}, store)

	sess, err := m.Load(context.Background(), sign(t, claims, secret))

	require.NoError(t, err)
	assert.Contains(t, sess.TokenID, "sha256:")
}

func TestManager_Clear(t *testing.T) {
	store := new(mocks.MockTokenRevocationStore)
	store.On("Revoke", mock.Anything, "jti-1", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil)
	m := session.NewManager(config.JWTConfig{Secret: secret}, store)

	err := m.Clear(context.Background(), &domain.Session{TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestManager_ClearExpiredIsNoop(t *testing.T) {
	store := new(mocks.MockTokenRevocationStore)
	m := session.NewManager(config.JWTConfig{Secret: secret}, store)

	err := m.Clear(context.Background(), &domain.Session{TokenID: "jti-1", ExpiresAt: time.Now().Add(-time.Hour)})

	require.NoError(t, err)
	store.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

func TestManager_ClearNil(t *testing.T) {
	m := session.NewManager(config.JWTConfig{Secret: secret}, new(mocks.MockTokenRevocationStore))

	assert.ErrorIs(t, m.Clear(context.Background(), nil), domain.ErrUnauthorized)
}
