// Package session turns a backend-issued bearer token into an explicit
// *domain.Session and clears it on logout.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tradedesk/internal/config"
	"tradedesk/internal/domain"
	"tradedesk/internal/port"
)

// Claims are the fields this service reads from a backend session token.
type Claims struct {
	jwt.RegisteredClaims
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

// Manager loads and clears sessions.
type Manager interface {
	Load(ctx context.Context, bearer string) (*domain.Session, error)
	Clear(ctx context.Context, sess *domain.Session) error
}

type manager struct {
	cfg     config.JWTConfig
	revoked port.TokenRevocationStore
}

// NewManager creates a Manager that verifies HS256 tokens signed with cfg.Secret.
func NewManager(cfg config.JWTConfig, revoked port.TokenRevocationStore) Manager {
	return &manager{cfg: cfg, revoked: revoked}
}

func (m *manager) Load(ctx context.Context, bearer string) (*domain.Session, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(bearer), "Bearer "))
	if raw == "" {
		return nil, domain.ErrUnauthorized
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.cfg.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.cfg.Secret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	sess := &domain.Session{
		UserID:      claims.Subject,
		Name:        claims.Name,
		Email:       claims.Email,
		Permissions: claims.Permissions,
		Token:       raw,
		TokenID:     tokenID(claims.ID, raw),
		ExpiresAt:   claims.ExpiresAt.Time,
	}

	revoked, err := m.revoked.IsRevoked(ctx, sess.TokenID)
	if err != nil {
		return nil, fmt.Errorf("session.Load: %w", err)
	}
	if revoked {
		return nil, domain.ErrSessionRevoked
	}
	return sess, nil
}

// Clear revokes the session's token until it would have expired anyway.
func (m *manager) Clear(ctx context.Context, sess *domain.Session) error {
	if sess == nil {
		return domain.ErrUnauthorized
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := m.revoked.Revoke(ctx, sess.TokenID, ttl); err != nil {
		return fmt.Errorf("session.Clear: %w", err)
	}
	return nil
}

// tokenID prefers the jti claim; tokens without one are keyed by their hash.
func tokenID(jti, raw string) string {
	if jti != "" {
		return jti
	}
	sum := sha256.Sum256([]byte(raw))
	return "sha256:" + hex.EncodeToString(sum[:])
}

// IsAuthError reports whether err means the caller must authenticate again.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrSessionRevoked)
}
