package port

import (
	"context"
	"time"
)

// TokenRevocationStore remembers session tokens that were cleared before expiry.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
