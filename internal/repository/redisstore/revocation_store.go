package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tradedesk/internal/port"
)

const revokedPrefix = "tradedesk:session:revoked:"

type revocationStore struct {
	rdb redis.Cmdable
}

// NewRevocationStore creates a Redis-backed TokenRevocationStore. Entries expire
// with the token so the key space stays bounded.
func NewRevocationStore(rdb redis.Cmdable) port.TokenRevocationStore {
	return &revocationStore{rdb: rdb}
}

func (s *revocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, RevokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revocationStore.Revoke: %w", err)
	}
	return nil
}

func (s *revocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, RevokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocationStore.IsRevoked: %w", err)
	}
	return n > 0, nil
}

// RevokedKey is the Redis key marking tokenID as revoked.
func RevokedKey(tokenID string) string {
	return revokedPrefix + tokenID
}
