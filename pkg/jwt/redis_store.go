package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/ahhussein/afterbuy-sdk/pkg/redis"
)

const revokedKeyPrefix = "jwt:revoked:"

// RedisStore implements RevocationStore on top of pkg/redis
type RedisStore struct {
	client redis.RedisClient
	now    func() time.Time
}

// NewRedisStore creates a revocation store backed by redisClient
func NewRedisStore(redisClient redis.RedisClient) *RedisStore {
	return &RedisStore{
		client: redisClient,
		now:    time.Now,
	}
}

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

// Revoke records tokenID as revoked. The key expires together with the token.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		// already expired, nothing left to revoke
		return nil
	}

	if err := s.client.Set(ctx, revokedKey(tokenID), "1", ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked
func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, revokedKey(tokenID))
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return exists, nil
}
