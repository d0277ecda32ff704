package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// TokenStore records issued refresh tokens in Redis so sessions can be
// rotated and revoked server-side. Key format: refresh:<jti> → user id,
// expiring together with the token itself.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(jti), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// UserID returns the account bound to the jti, or domain.ErrTokenRevoked
// when the record is absent — revoked explicitly or expired by TTL.
func (s *TokenStore) UserID(ctx context.Context, jti string) (string, error) {
	v, err := s.client.Get(ctx, s.key(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrTokenRevoked
		}
		return "", fmt.Errorf("lookup refresh token: %w", err)
	}
	return v, nil
}

func (s *TokenStore) Revoke(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, s.key(jti)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) key(jti string) string {
	return "refresh:" + jti
}
