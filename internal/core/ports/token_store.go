package ports

import (
	"context"
	"time"
)

// TokenStore records issued refresh tokens server-side so they can be
// rotated and revoked. Entries expire together with the token.
type TokenStore interface {
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	// UserID returns the account bound to the jti, or
	// domain.ErrTokenRevoked when the entry is absent or expired.
	UserID(ctx context.Context, jti string) (string, error)
	Revoke(ctx context.Context, jti string) error
}
