package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// RegisterInput carries all data needed to create an account. Password
// arrives in plaintext and must be hashed before it reaches the store;
// it must never be logged.
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	NationalID string
	Phone      string
	Role       string // empty defaults to CLIENT
}

// TokenPair is an access/refresh token pair bound to one account.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService defines the credential verification, session issuance and
// registration use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and issues a token pair. Failure modes,
	// in evaluation order: domain.ErrMissingCredentials,
	// domain.ErrInvalidCredentials (unknown username and wrong password
	// are indistinguishable to the caller), domain.ErrUserInactive.
	Login(ctx context.Context, username, password string) (*TokenPair, *domain.User, error)
	// Refresh rotates a valid refresh token: the old server-side record
	// is revoked and a fresh pair is issued.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, *domain.User, error)
	Logout(ctx context.Context, refreshToken string) error
}
