package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
)

// UserService implements self-service profile operations and admin
// account management. Authorization is structural: the HTTP layer only
// ever calls these with the requester's own id ("me" endpoints) or
// behind the staff/admin gate.
type UserService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, products ports.ProductRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, products: products, log: log}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Update applies a partial profile update. A changed email is checked
// for uniqueness; a new password is re-hashed and never logged.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		existing, err := s.users.FindByEmail(ctx, *in.Email)
		if err == nil && existing.ID != id {
			ve := domain.NewValidationError()
			ve.Add("email", "Ya existe un usuario con este correo electrónico.")
			s.log.Warn().Str("user_id", id).Interface("errors", ve.Fields).Msg("profile update failed")
			return nil, ve
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		var dup *domain.ValidationError
		if errors.As(err, &dup) {
			s.log.Warn().Str("user_id", id).Interface("errors", dup.Fields).Msg("profile update failed")
			return nil, dup
		}
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("profile updated")
	return user, nil
}

// Delete removes the account and cascades deletion of every product it
// owns.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	removed, err := s.products.DeleteByOwner(ctx, id)
	if err != nil {
		// The account is already gone; orphaned products would never be
		// mutable again, so this is worth an error-level record.
		s.log.Error().Err(err).Str("user_id", id).Msg("product cascade failed after account deletion")
		return err
	}

	s.log.Info().
		Str("username", user.Username).
		Str("user_id", id).
		Int64("products_removed", removed).
		Msg("account deleted")
	return nil
}
