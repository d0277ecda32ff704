package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercadito/marketplace-api/internal/api/metrics"
	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
)

// AuthService implements credential verification, session issuance and
// registration.
type AuthService struct {
	users      ports.UserRepository
	tokens     ports.TokenStore
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenStore,
	jwtSecret string,
	accessTTL, refreshTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// Login verifies the credentials and issues an access/refresh pair.
// The caller cannot distinguish an unknown username from a wrong
// password; both yield domain.ErrInvalidCredentials. The password is
// never logged.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	if username == "" || password == "" {
		s.log.Warn().
			Bool("has_username", username != "").
			Bool("has_password", password != "").
			Msg("login failed: missing credentials")
		metrics.LoginsTotal.WithLabelValues("missing_credentials").Inc()
		return nil, nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Info().Str("username", username).Msg("login failed: invalid credentials")
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Info().Str("username", username).Msg("login failed: invalid credentials")
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn().Str("username", username).Str("user_id", user.ID).Msg("login failed: inactive user")
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return nil, nil, domain.ErrUserInactive
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("username", username).Str("user_id", user.ID).Msg("login successful")
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return pair, user, nil
}

// Register validates the input, hashes the password and creates the
// account. Uniqueness of username, email and national id is checked
// before the insert; a duplicate-key error that still escapes (a
// concurrent insert) surfaces as the same per-field validation error.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}

	ve := domain.NewValidationError()
	if !domain.ValidRole(role) {
		ve.Add("role", "Rol inválido.")
	}

	if err := s.checkUnique(ctx, in, ve); err != nil {
		return nil, err
	}

	if !ve.Empty() {
		s.logRegisterFailure(in, ve)
		metrics.RegistrationsTotal.WithLabelValues("validation_error").Inc()
		return nil, ve
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		NationalID:   in.NationalID,
		Phone:        in.Phone,
		Role:         role,
		IsActive:     true,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		var dup *domain.ValidationError
		if errors.As(err, &dup) {
			s.logRegisterFailure(in, dup)
			metrics.RegistrationsTotal.WithLabelValues("validation_error").Inc()
			return nil, dup
		}
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user registered")
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return created, nil
}

// Refresh rotates a refresh token: the presented token must be valid,
// still recorded server-side, and bound to an active account. The old
// record is revoked before the new pair is stored.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, *domain.User, error) {
	userID, jti, err := s.parseRefresh(refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, nil, err
	}

	storedUser, err := s.tokens.UserID(ctx, jti)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, nil, err
	}
	if storedUser != userID {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
			return nil, nil, domain.ErrInvalidToken
		}
		return nil, nil, err
	}
	if !user.IsActive {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, nil, domain.ErrUserInactive
	}

	if err := s.tokens.Revoke(ctx, jti); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("refresh token rotated")
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return pair, user, nil
}

// Logout revokes the server-side refresh record. A token that is
// already invalid or revoked is not an error: logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	_, jti, err := s.parseRefresh(refreshToken)
	if err != nil {
		return nil
	}
	if err := s.tokens.Revoke(ctx, jti); err != nil && !errors.Is(err, domain.ErrTokenRevoked) {
		return err
	}
	s.log.Info().Msg("refresh token revoked")
	return nil
}

func (s *AuthService) checkUnique(ctx context.Context, in ports.RegisterInput, ve *domain.ValidationError) error {
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		ve.Add("username", "Ya existe un usuario con este nombre de usuario.")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		ve.Add("email", "Ya existe un usuario con este correo electrónico.")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if _, err := s.users.FindByNationalID(ctx, in.NationalID); err == nil {
		ve.Add("national_id", "Ya existe un usuario con este DNI.")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

// logRegisterFailure records the attempted username/email and the field
// errors. The password is deliberately absent from the event.
func (s *AuthService) logRegisterFailure(in ports.RegisterInput, ve *domain.ValidationError) {
	s.log.Warn().
		Str("username", in.Username).
		Str("email", in.Email).
		Interface("errors", ve.Fields).
		Msg("register failed")
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"is_staff": user.IsStaff,
		"exp":      now.Add(s.accessTTL).Unix(),
	})
	accessToken, err := access.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	jti := uuid.NewString()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"jti": jti,
		"exp": now.Add(s.refreshTTL).Unix(),
	})
	refreshToken, err := refresh.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.tokens.Save(ctx, jti, user.ID, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &ports.TokenPair{Access: accessToken, Refresh: refreshToken}, nil
}

func (s *AuthService) parseRefresh(refreshToken string) (userID, jti string, err error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !tkn.Valid {
		return "", "", domain.ErrInvalidToken
	}
	userID, _ = claims["sub"].(string)
	jti, _ = claims["jti"].(string)
	if userID == "" || jti == "" {
		return "", "", domain.ErrInvalidToken
	}
	return userID, jti, nil
}
