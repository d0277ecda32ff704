package handler

import (
	"time"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

type registerRequest struct {
	Username   string `json:"username"    validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required,min=8"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	NationalID string `json:"national_id" validate:"required,dni"`
	Phone      string `json:"phone"       validate:"required,mobileco"`
	Role       string `json:"role"        validate:"omitempty,oneof=CLIENT VENDOR ADMIN"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// userResponse is the public projection of an account. The password
// hash is deliberately absent.
type userResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	NationalID string    `json:"national_id,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsStaff    bool      `json:"is_staff"`
	CreatedAt  time.Time `json:"created_at"`
}

// loginUserResponse is the compact projection embedded in the login and
// refresh responses.
type loginUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsStaff  bool   `json:"is_staff"`
}

type loginResponse struct {
	Access  string            `json:"access"`
	Refresh string            `json:"refresh"`
	User    loginUserResponse `json:"user"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		NationalID: u.NationalID,
		Phone:      u.Phone,
		Role:       u.Role,
		IsActive:   u.IsActive,
		IsStaff:    u.IsStaff,
		CreatedAt:  u.CreatedAt,
	}
}

func toLoginUserResponse(u *domain.User) loginUserResponse {
	return loginUserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		IsStaff:  u.IsStaff,
	}
}
