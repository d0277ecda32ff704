package domain

import "time"

// Roles form a closed enumeration. Staff is an orthogonal capability flag,
// not a role: a CLIENT can be staff and an ADMIN can lack the flag.
const (
	RoleClient = "CLIENT"
	RoleVendor = "VENDOR"
	RoleAdmin  = "ADMIN"
)

// ValidRole reports whether r is one of the enumerated roles.
func ValidRole(r string) bool {
	return r == RoleClient || r == RoleVendor || r == RoleAdmin
}

// User models an account. Username, Email and NationalID are each unique
// store-wide; the hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	NationalID   string    `json:"national_id,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may manage other accounts.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.Role == RoleAdmin
}
