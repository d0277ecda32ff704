package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// UpdateUserInput carries a partial profile update. Nil fields are left
// untouched. Username, role and the staff flag are not self-serviceable.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Password  *string
}

// UserService defines self-service profile operations and the
// admin-only account management surface.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	// Delete removes the account and cascades deletion of its products.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
}
