package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing products.
type ListProductsFilter struct {
	ActiveOnly bool   // true = anonymous caller, only is_active products
	OwnerID    string // non-empty = scoped to one owner's products
	Search     string // optional: case-insensitive substring over name/code/description
	OrderBy    string // "created_at", "price" or "name"
	Descending bool
}

// ProductRepository defines persistence operations for products.
//
// Update and Delete take a requireOwner argument: when non-empty, the
// write is conditioned on the stored owner still matching, so the
// ownership check and the mutation hit the store as one atomic
// operation. A non-matching owner yields domain.ErrProductNotFound and
// no partial write.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, p *domain.Product, requireOwner string) error
	Delete(ctx context.Context, id string, requireOwner string) error
	// DeleteByOwner removes every product owned by the given user and
	// returns how many were deleted. Used by account-deletion cascade.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
