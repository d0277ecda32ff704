package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// ListProductsInput carries the list/search parameters. Authenticated
// controls the visibility rule: anonymous callers only see active
// products.
type ListProductsInput struct {
	Authenticated bool
	Search        string
	Ordering      string // "created_at", "price", "name", optionally "-" prefixed
}

// CreateProductInput carries the fields accepted on creation. Price,
// Stock and IsActive default to 0, 0 and true when nil.
type CreateProductInput struct {
	Code        string
	Name        string
	Description string
	Price       *float64
	Stock       *int
	IsActive    *bool
}

// UpdateProductInput carries a (possibly partial) set of field changes.
// Nil fields are left untouched. Slug is deliberately absent: it is
// immutable after creation.
type UpdateProductInput struct {
	Code        *string
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	IsActive    *bool
}

// ProductService defines the catalog use cases. Every mutating
// operation evaluates the ownership policy before touching the store.
type ProductService interface {
	List(ctx context.Context, input ListProductsInput) ([]*domain.Product, error)
	MyProducts(ctx context.Context, ownerID string) ([]*domain.Product, error)
	// Get looks up by slug first, then by id. The active-only visibility
	// filter is not applied on direct retrieval.
	Get(ctx context.Context, slugOrID string) (*domain.Product, error)
	Create(ctx context.Context, actor domain.Actor, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, actor domain.Actor, slugOrID string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, actor domain.Actor, slugOrID string) error
}
