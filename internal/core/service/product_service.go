package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/mercadito/marketplace-api/internal/api/metrics"
	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
)

// ProductService implements the catalog use cases on top of a
// ProductRepository. All authorization decisions go through
// domain.CanMutate / domain.CanCreateProducts before any write.
type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

// List returns products ordered by creation time descending unless the
// caller requests otherwise. Anonymous callers only see active
// products; authenticated callers (any role) see everything.
func (s *ProductService) List(ctx context.Context, in ports.ListProductsInput) ([]*domain.Product, error) {
	orderBy, descending := parseOrdering(in.Ordering)
	return s.repo.List(ctx, ports.ListProductsFilter{
		ActiveOnly: !in.Authenticated,
		Search:     strings.TrimSpace(in.Search),
		OrderBy:    orderBy,
		Descending: descending,
	})
}

// MyProducts returns only the requester's own products, newest first.
func (s *ProductService) MyProducts(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	return s.repo.List(ctx, ports.ListProductsFilter{
		OwnerID:    ownerID,
		OrderBy:    "created_at",
		Descending: true,
	})
}

// Get looks up by slug first, then by id for compatibility with older
// clients. Direct retrieval does not apply the active-only filter, so
// an inactive product is reachable by anyone holding its identifier.
func (s *ProductService) Get(ctx context.Context, slugOrID string) (*domain.Product, error) {
	p, err := s.repo.FindBySlug(ctx, slugOrID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}
	return s.repo.FindByID(ctx, slugOrID)
}

// Create validates and stores a new product owned by the actor. The
// slug is derived here, exactly once.
func (s *ProductService) Create(ctx context.Context, actor domain.Actor, in ports.CreateProductInput) (*domain.Product, error) {
	if !domain.CanCreateProducts(actor) {
		s.log.Warn().Str("user_id", actor.ID).Str("role", actor.Role).Msg("product create denied")
		metrics.ProductMutationsTotal.WithLabelValues("create", "denied").Inc()
		return nil, domain.ErrCreateForbidden
	}

	code := domain.NormalizeCode(in.Code)
	if ve := validateCode(code); ve != nil {
		metrics.ProductMutationsTotal.WithLabelValues("create", "validation_error").Inc()
		return nil, ve
	}

	productSlug, err := s.uniqueSlug(ctx, in.Name, code)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{
		Code:        code,
		Name:        in.Name,
		Slug:        productSlug,
		Description: in.Description,
		IsActive:    true,
		OwnerID:     actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		var dup *domain.ValidationError
		if errors.As(err, &dup) {
			metrics.ProductMutationsTotal.WithLabelValues("create", "validation_error").Inc()
			return nil, dup
		}
		metrics.ProductMutationsTotal.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	s.log.Info().Str("slug", created.Slug).Str("code", created.Code).Str("owner_id", actor.ID).Msg("product created")
	metrics.ProductMutationsTotal.WithLabelValues("create", "success").Inc()
	return created, nil
}

// Update applies field changes after the ownership check. A changed
// name is stored upper-cased; the slug is never recomputed. Serves
// both full and partial updates: the handler decides which fields are
// present.
func (s *ProductService) Update(ctx context.Context, actor domain.Actor, slugOrID string, in ports.UpdateProductInput) (*domain.Product, error) {
	p, err := s.Get(ctx, slugOrID)
	if err != nil {
		return nil, err
	}

	if !domain.CanMutate(actor, p.OwnerID) {
		s.log.Warn().Str("user_id", actor.ID).Str("slug", p.Slug).Str("owner_id", p.OwnerID).Msg("product update denied")
		metrics.ProductMutationsTotal.WithLabelValues("update", "denied").Inc()
		return nil, domain.ErrUpdateForbidden
	}

	if in.Code != nil {
		code := domain.NormalizeCode(*in.Code)
		if ve := validateCode(code); ve != nil {
			metrics.ProductMutationsTotal.WithLabelValues("update", "validation_error").Inc()
			return nil, ve
		}
		p.Code = code
	}
	if in.Name != nil {
		p.Name = strings.ToUpper(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = time.Now().UTC()

	// Non-staff owners write with an owner-conditioned query so the
	// permission check and the mutation are one atomic operation.
	requireOwner := ""
	if !actor.IsStaff {
		requireOwner = actor.ID
	}

	if err := s.repo.Update(ctx, p, requireOwner); err != nil {
		var dup *domain.ValidationError
		if errors.As(err, &dup) {
			metrics.ProductMutationsTotal.WithLabelValues("update", "validation_error").Inc()
			return nil, dup
		}
		metrics.ProductMutationsTotal.WithLabelValues("update", "error").Inc()
		return nil, err
	}

	s.log.Info().Str("slug", p.Slug).Str("user_id", actor.ID).Msg("product updated")
	metrics.ProductMutationsTotal.WithLabelValues("update", "success").Inc()
	return p, nil
}

// Delete removes the product permanently after the ownership check.
func (s *ProductService) Delete(ctx context.Context, actor domain.Actor, slugOrID string) error {
	p, err := s.Get(ctx, slugOrID)
	if err != nil {
		return err
	}

	if !domain.CanMutate(actor, p.OwnerID) {
		s.log.Warn().Str("user_id", actor.ID).Str("slug", p.Slug).Str("owner_id", p.OwnerID).Msg("product delete denied")
		metrics.ProductMutationsTotal.WithLabelValues("delete", "denied").Inc()
		return domain.ErrDeleteForbidden
	}

	requireOwner := ""
	if !actor.IsStaff {
		requireOwner = actor.ID
	}

	if err := s.repo.Delete(ctx, p.ID, requireOwner); err != nil {
		metrics.ProductMutationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	s.log.Info().Str("slug", p.Slug).Str("user_id", actor.ID).Msg("product deleted")
	metrics.ProductMutationsTotal.WithLabelValues("delete", "success").Inc()
	return nil
}

// uniqueSlug derives the slug from the name, falling back to the code,
// and appends -1, -2, … until it finds an unused value.
func (s *ProductService) uniqueSlug(ctx context.Context, name, code string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = slug.Make(code)
	}

	candidate := base
	for i := 1; ; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func validateCode(code string) *domain.ValidationError {
	if code == "" {
		ve := domain.NewValidationError()
		ve.Add("code", "El código es obligatorio.")
		return ve
	}
	if !domain.ValidCode(code) {
		ve := domain.NewValidationError()
		ve.Add("code", "El código solo puede contener letras mayúsculas, números, guiones y guiones bajos.")
		return ve
	}
	return nil
}

// parseOrdering maps the DRF-style ordering parameter ("price",
// "-name", …) onto a whitelisted sort key. Unknown values fall back to
// the default: creation time descending.
func parseOrdering(ordering string) (orderBy string, descending bool) {
	field := strings.TrimSpace(ordering)
	if strings.HasPrefix(field, "-") {
		descending = true
		field = field[1:]
	}
	switch field {
	case "price", "name", "created_at":
		return field, descending
	default:
		return "created_at", true
	}
}
