package handler

import (
	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createProductRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	}
}

// toFullUpdateInput maps a PUT body: every field is treated as present,
// with price/stock defaulting to zero when omitted.
func toFullUpdateInput(req createProductRequest) ports.UpdateProductInput {
	price := 0.0
	if req.Price != nil {
		price = *req.Price
	}
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return ports.UpdateProductInput{
		Code:        &req.Code,
		Name:        &req.Name,
		Description: &req.Description,
		Price:       &price,
		Stock:       &stock,
		IsActive:    &active,
	}
}

func toPartialUpdateInput(req patchProductRequest) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	}
}

// --- Domain → HTTP response ---

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
