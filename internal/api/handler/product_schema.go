package handler

import "time"

// createProductRequest doubles as the PUT body: a full update replaces
// every mutable field, with price/stock falling back to their defaults
// when omitted, mirroring creation.
type createProductRequest struct {
	Code        string   `json:"code"        validate:"required"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock"       validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active"`
}

// patchProductRequest carries a partial update: only present fields are
// applied. Slug is not accepted on any write path.
type patchProductRequest struct {
	Code        *string  `json:"code"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	OwnerID     string    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
