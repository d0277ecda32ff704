package domain

import (
	"regexp"
	"strings"
	"time"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// Product is a catalog listing. OwnerID is empty for ownerless products.
// Slug is assigned once at creation and never recomputed, even when the
// name changes later.
type Product struct {
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

// NormalizeCode trims surrounding whitespace and upper-cases the code.
// Normalization happens before any validation, so an all-whitespace code
// normalizes to the empty string and is rejected as missing.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidCode reports whether a normalized code contains only uppercase
// letters, digits, hyphens and underscores.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}
