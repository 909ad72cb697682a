package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Resolver turns tax codes on a line item into rates.
type Resolver interface {
	// Resolve returns the enabled tax code. Codes missing from the database
	// fall back to the presets in the rates config.
	Resolve(ctx context.Context, code string) (*TaxCode, error)
	// ResolveRates returns the withholding and EWT rates for a line. An empty
	// code keeps the matching fallback rate.
	ResolveRates(ctx context.Context, taxCode, ewtCode string, taxRate, ewtRate decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Disable(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	Name      string
	Code      string
	Kind      Kind
	IsEnabled *bool
	SortBy    string
	OrderBy   string
}

type CreateRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Kind        Kind    `json:"kind"`
	RatePercent any     `json:"rate_percent"`
	Description *string `json:"description"`
	IsEnabled   *bool   `json:"is_enabled"`
}

type UpdateRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Kind        *Kind   `json:"kind,omitempty"`
	RatePercent any     `json:"rate_percent,omitempty"`
	Description *string `json:"description,omitempty"`
	IsEnabled   *bool   `json:"is_enabled,omitempty"`
}

type Response struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Kind        Kind            `json:"kind"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	Description *string         `json:"description,omitempty"`
	IsEnabled   bool            `json:"is_enabled"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
