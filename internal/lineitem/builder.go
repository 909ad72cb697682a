package lineitem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/pkg/numeric"
)

var ErrInvalidItems = errors.New("invalid_items")

// RateResolver maps a line's tax codes to withholding rates, falling back to
// the explicit rates when a code is empty.
type RateResolver interface {
	ResolveRates(ctx context.Context, taxCode, ewtCode string, taxRate, ewtRate decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)
}

// Builder validates and computes the lines of a document.
type Builder struct {
	Rates      RateResolver
	DefaultVAT func() decimal.Decimal
}

// ItemError reports which line failed validation.
type ItemError struct {
	Index int
	Field string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("items[%d].%s: %v", e.Index, e.Field, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// BuildAll computes every line. Documents need at least one line, each with a
// description, a positive quantity and a non-negative price.
func (b Builder) BuildAll(ctx context.Context, inputs []ItemInput) ([]Item, error) {
	if len(inputs) == 0 {
		return nil, ErrInvalidItems
	}
	for i, in := range inputs {
		if err := validateInput(i, in); err != nil {
			return nil, err
		}
	}
	return b.ComputeAll(ctx, inputs)
}

// ComputeAll computes lines without document validation, the way a live
// calculator form does: unparseable figures count as zero. Only unknown tax
// codes fail.
func (b Builder) ComputeAll(ctx context.Context, inputs []ItemInput) ([]Item, error) {
	defaultVAT := DefaultVATRate
	if b.DefaultVAT != nil {
		defaultVAT = b.DefaultVAT()
	}

	items := make([]Item, 0, len(inputs))
	for i, in := range inputs {
		taxRate := numeric.Decimal(in.TaxRate)
		ewtRate := numeric.Decimal(in.EWTRate)
		if b.Rates != nil {
			var err error
			taxRate, ewtRate, err = b.Rates.ResolveRates(ctx, in.TaxCode, in.EWTCode, taxRate, ewtRate)
			if err != nil {
				return nil, &ItemError{Index: i, Field: "tax_code", Err: err}
			}
		}

		items = append(items, Build(in, taxRate, ewtRate, defaultVAT))
	}
	return items, nil
}

func validateInput(i int, in ItemInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return &ItemError{Index: i, Field: "description", Err: ErrInvalidItems}
	}
	if qty := numeric.Decimal(in.Quantity); !qty.IsPositive() {
		return &ItemError{Index: i, Field: "quantity", Err: ErrInvalidItems}
	}
	if price := numeric.Decimal(in.Price); price.IsNegative() {
		return &ItemError{Index: i, Field: "price", Err: ErrInvalidItems}
	}
	return nil
}
