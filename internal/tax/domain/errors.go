package domain

import "errors"

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidTaxCode = errors.New("invalid_tax_code")
	ErrInvalidTaxKind = errors.New("invalid_tax_kind")
	ErrInvalidTaxRate = errors.New("invalid_tax_rate")
	ErrTaxCodeExists  = errors.New("tax_code_exists")
	ErrTaxCodeKind    = errors.New("tax_code_kind_mismatch")
)
