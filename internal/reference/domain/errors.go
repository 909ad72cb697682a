package domain

import "errors"

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidCode       = errors.New("invalid_code")
	ErrInvalidYear       = errors.New("invalid_year")
	ErrInvalidDepartment = errors.New("invalid_department")
	ErrDuplicate         = errors.New("already_exists")
	ErrNotFound          = errors.New("not_found")
	ErrNoOpenFiscalYear  = errors.New("no_open_fiscal_year")
)
