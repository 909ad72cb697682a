package domain

import "errors"

var (
	ErrInvalidID               = errors.New("invalid_id")
	ErrInvalidPurpose          = errors.New("invalid_purpose")
	ErrInvalidDepartment       = errors.New("invalid_department")
	ErrInvalidAttachment       = errors.New("invalid_attachment")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
	ErrNotFound                = errors.New("not_found")
)
