package domain

import "errors"

var (
	ErrInvalidID               = errors.New("invalid_id")
	ErrInvalidParticulars      = errors.New("invalid_particulars")
	ErrInvalidModeOfPayment    = errors.New("invalid_mode_of_payment")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
	ErrObligationNotApproved   = errors.New("obligation_not_approved")
	ErrAmountExceedsObligation = errors.New("amount_exceeds_obligation")
	ErrCheckNumberRequired     = errors.New("check_number_required")
	ErrNotFound                = errors.New("not_found")
)
