package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTrx(tx *gorm.DB) Repository
	Create(ctx context.Context, v *Voucher) error
	Save(ctx context.Context, v *Voucher) error
	FindByID(ctx context.Context, id snowflake.ID) (*Voucher, error)
	FindByIDForUpdate(ctx context.Context, id snowflake.ID) (*Voucher, error)
	List(ctx context.Context, filter ListFilter) ([]*Voucher, error)
	// SumActiveByObligation totals the net amount of non-cancelled vouchers
	// drawn against an obligation request.
	SumActiveByObligation(ctx context.Context, obligationID snowflake.ID) (SumResult, error)
}

type ListFilter struct {
	Status              Status
	ObligationRequestID snowflake.ID
	BeforeID            snowflake.ID
	Limit               int
}
