package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTrx(tx *gorm.DB) Repository
	Create(ctx context.Context, req *ObligationRequest) error
	Save(ctx context.Context, req *ObligationRequest) error
	FindByID(ctx context.Context, id snowflake.ID) (*ObligationRequest, error)
	FindByIDForUpdate(ctx context.Context, id snowflake.ID) (*ObligationRequest, error)
	List(ctx context.Context, filter ListFilter) ([]*ObligationRequest, error)
}

type ListFilter struct {
	Status       Status
	DepartmentID snowflake.ID
	FiscalYearID snowflake.ID
	BeforeID     snowflake.ID
	Limit        int
}
