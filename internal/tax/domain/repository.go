package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, code *TaxCode) error
	FindByID(ctx context.Context, id snowflake.ID) (*TaxCode, error)
	FindByCode(ctx context.Context, code string) (*TaxCode, error)
	List(ctx context.Context, filter ListRequest) ([]TaxCode, error)
	Update(ctx context.Context, code *TaxCode) error
}
