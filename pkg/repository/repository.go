package repository

import (
	"context"

	"github.com/smallbiznis/fmis/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is a generic gorm-backed store keyed by id.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	FindByID(ctx context.Context, id any) (*T, error)
	Create(ctx context.Context, resource *T) error
	Update(ctx context.Context, resourceID any, resource any) error
	Count(ctx context.Context, query *T) (int64, error)
}
