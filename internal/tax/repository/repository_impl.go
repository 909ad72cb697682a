package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
	"github.com/smallbiznis/fmis/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) taxdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, code *taxdomain.TaxCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*taxdomain.TaxCode, error) {
	var code taxdomain.TaxCode
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *repository) FindByCode(ctx context.Context, value string) (*taxdomain.TaxCode, error) {
	var code taxdomain.TaxCode
	err := r.db.WithContext(ctx).Where("code = ?", value).First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *repository) List(ctx context.Context, filter taxdomain.ListRequest) ([]taxdomain.TaxCode, error) {
	var items []taxdomain.TaxCode
	stmt := r.db.WithContext(ctx).Model(&taxdomain.TaxCode{})

	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.Code != "" {
		stmt = stmt.Where("code = ?", filter.Code)
	}
	if filter.Kind != "" {
		stmt = stmt.Where("kind = ?", filter.Kind)
	}
	if filter.IsEnabled != nil {
		stmt = stmt.Where("is_enabled = ?", *filter.IsEnabled)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
		"code":       true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, code *taxdomain.TaxCode) error {
	return r.db.WithContext(ctx).
		Model(&taxdomain.TaxCode{}).
		Where("id = ?", code.ID).
		Updates(map[string]any{
			"name":         code.Name,
			"kind":         code.Kind,
			"rate_percent": code.RatePercent,
			"description":  code.Description,
			"is_enabled":   code.IsEnabled,
			"updated_at":   code.UpdatedAt,
		}).Error
}
