package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fmis/internal/obligation/domain"
	"github.com/smallbiznis/fmis/pkg/db/option"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTrx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, req *domain.ObligationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) Save(ctx context.Context, req *domain.ObligationRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.ObligationRequest, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate locks the row on dialects that support row locks.
func (r *repository) FindByIDForUpdate(ctx context.Context, id snowflake.ID) (*domain.ObligationRequest, error) {
	stmt := r.db.WithContext(ctx)
	if stmt.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.find(stmt, id)
}

func (r *repository) find(stmt *gorm.DB, id snowflake.ID) (*domain.ObligationRequest, error) {
	var req domain.ObligationRequest
	err := stmt.Where("id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.ObligationRequest, error) {
	stmt := r.db.WithContext(ctx).Model(&domain.ObligationRequest{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != 0 {
		stmt = stmt.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.FiscalYearID != 0 {
		stmt = stmt.Where("fiscal_year_id = ?", filter.FiscalYearID)
	}
	stmt = option.WithIDBefore(int64(filter.BeforeID)).Apply(stmt.Order("id desc"))
	stmt = option.WithLimit(filter.Limit).Apply(stmt)

	var items []*domain.ObligationRequest
	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
