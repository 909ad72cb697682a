package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/disbursement/domain"
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

func (r *repository) Create(ctx context.Context, v *domain.Voucher) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) Save(ctx context.Context, v *domain.Voucher) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Voucher, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id snowflake.ID) (*domain.Voucher, error) {
	stmt := r.db.WithContext(ctx)
	if stmt.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.find(stmt, id)
}

func (r *repository) find(stmt *gorm.DB, id snowflake.ID) (*domain.Voucher, error) {
	var v domain.Voucher
	err := stmt.Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Voucher, error) {
	stmt := r.db.WithContext(ctx).Model(&domain.Voucher{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.ObligationRequestID != 0 {
		stmt = stmt.Where("obligation_request_id = ?", filter.ObligationRequestID)
	}
	stmt = option.WithIDBefore(int64(filter.BeforeID)).Apply(stmt.Order("id desc"))
	stmt = option.WithLimit(filter.Limit).Apply(stmt)

	var items []*domain.Voucher
	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SumActiveByObligation loads the net amounts and adds them in Go so the
// result is exact on every dialect.
func (r *repository) SumActiveByObligation(ctx context.Context, obligationID snowflake.ID) (domain.SumResult, error) {
	var nets []decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&domain.Voucher{}).
		Where("obligation_request_id = ? AND status <> ?", obligationID, domain.StatusCancelled).
		Pluck("total_net", &nets).Error
	if err != nil {
		return domain.SumResult{}, err
	}

	out := domain.SumResult{Net: decimal.Zero, Count: int64(len(nets))}
	for _, n := range nets {
		out.Net = out.Net.Add(n)
	}
	return out, nil
}
