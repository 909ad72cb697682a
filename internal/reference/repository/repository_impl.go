package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fmis/internal/reference/domain"
	"github.com/smallbiznis/fmis/pkg/db/option"
	"github.com/smallbiznis/fmis/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db          *gorm.DB
	departments repository.Repository[domain.Department]
	fiscalYears repository.Repository[domain.FiscalYear]
	employees   repository.Repository[domain.Employee]
	vendors     repository.Repository[domain.Vendor]
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repo{
		db:          db,
		departments: repository.ProvideStore[domain.Department](db),
		fiscalYears: repository.ProvideStore[domain.FiscalYear](db),
		employees:   repository.ProvideStore[domain.Employee](db),
		vendors:     repository.ProvideStore[domain.Vendor](db),
	}
}

func byName() option.QueryOption {
	return option.WithSortBy(option.SortBy{Column: "name", Direction: "asc"})
}

func (r *repo) CreateDepartment(ctx context.Context, dept *domain.Department) error {
	return r.departments.Create(ctx, dept)
}

func (r *repo) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	return r.departments.Find(ctx, nil, byName())
}

func (r *repo) FindDepartment(ctx context.Context, id snowflake.ID) (*domain.Department, error) {
	return r.departments.FindByID(ctx, id)
}

func (r *repo) CreateFiscalYear(ctx context.Context, fy *domain.FiscalYear) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if fy.IsOpen {
			err := tx.Model(&domain.FiscalYear{}).
				Where("is_open = ?", true).
				Updates(map[string]any{"is_open": false, "updated_at": fy.UpdatedAt}).Error
			if err != nil {
				return err
			}
		}
		return r.fiscalYears.WithTrx(tx).Create(ctx, fy)
	})
}

func (r *repo) ListFiscalYears(ctx context.Context) ([]*domain.FiscalYear, error) {
	return r.fiscalYears.Find(ctx, nil, option.WithSortBy(option.SortBy{Column: "year", Direction: "desc"}))
}

func (r *repo) FindFiscalYear(ctx context.Context, id snowflake.ID) (*domain.FiscalYear, error) {
	return r.fiscalYears.FindByID(ctx, id)
}

func (r *repo) FindOpenFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	return r.fiscalYears.FindOne(ctx, &domain.FiscalYear{IsOpen: true})
}

func (r *repo) CreateEmployee(ctx context.Context, emp *domain.Employee) error {
	return r.employees.Create(ctx, emp)
}

func (r *repo) ListEmployees(ctx context.Context, departmentID *snowflake.ID) ([]*domain.Employee, error) {
	filter := &domain.Employee{}
	if departmentID != nil {
		filter.DepartmentID = departmentID
	}
	return r.employees.Find(ctx, filter, byName())
}

func (r *repo) FindEmployee(ctx context.Context, id snowflake.ID) (*domain.Employee, error) {
	return r.employees.FindByID(ctx, id)
}

func (r *repo) CreateVendor(ctx context.Context, vendor *domain.Vendor) error {
	return r.vendors.Create(ctx, vendor)
}

func (r *repo) ListVendors(ctx context.Context, name string) ([]*domain.Vendor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return r.vendors.Find(ctx, nil, byName())
	}
	return r.vendors.Find(ctx, nil, byName(), nameContains(name))
}

func (r *repo) FindVendor(ctx context.Context, id snowflake.ID) (*domain.Vendor, error) {
	return r.vendors.FindByID(ctx, id)
}

type nameFilter string

func (f nameFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(string(f))+"%")
}

func nameContains(name string) option.QueryOption { return nameFilter(name) }
