package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	CreateDepartment(ctx context.Context, dept *Department) error
	ListDepartments(ctx context.Context) ([]*Department, error)
	FindDepartment(ctx context.Context, id snowflake.ID) (*Department, error)

	// CreateFiscalYear closes any open year first when fy is open.
	CreateFiscalYear(ctx context.Context, fy *FiscalYear) error
	ListFiscalYears(ctx context.Context) ([]*FiscalYear, error)
	FindFiscalYear(ctx context.Context, id snowflake.ID) (*FiscalYear, error)
	FindOpenFiscalYear(ctx context.Context) (*FiscalYear, error)

	CreateEmployee(ctx context.Context, emp *Employee) error
	ListEmployees(ctx context.Context, departmentID *snowflake.ID) ([]*Employee, error)
	FindEmployee(ctx context.Context, id snowflake.ID) (*Employee, error)

	CreateVendor(ctx context.Context, vendor *Vendor) error
	ListVendors(ctx context.Context, name string) ([]*Vendor, error)
	FindVendor(ctx context.Context, id snowflake.ID) (*Vendor, error)
}
