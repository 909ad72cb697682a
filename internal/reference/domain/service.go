package domain

import (
	"context"
	"time"
)

type Service interface {
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*Department, error)
	ListDepartments(ctx context.Context) ([]*Department, error)
	GetDepartment(ctx context.Context, id string) (*Department, error)

	CreateFiscalYear(ctx context.Context, req CreateFiscalYearRequest) (*FiscalYear, error)
	ListFiscalYears(ctx context.Context) ([]*FiscalYear, error)
	// ResolveFiscalYear returns the given year, or the open year when id is empty.
	ResolveFiscalYear(ctx context.Context, id string) (*FiscalYear, error)

	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*Employee, error)
	ListEmployees(ctx context.Context, departmentID string) ([]*Employee, error)
	GetEmployee(ctx context.Context, id string) (*Employee, error)

	CreateVendor(ctx context.Context, req CreateVendorRequest) (*Vendor, error)
	ListVendors(ctx context.Context, name string) ([]*Vendor, error)
	GetVendor(ctx context.Context, id string) (*Vendor, error)
}

type CreateDepartmentRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Head string `json:"head"`
}

type CreateFiscalYearRequest struct {
	Year     int        `json:"year"`
	StartsOn *time.Time `json:"starts_on"`
	EndsOn   *time.Time `json:"ends_on"`
	Open     bool       `json:"open"`
}

type CreateEmployeeRequest struct {
	EmployeeNo   string `json:"employee_no"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	DepartmentID string `json:"department_id"`
	TIN          string `json:"tin"`
}

type CreateVendorRequest struct {
	Name      string `json:"name"`
	TIN       string `json:"tin"`
	Address   string `json:"address"`
	ContactNo string `json:"contact_no"`
	Vatable   *bool  `json:"vatable"`
}
