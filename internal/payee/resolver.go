package payee

import (
	"context"
	"errors"

	refdomain "github.com/smallbiznis/fmis/internal/reference/domain"
	"go.uber.org/fx"
)

// Resolver validates a payee reference against reference data and fills in
// the canonical name and details.
type Resolver interface {
	Resolve(ctx context.Context, ref Ref) (Payee, error)
}

type resolverParams struct {
	fx.In

	Reference refdomain.Service
}

type resolver struct {
	reference refdomain.Service
}

func NewResolver(p resolverParams) Resolver {
	return &resolver{reference: p.Reference}
}

func (r *resolver) Resolve(ctx context.Context, ref Ref) (Payee, error) {
	p, err := FromRef(ref)
	if err != nil {
		return nil, err
	}

	switch v := p.(type) {
	case Employee:
		emp, err := r.reference.GetEmployee(ctx, v.EmployeeID.String())
		if err != nil {
			return nil, notFound(err)
		}
		out := Employee{EmployeeID: emp.ID, Name: emp.Name, Position: emp.Position, TIN: emp.TIN}
		if emp.DepartmentID != nil {
			if dept, err := r.reference.GetDepartment(ctx, emp.DepartmentID.String()); err == nil {
				out.Department = dept.Name
			}
		}
		return out, nil
	case Vendor:
		vendor, err := r.reference.GetVendor(ctx, v.VendorID.String())
		if err != nil {
			return nil, notFound(err)
		}
		return Vendor{VendorID: vendor.ID, Name: vendor.Name, TIN: vendor.TIN, Address: vendor.Address}, nil
	case Individual:
		return v, nil
	default:
		return nil, ErrInvalidKind
	}
}

func notFound(err error) error {
	if errors.Is(err, refdomain.ErrNotFound) || errors.Is(err, refdomain.ErrInvalidID) {
		return ErrNotFound
	}
	return err
}
