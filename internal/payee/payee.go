// Package payee models who a voucher pays: an employee, a vendor, or an
// individual entered inline.
package payee

import (
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidKind = errors.New("invalid_payee_kind")
	ErrInvalidName = errors.New("invalid_payee_name")
	ErrNotFound    = errors.New("payee_not_found")
)

type Kind string

const (
	KindEmployee   Kind = "employee"
	KindVendor     Kind = "vendor"
	KindIndividual Kind = "individual"
)

// Payee is implemented only by Employee, Vendor and Individual.
type Payee interface {
	Kind() Kind
	DisplayName() string
	isPayee()
}

type Employee struct {
	EmployeeID snowflake.ID
	Name       string
	Position   string
	Department string
	TIN        string
}

type Vendor struct {
	VendorID snowflake.ID
	Name     string
	TIN      string
	Address  string
}

type Individual struct {
	Name    string
	Address string
	TIN     string
}

func (Employee) Kind() Kind   { return KindEmployee }
func (Vendor) Kind() Kind     { return KindVendor }
func (Individual) Kind() Kind { return KindIndividual }

func (e Employee) DisplayName() string   { return e.Name }
func (v Vendor) DisplayName() string     { return v.Name }
func (i Individual) DisplayName() string { return i.Name }

func (Employee) isPayee()   {}
func (Vendor) isPayee()     {}
func (Individual) isPayee() {}

// Ref is the stored and transmitted form of a payee.
type Ref struct {
	Kind       Kind   `json:"kind"`
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	TIN        string `json:"tin,omitempty"`
	Address    string `json:"address,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
}

// FromRef rebuilds a payee from its stored form without consulting
// reference data.
func FromRef(ref Ref) (Payee, error) {
	name := strings.TrimSpace(ref.Name)
	switch Kind(strings.ToLower(strings.TrimSpace(string(ref.Kind)))) {
	case KindEmployee:
		id, err := snowflake.ParseString(strings.TrimSpace(ref.ID))
		if err != nil {
			return nil, ErrNotFound
		}
		return Employee{EmployeeID: id, Name: name, Position: ref.Position, Department: ref.Department, TIN: ref.TIN}, nil
	case KindVendor:
		id, err := snowflake.ParseString(strings.TrimSpace(ref.ID))
		if err != nil {
			return nil, ErrNotFound
		}
		return Vendor{VendorID: id, Name: name, TIN: ref.TIN, Address: ref.Address}, nil
	case KindIndividual:
		if name == "" {
			return nil, ErrInvalidName
		}
		return Individual{Name: name, Address: strings.TrimSpace(ref.Address), TIN: strings.TrimSpace(ref.TIN)}, nil
	default:
		return nil, ErrInvalidKind
	}
}

func ToRef(p Payee) Ref {
	switch v := p.(type) {
	case Employee:
		return Ref{Kind: KindEmployee, ID: v.EmployeeID.String(), Name: v.Name, TIN: v.TIN, Position: v.Position, Department: v.Department}
	case Vendor:
		return Ref{Kind: KindVendor, ID: v.VendorID.String(), Name: v.Name, TIN: v.TIN, Address: v.Address}
	case Individual:
		return Ref{Kind: KindIndividual, Name: v.Name, TIN: v.TIN, Address: v.Address}
	default:
		return Ref{}
	}
}
