package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/reference/domain"
	"github.com/smallbiznis/fmis/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Clock clock.Clock
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	clock clock.Clock
}

func NewService(p serviceParams) domain.Service {
	return &Service{
		log:   p.Log.Named("reference.service"),
		genID: p.GenID,
		repo:  p.Repo,
		clock: p.Clock,
	}
}

func (s *Service) CreateDepartment(ctx context.Context, req domain.CreateDepartmentRequest) (*domain.Department, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = name
	}
	code = strings.ToUpper(slug.Make(code))
	if code == "" {
		return nil, domain.ErrInvalidCode
	}

	now := s.clock.Now().UTC()
	dept := &domain.Department{
		ID:        s.genID.Generate(),
		Code:      code,
		Name:      name,
		Head:      strings.TrimSpace(req.Head),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateDepartment(ctx, dept); err != nil {
		return nil, mapCreateErr(err)
	}
	return dept, nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	return s.repo.ListDepartments(ctx)
}

func (s *Service) GetDepartment(ctx context.Context, id string) (*domain.Department, error) {
	deptID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	dept, err := s.repo.FindDepartment(ctx, deptID)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrNotFound
	}
	return dept, nil
}

func (s *Service) CreateFiscalYear(ctx context.Context, req domain.CreateFiscalYearRequest) (*domain.FiscalYear, error) {
	if req.Year < 1900 || req.Year > 9999 {
		return nil, domain.ErrInvalidYear
	}

	loc := s.clock.Now().Location()
	startsOn := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, loc)
	endsOn := time.Date(req.Year, time.December, 31, 0, 0, 0, 0, loc)
	if req.StartsOn != nil {
		startsOn = *req.StartsOn
	}
	if req.EndsOn != nil {
		endsOn = *req.EndsOn
	}
	if !endsOn.After(startsOn) {
		return nil, domain.ErrInvalidYear
	}

	now := s.clock.Now().UTC()
	fy := &domain.FiscalYear{
		ID:        s.genID.Generate(),
		Year:      req.Year,
		StartsOn:  startsOn,
		EndsOn:    endsOn,
		IsOpen:    req.Open,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateFiscalYear(ctx, fy); err != nil {
		return nil, mapCreateErr(err)
	}

	s.log.Info("fiscal year created", zap.Int("year", fy.Year), zap.Bool("open", fy.IsOpen))
	return fy, nil
}

func (s *Service) ListFiscalYears(ctx context.Context) ([]*domain.FiscalYear, error) {
	return s.repo.ListFiscalYears(ctx)
}

func (s *Service) ResolveFiscalYear(ctx context.Context, id string) (*domain.FiscalYear, error) {
	if strings.TrimSpace(id) == "" {
		fy, err := s.repo.FindOpenFiscalYear(ctx)
		if err != nil {
			return nil, err
		}
		if fy == nil {
			return nil, domain.ErrNoOpenFiscalYear
		}
		return fy, nil
	}

	fyID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	fy, err := s.repo.FindFiscalYear(ctx, fyID)
	if err != nil {
		return nil, err
	}
	if fy == nil {
		return nil, domain.ErrNotFound
	}
	return fy, nil
}

func (s *Service) CreateEmployee(ctx context.Context, req domain.CreateEmployeeRequest) (*domain.Employee, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	employeeNo := strings.TrimSpace(req.EmployeeNo)
	if employeeNo == "" {
		return nil, domain.ErrInvalidCode
	}

	var departmentID *snowflake.ID
	if strings.TrimSpace(req.DepartmentID) != "" {
		dept, err := s.GetDepartment(ctx, req.DepartmentID)
		if err != nil {
			return nil, domain.ErrInvalidDepartment
		}
		departmentID = &dept.ID
	}

	now := s.clock.Now().UTC()
	emp := &domain.Employee{
		ID:           s.genID.Generate(),
		EmployeeNo:   employeeNo,
		Name:         name,
		Position:     strings.TrimSpace(req.Position),
		DepartmentID: departmentID,
		TIN:          strings.TrimSpace(req.TIN),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateEmployee(ctx, emp); err != nil {
		return nil, mapCreateErr(err)
	}
	return emp, nil
}

func (s *Service) ListEmployees(ctx context.Context, departmentID string) ([]*domain.Employee, error) {
	if strings.TrimSpace(departmentID) == "" {
		return s.repo.ListEmployees(ctx, nil)
	}
	id, err := parseID(departmentID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListEmployees(ctx, &id)
}

func (s *Service) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	empID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	emp, err := s.repo.FindEmployee(ctx, empID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	return emp, nil
}

func (s *Service) CreateVendor(ctx context.Context, req domain.CreateVendorRequest) (*domain.Vendor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	vatable := true
	if req.Vatable != nil {
		vatable = *req.Vatable
	}

	now := s.clock.Now().UTC()
	vendor := &domain.Vendor{
		ID:        s.genID.Generate(),
		Name:      name,
		TIN:       strings.TrimSpace(req.TIN),
		Address:   strings.TrimSpace(req.Address),
		ContactNo: strings.TrimSpace(req.ContactNo),
		Vatable:   vatable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateVendor(ctx, vendor); err != nil {
		return nil, mapCreateErr(err)
	}
	return vendor, nil
}

func (s *Service) ListVendors(ctx context.Context, name string) ([]*domain.Vendor, error) {
	return s.repo.ListVendors(ctx, name)
}

func (s *Service) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	vendorID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	vendor, err := s.repo.FindVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	return vendor, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func mapCreateErr(err error) error {
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrDuplicate
	}
	return err
}
