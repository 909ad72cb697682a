package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/cache"
	"github.com/smallbiznis/fmis/internal/clock"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
	"github.com/smallbiznis/fmis/pkg/db"
	"github.com/smallbiznis/fmis/pkg/numeric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  taxdomain.Repository
	Clock clock.Clock
	Cache cache.TaxCodeCache `optional:"true"`
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  taxdomain.Repository
	clock clock.Clock
	cache cache.TaxCodeCache
}

func NewService(p serviceParams) taxdomain.Service {
	return &Service{
		log:   p.Log.Named("tax.service"),
		genID: p.GenID,
		repo:  p.Repo,
		clock: p.Clock,
		cache: p.Cache,
	}
}

func (s *Service) List(ctx context.Context, req taxdomain.ListRequest) ([]taxdomain.Response, error) {
	filter := taxdomain.ListRequest{
		Name:      strings.TrimSpace(req.Name),
		Code:      NormalizeCode(req.Code),
		Kind:      normalizeKind(req.Kind),
		IsEnabled: req.IsEnabled,
		SortBy:    strings.TrimSpace(req.SortBy),
		OrderBy:   strings.TrimSpace(req.OrderBy),
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]taxdomain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}

	return resp, nil
}

func (s *Service) Create(ctx context.Context, req taxdomain.CreateRequest) (*taxdomain.Response, error) {
	code := NormalizeCode(req.Code)
	if code == "" {
		return nil, taxdomain.ErrInvalidTaxCode
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, taxdomain.ErrInvalidName
	}

	rate, err := parseRate(req.RatePercent)
	if err != nil {
		return nil, err
	}

	isEnabled := true
	if req.IsEnabled != nil {
		isEnabled = *req.IsEnabled
	}

	now := s.clock.Now().UTC()
	record := &taxdomain.TaxCode{
		ID:          s.genID.Generate(),
		Code:        code,
		Name:        name,
		Kind:        normalizeKind(req.Kind),
		RatePercent: rate,
		Description: trimmedPtr(req.Description),
		IsEnabled:   isEnabled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, taxdomain.ErrTaxCodeExists
		}
		return nil, err
	}

	s.invalidate(record.Code)
	s.log.Info("tax code created", zap.String("code", record.Code), zap.String("kind", string(record.Kind)))
	resp := toResponse(record)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req taxdomain.UpdateRequest) (*taxdomain.Response, error) {
	item, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, taxdomain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Kind != nil {
		item.Kind = normalizeKind(*req.Kind)
	}
	if !numeric.IsBlank(req.RatePercent) {
		rate, err := parseRate(req.RatePercent)
		if err != nil {
			return nil, err
		}
		item.RatePercent = rate
	}
	if req.Description != nil {
		item.Description = trimmedPtr(req.Description)
	}
	if req.IsEnabled != nil {
		item.IsEnabled = *req.IsEnabled
	}

	item.UpdatedAt = s.clock.Now().UTC()
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(item.Code)

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Disable(ctx context.Context, id string) (*taxdomain.Response, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	item.IsEnabled = false
	item.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(item.Code)

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) invalidate(code string) {
	if s.cache != nil {
		s.cache.Invalidate(code)
	}
}

func (s *Service) find(ctx context.Context, id string) (*taxdomain.TaxCode, error) {
	codeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, taxdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, codeID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, taxdomain.ErrNotFound
	}
	return item, nil
}

func toResponse(code *taxdomain.TaxCode) taxdomain.Response {
	return taxdomain.Response{
		ID:          code.ID.String(),
		Code:        code.Code,
		Name:        code.Name,
		Kind:        code.Kind,
		RatePercent: code.RatePercent,
		Description: code.Description,
		IsEnabled:   code.IsEnabled,
		CreatedAt:   code.CreatedAt,
		UpdatedAt:   code.UpdatedAt,
	}
}

// NormalizeCode upper-cases a tax code and strips anything that is not a
// letter, digit or dash.
func NormalizeCode(value string) string {
	return strings.ToUpper(slug.Make(strings.TrimSpace(value)))
}

func normalizeKind(value taxdomain.Kind) taxdomain.Kind {
	return taxdomain.Kind(strings.ToLower(strings.TrimSpace(string(value))))
}

// parseRate rejects values that are present but not numeric.
func parseRate(value any) (decimal.Decimal, error) {
	if numeric.IsBlank(value) {
		return decimal.Zero, taxdomain.ErrInvalidTaxRate
	}
	rate, ok := numeric.Parse(value)
	if !ok {
		return decimal.Zero, taxdomain.ErrInvalidTaxRate
	}
	return rate, nil
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
