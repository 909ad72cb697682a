package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/cache"
	"github.com/smallbiznis/fmis/internal/config"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
	"go.uber.org/fx"
)

type resolverParam struct {
	fx.In

	Repository taxdomain.Repository
	Rates      *config.RatesConfigHolder
	Cache      cache.TaxCodeCache `optional:"true"`
}

type resolver struct {
	repo  taxdomain.Repository
	rates *config.RatesConfigHolder
	cache cache.TaxCodeCache
}

func NewResolver(p resolverParam) taxdomain.Resolver {
	return &resolver{repo: p.Repository, rates: p.Rates, cache: p.Cache}
}

func (r *resolver) Resolve(ctx context.Context, value string) (*taxdomain.TaxCode, error) {
	code := NormalizeCode(value)
	if code == "" {
		return nil, taxdomain.ErrInvalidTaxCode
	}

	def, err := r.lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if def != nil {
		if !def.IsEnabled {
			return nil, taxdomain.ErrNotFound
		}
		return def, nil
	}

	for _, preset := range r.rates.Get().Withholding {
		if NormalizeCode(preset.Code) != code {
			continue
		}
		return &taxdomain.TaxCode{
			Code:        code,
			Name:        preset.Name,
			Kind:        taxdomain.Kind(strings.ToLower(preset.Kind)),
			RatePercent: decimal.NewFromFloat(preset.Rate),
			IsEnabled:   true,
		}, nil
	}
	return nil, taxdomain.ErrNotFound
}

// lookup reads a stored code through the cache. Presets are never cached so
// rates.yml reloads apply immediately.
func (r *resolver) lookup(ctx context.Context, code string) (*taxdomain.TaxCode, error) {
	if r.cache != nil {
		if def, ok := r.cache.Get(code); ok {
			return def, nil
		}
	}

	def, err := r.repo.FindByCode(ctx, code)
	if err != nil || def == nil {
		return def, err
	}
	if r.cache != nil {
		r.cache.Set(code, def)
	}
	return def, nil
}

func (r *resolver) ResolveRates(ctx context.Context, taxCode, ewtCode string, taxRate, ewtRate decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if strings.TrimSpace(taxCode) != "" {
		def, err := r.Resolve(ctx, taxCode)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		if def.Kind != taxdomain.KindWithholding {
			return decimal.Zero, decimal.Zero, taxdomain.ErrTaxCodeKind
		}
		taxRate = def.RatePercent
	}

	if strings.TrimSpace(ewtCode) != "" {
		def, err := r.Resolve(ctx, ewtCode)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		if def.Kind != taxdomain.KindEWT {
			return decimal.Zero, decimal.Zero, taxdomain.ErrTaxCodeKind
		}
		ewtRate = def.RatePercent
	}

	return taxRate, ewtRate, nil
}
