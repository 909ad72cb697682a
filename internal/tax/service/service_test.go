package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/cache"
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/config"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
	"github.com/smallbiznis/fmis/internal/tax/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc      taxdomain.Service
	resolver taxdomain.Resolver
	repo     taxdomain.Repository
}

func setup(t *testing.T) fixture {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&taxdomain.TaxCode{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := repository.NewRepository(conn)
	fake := clock.NewFakeClock(time.Date(2024, time.May, 2, 8, 0, 0, 0, time.UTC))
	codes := cache.NewTaxCodeCache(fake)
	return fixture{
		svc: NewService(serviceParams{
			Log:   zap.NewNop(),
			GenID: node,
			Repo:  repo,
			Clock: fake,
			Cache: codes,
		}),
		resolver: NewResolver(resolverParam{
			Repository: repo,
			Rates:      config.NewStaticRatesConfigHolder(config.DefaultRatesConfig()),
			Cache:      codes,
		}),
		repo: repo,
	}
}

func TestCreateNormalizesAndValidates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, taxdomain.CreateRequest{
		Code:        " wc 158 ",
		Name:        "EWT on supplier of goods",
		Kind:        "EWT",
		RatePercent: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "WC-158", resp.Code)
	assert.Equal(t, taxdomain.KindEWT, resp.Kind)
	assert.True(t, resp.RatePercent.Equal(decimal.NewFromInt(1)))
	assert.True(t, resp.IsEnabled)

	_, err = f.svc.Create(ctx, taxdomain.CreateRequest{Code: "WC158", Name: "dup", Kind: "ewt", RatePercent: 1})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, taxdomain.CreateRequest{Code: "WC-158", Name: "dup", Kind: "ewt", RatePercent: 1})
	assert.ErrorIs(t, err, taxdomain.ErrTaxCodeExists)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  taxdomain.CreateRequest
		want error
	}{
		{"missing code", taxdomain.CreateRequest{Name: "x", Kind: "ewt", RatePercent: 1}, taxdomain.ErrInvalidTaxCode},
		{"missing name", taxdomain.CreateRequest{Code: "A1", Kind: "ewt", RatePercent: 1}, taxdomain.ErrInvalidName},
		{"bad kind", taxdomain.CreateRequest{Code: "A1", Name: "x", Kind: "vat", RatePercent: 1}, taxdomain.ErrInvalidTaxKind},
		{"rate above 100", taxdomain.CreateRequest{Code: "A1", Name: "x", Kind: "ewt", RatePercent: 101}, taxdomain.ErrInvalidTaxRate},
		{"negative rate", taxdomain.CreateRequest{Code: "A1", Name: "x", Kind: "ewt", RatePercent: "-1"}, taxdomain.ErrInvalidTaxRate},
		{"non numeric rate", taxdomain.CreateRequest{Code: "A1", Name: "x", Kind: "ewt", RatePercent: "abc"}, taxdomain.ErrInvalidTaxRate},
		{"missing rate", taxdomain.CreateRequest{Code: "A1", Name: "x", Kind: "ewt"}, taxdomain.ErrInvalidTaxRate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateAndDisable(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, taxdomain.CreateRequest{Code: "WV010", Name: "Goods", Kind: "withholding", RatePercent: 5})
	require.NoError(t, err)

	name := "Goods (final)"
	updated, err := f.svc.Update(ctx, taxdomain.UpdateRequest{ID: created.ID, Name: &name, RatePercent: "3"})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.True(t, updated.RatePercent.Equal(decimal.NewFromInt(3)))

	disabled, err := f.svc.Disable(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, disabled.IsEnabled)

	enabled := true
	list, err := f.svc.List(ctx, taxdomain.ListRequest{IsEnabled: &enabled})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.svc.Update(ctx, taxdomain.UpdateRequest{ID: "nope"})
	assert.ErrorIs(t, err, taxdomain.ErrInvalidID)

	_, err = f.svc.Disable(ctx, "12345")
	assert.ErrorIs(t, err, taxdomain.ErrNotFound)
}

func TestResolvePrefersDatabaseThenPresets(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, taxdomain.CreateRequest{Code: "WI158", Name: "EWT goods (ordinance)", Kind: "ewt", RatePercent: "1.5"})
	require.NoError(t, err)

	def, err := f.resolver.Resolve(ctx, "wi158")
	require.NoError(t, err)
	assert.Equal(t, "1.5", def.RatePercent.String())

	def, err = f.resolver.Resolve(ctx, "WI160")
	require.NoError(t, err)
	assert.Equal(t, taxdomain.KindEWT, def.Kind)
	assert.Equal(t, "2", def.RatePercent.String())

	_, err = f.resolver.Resolve(ctx, "ZZ999")
	assert.ErrorIs(t, err, taxdomain.ErrNotFound)
}

func TestResolveRates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	taxRate, ewtRate, err := f.resolver.ResolveRates(ctx, "WV010", "WI160", decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "5", taxRate.String())
	assert.Equal(t, "2", ewtRate.String())

	taxRate, ewtRate, err = f.resolver.ResolveRates(ctx, "", "", decimal.NewFromInt(3), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "3", taxRate.String())
	assert.Equal(t, "1", ewtRate.String())

	_, _, err = f.resolver.ResolveRates(ctx, "WI160", "", decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, taxdomain.ErrTaxCodeKind)
}

func TestResolveSeesUpdatesThroughCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, taxdomain.CreateRequest{Code: "WC120", Name: "Contractors", Kind: "ewt", RatePercent: 2})
	require.NoError(t, err)

	def, err := f.resolver.Resolve(ctx, "wc120")
	require.NoError(t, err)
	assert.Equal(t, "2", def.RatePercent.String())

	_, err = f.svc.Update(ctx, taxdomain.UpdateRequest{ID: created.ID, RatePercent: "2.5"})
	require.NoError(t, err)

	def, err = f.resolver.Resolve(ctx, "WC120")
	require.NoError(t, err)
	assert.Equal(t, "2.5", def.RatePercent.String())

	_, err = f.svc.Disable(ctx, created.ID)
	require.NoError(t, err)
	_, err = f.resolver.Resolve(ctx, "WC120")
	assert.ErrorIs(t, err, taxdomain.ErrNotFound)
}
