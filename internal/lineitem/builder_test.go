package lineitem

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRates struct {
	mock.Mock
}

func (m *mockRates) ResolveRates(ctx context.Context, taxCode, ewtCode string, taxRate, ewtRate decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, taxCode, ewtCode, taxRate, ewtRate)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func TestBuilderBuildAll(t *testing.T) {
	rates := &mockRates{}
	rates.On("ResolveRates", mock.Anything, "WV010", "", mock.Anything, mock.Anything).
		Return(decimal.NewFromInt(5), decimal.Zero, nil)

	b := Builder{Rates: rates, DefaultVAT: func() decimal.Decimal { return decimal.NewFromInt(12) }}
	items, err := b.BuildAll(context.Background(), []ItemInput{
		{Description: "Printer ink", Price: "1120", Quantity: 1, Vatable: true, TaxCode: "WV010"},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "-50", items[0].Amounts.Withheld.String())
	rates.AssertExpectations(t)
}

func TestBuilderValidation(t *testing.T) {
	b := Builder{}
	ctx := context.Background()

	_, err := b.BuildAll(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidItems)

	cases := []struct {
		in    ItemInput
		field string
	}{
		{ItemInput{Price: 1, Quantity: 1}, "description"},
		{ItemInput{Description: "x", Price: 1, Quantity: 0}, "quantity"},
		{ItemInput{Description: "x", Price: "-1", Quantity: 1}, "price"},
	}
	for _, tc := range cases {
		_, err := b.BuildAll(ctx, []ItemInput{tc.in})
		var itemErr *ItemError
		require.True(t, errors.As(err, &itemErr))
		assert.Equal(t, tc.field, itemErr.Field)
		assert.ErrorIs(t, err, ErrInvalidItems)
	}
}

func TestBuilderPropagatesResolverError(t *testing.T) {
	boom := errors.New("not_found")
	rates := &mockRates{}
	rates.On("ResolveRates", mock.Anything, "ZZ", "", mock.Anything, mock.Anything).
		Return(decimal.Zero, decimal.Zero, boom)

	_, err := Builder{Rates: rates}.BuildAll(context.Background(), []ItemInput{
		{Description: "x", Price: 1, Quantity: 1, TaxCode: "ZZ"},
	})
	assert.ErrorIs(t, err, boom)
}

func TestBuilderComputeAllIsPermissive(t *testing.T) {
	items, err := Builder{}.ComputeAll(context.Background(), []ItemInput{
		{Price: "abc", Quantity: ""},
		{Price: "100", Quantity: "2", DiscountPercent: "10"},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Amounts.Subtotal.IsZero())
	assert.Equal(t, "180", items[1].Amounts.SubtotalTaxExcluded.String())

	items, err = Builder{}.ComputeAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
