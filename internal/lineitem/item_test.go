package lineitem

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildUsesResolvedRates(t *testing.T) {
	item := Build(ItemInput{
		Description: "  Bond paper ",
		Price:       "1120",
		Quantity:    1,
		Vatable:     true,
		TaxRate:     "99",
	}, decimal.NewFromInt(5), decimal.NewFromInt(1), DefaultVATRate)

	assert.Equal(t, "Bond paper", item.Description)
	assert.True(t, item.TaxRate.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "120", item.Amounts.VAT.String())
	assert.Equal(t, "-50", item.Amounts.Withheld.String())
	assert.Equal(t, "-10", item.Amounts.EWT.String())
	assert.Equal(t, "1060", item.Amounts.Subtotal.String())
}

func TestBuildVATRateOverride(t *testing.T) {
	item := Build(ItemInput{Price: 100, Quantity: 1, VATRate: ""}, decimal.Zero, decimal.Zero, decimal.NewFromInt(10))
	assert.Equal(t, "10", item.Amounts.VATRate.String())
	assert.Equal(t, "10", item.Amounts.VAT.String())

	item = Build(ItemInput{Price: 100, Quantity: 1, VATRate: 0}, decimal.Zero, decimal.Zero, decimal.NewFromInt(10))
	assert.True(t, item.Amounts.VAT.IsZero())
}

func TestToInputRoundTrip(t *testing.T) {
	item := Build(ItemInput{Price: "250.50", Quantity: "2", DiscountPercent: 10, Vatable: false},
		decimal.NewFromInt(2), decimal.Zero, DefaultVATRate)

	again := Build(item.ToInput(), item.TaxRate, item.EWTRate, DefaultVATRate)
	assert.True(t, sameAmounts(item.Amounts, again.Amounts))
}

func TestSumItems(t *testing.T) {
	items := []Item{
		Build(ItemInput{Price: 1120, Quantity: 1, Vatable: true}, decimal.Zero, decimal.Zero, DefaultVATRate),
		Build(ItemInput{Price: 1000, Quantity: 2, Vatable: false}, decimal.Zero, decimal.Zero, DefaultVATRate),
	}

	totals := SumItems(items)
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, "3120", totals.Gross.String())
}
