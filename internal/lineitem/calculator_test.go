package lineitem

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

func TestCalculate_NonVatable(t *testing.T) {
	out := Calculate(Params{
		Price:           1000,
		Quantity:        2,
		TaxRate:         5,
		DiscountPercent: 0,
		Vatable:         false,
		EWTRate:         0,
		VATRate:         12,
	})

	assertDecimal(t, "2000", out.SubtotalBeforeDiscount, "subtotal_before_discount")
	assertDecimal(t, "0", out.Discount, "discount")
	assertDecimal(t, "240", out.VAT, "vat")
	assertDecimal(t, "2000", out.SubtotalTaxExcluded, "subtotal_tax_excluded")
	assertDecimal(t, "2240", out.SubtotalTaxIncluded, "subtotal_tax_included")
	assertDecimal(t, "-100", out.Withheld, "withheld")
	assertDecimal(t, "0", out.EWT, "ewt")
	assertDecimal(t, "-100", out.TotalDeduction, "total_deduction")
	assertDecimal(t, "1900", out.Subtotal, "subtotal")
	assertDecimal(t, "2000", out.TaxBase, "tax_base")
}

func TestCalculate_Vatable(t *testing.T) {
	out := Calculate(Params{
		Price:           1120,
		Quantity:        1,
		TaxRate:         0,
		DiscountPercent: 10,
		Vatable:         true,
		EWTRate:         0,
		VATRate:         12,
	})

	assertDecimal(t, "1120", out.SubtotalBeforeDiscount, "subtotal_before_discount")
	assertDecimal(t, "112", out.Discount, "discount")
	assertDecimal(t, "1008", out.SubtotalTaxIncluded, "subtotal_tax_included")
	assertDecimal(t, "108", out.VAT, "vat")
	assertDecimal(t, "900", out.SubtotalTaxExcluded, "subtotal_tax_excluded")
	assertDecimal(t, "0", out.TotalDeduction, "total_deduction")
	assertDecimal(t, "1008", out.Subtotal, "subtotal")
}

func TestCalculate_VatableWithWithholdingAndEWT(t *testing.T) {
	// 3 x 1,500.00 VAT-inclusive, 1% withholding, 2% EWT.
	out := Calculate(Params{
		Price:    "1500",
		Quantity: "3",
		TaxRate:  "1",
		EWTRate:  "2",
		Vatable:  true,
	})

	assertDecimal(t, "4500", out.SubtotalBeforeDiscount, "subtotal_before_discount")
	assertDecimal(t, "4500", out.SubtotalTaxIncluded, "subtotal_tax_included")
	// 4500 * 12 / 112 = 482.142857...
	assertDecimal(t, "482.14", out.VAT, "vat")
	assertDecimal(t, "4017.86", out.SubtotalTaxExcluded, "subtotal_tax_excluded")
	// 4017.86 * 1% = 40.1786
	assertDecimal(t, "-40.18", out.Withheld, "withheld")
	// 4017.86 * 2% = 80.3572
	assertDecimal(t, "-80.36", out.EWT, "ewt")
	assertDecimal(t, "-120.54", out.TotalDeduction, "total_deduction")
	assertDecimal(t, "4379.46", out.Subtotal, "subtotal")
	assertDecimal(t, "12", out.VATRate, "vat_rate")
}

func TestCalculate_StepwiseRounding(t *testing.T) {
	// Discount rounds before VAT is derived: 33.33 * 3 = 99.99,
	// 99.99 * 7.5% = 7.49925 -> 7.50, so the VAT base is 92.49 and not 92.49075.
	out := Calculate(Params{
		Price:           "33.33",
		Quantity:        3,
		DiscountPercent: "7.5",
		Vatable:         true,
	})

	assertDecimal(t, "99.99", out.SubtotalBeforeDiscount, "subtotal_before_discount")
	assertDecimal(t, "7.5", out.Discount, "discount")
	assertDecimal(t, "92.49", out.SubtotalTaxIncluded, "subtotal_tax_included")
	// 92.49 * 12 / 112 = 9.909642...
	assertDecimal(t, "9.91", out.VAT, "vat")
	assertDecimal(t, "82.58", out.SubtotalTaxExcluded, "subtotal_tax_excluded")
}

func TestCalculate_HalfUpRounding(t *testing.T) {
	// 0.125 * 1 with 10% discount: 0.13 before discount (half-up), discount 0.013 -> 0.01.
	out := Calculate(Params{Price: "0.125", Quantity: 1, DiscountPercent: 10})

	assertDecimal(t, "0.13", out.SubtotalBeforeDiscount, "subtotal_before_discount")
	assertDecimal(t, "0.01", out.Discount, "discount")
	assertDecimal(t, "0.12", out.SubtotalTaxExcluded, "subtotal_tax_excluded")
}

func TestCalculate_DefaultVATRate(t *testing.T) {
	for _, vatRate := range []any{nil, ""} {
		out := Calculate(Params{Price: 100, Quantity: 1, VATRate: vatRate})
		assertDecimal(t, "12", out.VATRate, "vat_rate")
		assertDecimal(t, "12", out.VAT, "vat")
	}

	out := Calculate(Params{Price: 100, Quantity: 1, VATRate: 0})
	assertDecimal(t, "0", out.VAT, "vat")
}

func TestCalculate_ZeroBoundaries(t *testing.T) {
	cases := []Params{
		{Price: 0, Quantity: 5, TaxRate: 5, EWTRate: 2, DiscountPercent: 10, Vatable: true},
		{Price: 250, Quantity: 0, TaxRate: 5, EWTRate: 2, DiscountPercent: 10, Vatable: false},
		{Price: "", Quantity: 3, TaxRate: 5},
		{Price: "abc", Quantity: 3, TaxRate: 5, Vatable: true},
		{},
	}

	for _, p := range cases {
		out := Calculate(p)
		for name, v := range map[string]decimal.Decimal{
			"subtotal_before_discount": out.SubtotalBeforeDiscount,
			"discount":                 out.Discount,
			"vat":                      out.VAT,
			"subtotal_tax_included":    out.SubtotalTaxIncluded,
			"subtotal_tax_excluded":    out.SubtotalTaxExcluded,
			"withheld":                 out.Withheld,
			"ewt":                      out.EWT,
			"total_deduction":          out.TotalDeduction,
			"subtotal":                 out.Subtotal,
		} {
			assert.Truef(t, v.IsZero(), "%s should be zero for %+v, got %s", name, p, v.String())
		}
	}
}

func TestCalculate_Properties(t *testing.T) {
	prices := []any{"0.01", "1", "99.99", "1120", "12345.67", 0.5}
	quantities := []any{1, 2, "3.5", 17}
	rates := []any{0, 1, 2, 5, 15}
	discounts := []any{0, "2.5", 10, 100}

	for _, price := range prices {
		for _, qty := range quantities {
			for _, rate := range rates {
				for _, disc := range discounts {
					for _, vatable := range []bool{true, false} {
						p := Params{
							Price:           price,
							Quantity:        qty,
							TaxRate:         rate,
							EWTRate:         rate,
							DiscountPercent: disc,
							Vatable:         vatable,
						}
						out := Calculate(p)

						require.Falsef(t, out.Withheld.IsPositive(), "withheld > 0 for %+v", p)
						require.Falsef(t, out.EWT.IsPositive(), "ewt > 0 for %+v", p)
						require.Truef(t, out.SubtotalTaxIncluded.Sub(out.SubtotalTaxExcluded).Equal(out.VAT),
							"included - excluded != vat for %+v", p)
						require.True(t, out.TotalDeduction.Equal(out.Withheld.Add(out.EWT)))

						again := Calculate(p)
						require.Truef(t, sameAmounts(out, again), "non-deterministic result for %+v", p)
					}
				}
			}
		}
	}
}

func TestCalculate_NonVatableVATDifference(t *testing.T) {
	// Without a discount the VAT is computed on the same base in both branches,
	// so included - excluded equals VAT exactly.
	out := Calculate(Params{Price: "199.99", Quantity: 3, Vatable: false})
	assert.True(t, out.SubtotalTaxIncluded.Sub(out.SubtotalTaxExcluded).Equal(out.VAT))
}

func sameAmounts(a, b Amounts) bool {
	return a.SubtotalBeforeDiscount.Equal(b.SubtotalBeforeDiscount) &&
		a.Discount.Equal(b.Discount) &&
		a.VAT.Equal(b.VAT) &&
		a.SubtotalTaxIncluded.Equal(b.SubtotalTaxIncluded) &&
		a.SubtotalTaxExcluded.Equal(b.SubtotalTaxExcluded) &&
		a.Withheld.Equal(b.Withheld) &&
		a.EWT.Equal(b.EWT) &&
		a.TotalDeduction.Equal(b.TotalDeduction) &&
		a.Subtotal.Equal(b.Subtotal) &&
		a.VATRate.Equal(b.VATRate) &&
		a.TaxBase.Equal(b.TaxBase)
}

func TestSum(t *testing.T) {
	a := Calculate(Params{Price: 1000, Quantity: 2, TaxRate: 5, VATRate: 12})
	b := Calculate(Params{Price: 1120, Quantity: 1, DiscountPercent: 10, Vatable: true})

	totals := Sum([]Amounts{a, b})

	assert.Equal(t, 2, totals.ItemCount)
	assertDecimal(t, "3120", totals.Gross, "gross")
	assertDecimal(t, "112", totals.Discount, "discount")
	assertDecimal(t, "348", totals.VAT, "vat")
	assertDecimal(t, "-100", totals.Withheld, "withheld")
	assertDecimal(t, "2908", totals.Net, "net")

	empty := Sum(nil)
	assert.Equal(t, 0, empty.ItemCount)
	assert.True(t, empty.Net.IsZero())
}

func TestAmountsEncodeAsDecimalStrings(t *testing.T) {
	amounts := Calculate(Params{Price: 1120, Quantity: 1, Vatable: true, TaxRate: 5})

	raw, err := json.Marshal(amounts)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "120", got["vat"])
	assert.Equal(t, "-50", got["withheld"])
	assert.Equal(t, "1070", got["subtotal"])
	assert.Equal(t, "12", got["vat_rate"])
}
