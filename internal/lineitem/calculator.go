// Package lineitem computes the monetary figures of obligation request and
// disbursement voucher line items.
package lineitem

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/pkg/numeric"
)

// DefaultVATRate is the VAT percentage applied when the caller supplies none.
var DefaultVATRate = decimal.NewFromInt(12)

var hundred = decimal.NewFromInt(100)

// Params holds the raw inputs of one line item. Numeric fields accept anything
// a form may send (numbers, numeric strings, decimals); values that are not
// numbers are treated as zero.
type Params struct {
	Price           any  `json:"price"`
	Quantity        any  `json:"quantity"`
	TaxRate         any  `json:"tax_rate"`
	DiscountPercent any  `json:"discount_percent"`
	Vatable         bool `json:"vatable"`
	EWTRate         any  `json:"ewt_rate"`
	VATRate         any  `json:"vat_rate"`
}

// Amounts are the derived figures of a line item. Deductions are signed
// negative.
type Amounts struct {
	SubtotalBeforeDiscount decimal.Decimal `json:"subtotal_before_discount"`
	Discount               decimal.Decimal `json:"discount"`
	VAT                    decimal.Decimal `json:"vat"`
	SubtotalTaxIncluded    decimal.Decimal `json:"subtotal_tax_included"`
	SubtotalTaxExcluded    decimal.Decimal `json:"subtotal_tax_excluded"`
	Withheld               decimal.Decimal `json:"withheld"`
	EWT                    decimal.Decimal `json:"ewt"`
	TotalDeduction         decimal.Decimal `json:"total_deduction"`
	Subtotal               decimal.Decimal `json:"subtotal"`
	VATRate                decimal.Decimal `json:"vat_rate"`
	TaxBase                decimal.Decimal `json:"tax_base"`
}

// Calculate derives every figure of a line item.
//
// A vatable price already includes VAT, so VAT is backed out of the discounted
// subtotal. A non-vatable price excludes VAT, so VAT is added on top. Each
// step is rounded to centavos before the next one consumes it; do not fold
// the steps into a single formula.
func Calculate(p Params) Amounts {
	price := numeric.Decimal(p.Price)
	quantity := numeric.Decimal(p.Quantity)
	taxRate := numeric.Decimal(p.TaxRate)
	discountPercent := numeric.Decimal(p.DiscountPercent)
	ewtRate := numeric.Decimal(p.EWTRate)
	vatRate := numeric.DecimalOr(p.VATRate, DefaultVATRate)

	var out Amounts
	out.VATRate = vatRate
	out.SubtotalBeforeDiscount = round(price.Mul(quantity))
	out.Discount = round(out.SubtotalBeforeDiscount.Mul(discountPercent).Div(hundred))

	if p.Vatable {
		out.SubtotalTaxIncluded = round(out.SubtotalBeforeDiscount.Sub(out.Discount))
		out.VAT = computeVATInclusive(out.SubtotalTaxIncluded, vatRate)
		out.SubtotalTaxExcluded = round(out.SubtotalTaxIncluded.Sub(out.VAT))
	} else {
		out.VAT = computeVATExclusive(out.SubtotalBeforeDiscount, vatRate)
		out.SubtotalTaxExcluded = round(out.SubtotalBeforeDiscount.Sub(out.Discount))
		out.SubtotalTaxIncluded = round(out.SubtotalTaxExcluded.Add(out.VAT))
	}

	out.Withheld = computeWithholding(out.SubtotalTaxExcluded, taxRate)
	out.EWT = computeWithholding(out.SubtotalTaxExcluded, ewtRate)
	out.TotalDeduction = out.Withheld.Add(out.EWT)

	if p.Vatable {
		out.TaxBase = out.SubtotalTaxIncluded
	} else {
		out.TaxBase = out.SubtotalTaxExcluded
	}
	out.Subtotal = round(out.TaxBase.Add(out.TotalDeduction))

	return out
}

// computeVATInclusive returns the VAT portion contained in a tax-inclusive amount.
func computeVATInclusive(amount, rate decimal.Decimal) decimal.Decimal {
	divisor := hundred.Add(rate)
	if divisor.IsZero() {
		return decimal.Zero
	}
	return round(amount.Mul(rate).Div(divisor))
}

// computeVATExclusive returns the VAT added on top of a tax-exclusive amount.
func computeVATExclusive(amount, rate decimal.Decimal) decimal.Decimal {
	return round(amount.Mul(rate).Div(hundred))
}

func computeWithholding(base, rate decimal.Decimal) decimal.Decimal {
	return round(base.Mul(rate).Div(hundred)).Neg()
}

// round rounds half away from zero to two places.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
