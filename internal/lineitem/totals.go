package lineitem

import "github.com/shopspring/decimal"

// Totals is the document-level roll-up of line item amounts.
type Totals struct {
	Gross          decimal.Decimal `json:"gross" gorm:"type:numeric(18,2)"`
	Discount       decimal.Decimal `json:"discount" gorm:"type:numeric(18,2)"`
	VAT            decimal.Decimal `json:"vat" gorm:"type:numeric(18,2)"`
	TaxIncluded    decimal.Decimal `json:"tax_included" gorm:"type:numeric(18,2)"`
	TaxExcluded    decimal.Decimal `json:"tax_excluded" gorm:"type:numeric(18,2)"`
	Withheld       decimal.Decimal `json:"withheld" gorm:"type:numeric(18,2)"`
	EWT            decimal.Decimal `json:"ewt" gorm:"type:numeric(18,2)"`
	TotalDeduction decimal.Decimal `json:"total_deduction" gorm:"type:numeric(18,2)"`
	Net            decimal.Decimal `json:"net" gorm:"type:numeric(18,2)"`
	ItemCount      int             `json:"item_count"`
}

// Sum adds up already-rounded line amounts. No further rounding is applied so
// the document total always equals the sum of its printed lines.
func Sum(items []Amounts) Totals {
	t := Totals{
		Gross:          decimal.Zero,
		Discount:       decimal.Zero,
		VAT:            decimal.Zero,
		TaxIncluded:    decimal.Zero,
		TaxExcluded:    decimal.Zero,
		Withheld:       decimal.Zero,
		EWT:            decimal.Zero,
		TotalDeduction: decimal.Zero,
		Net:            decimal.Zero,
		ItemCount:      len(items),
	}
	for _, item := range items {
		t.Gross = t.Gross.Add(item.SubtotalBeforeDiscount)
		t.Discount = t.Discount.Add(item.Discount)
		t.VAT = t.VAT.Add(item.VAT)
		t.TaxIncluded = t.TaxIncluded.Add(item.SubtotalTaxIncluded)
		t.TaxExcluded = t.TaxExcluded.Add(item.SubtotalTaxExcluded)
		t.Withheld = t.Withheld.Add(item.Withheld)
		t.EWT = t.EWT.Add(item.EWT)
		t.TotalDeduction = t.TotalDeduction.Add(item.TotalDeduction)
		t.Net = t.Net.Add(item.Subtotal)
	}
	return t
}
