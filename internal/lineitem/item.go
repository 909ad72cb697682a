package lineitem

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/pkg/numeric"
)

// ItemInput is a document line as submitted by a form. Tax codes, when set,
// take precedence over the explicit rates.
type ItemInput struct {
	Description     string `json:"description"`
	AccountCode     string `json:"account_code"`
	FPP             string `json:"fpp"`
	Price           any    `json:"price"`
	Quantity        any    `json:"quantity"`
	DiscountPercent any    `json:"discount_percent"`
	TaxCode         string `json:"tax_code"`
	TaxRate         any    `json:"tax_rate"`
	EWTCode         string `json:"ewt_code"`
	EWTRate         any    `json:"ewt_rate"`
	Vatable         bool   `json:"vatable"`
	VATRate         any    `json:"vat_rate"`
}

// Item is a computed document line.
type Item struct {
	Description     string          `json:"description"`
	AccountCode     string          `json:"account_code,omitempty"`
	FPP             string          `json:"fpp,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxCode         string          `json:"tax_code,omitempty"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	EWTCode         string          `json:"ewt_code,omitempty"`
	EWTRate         decimal.Decimal `json:"ewt_rate"`
	Vatable         bool            `json:"vatable"`
	Amounts         Amounts         `json:"amounts"`
}

// Build computes an item. taxRate and ewtRate are the resolved withholding
// rates for the line.
func Build(in ItemInput, taxRate, ewtRate decimal.Decimal, defaultVAT decimal.Decimal) Item {
	vatRate := numeric.DecimalOr(in.VATRate, defaultVAT)

	item := Item{
		Description:     strings.TrimSpace(in.Description),
		AccountCode:     strings.TrimSpace(in.AccountCode),
		FPP:             strings.TrimSpace(in.FPP),
		Price:           numeric.Decimal(in.Price),
		Quantity:        numeric.Decimal(in.Quantity),
		DiscountPercent: numeric.Decimal(in.DiscountPercent),
		TaxCode:         strings.TrimSpace(in.TaxCode),
		TaxRate:         taxRate,
		EWTCode:         strings.TrimSpace(in.EWTCode),
		EWTRate:         ewtRate,
		Vatable:         in.Vatable,
	}
	item.Amounts = Calculate(Params{
		Price:           item.Price,
		Quantity:        item.Quantity,
		TaxRate:         taxRate,
		DiscountPercent: item.DiscountPercent,
		Vatable:         item.Vatable,
		EWTRate:         ewtRate,
		VATRate:         vatRate,
	})
	return item
}

// ToInput turns a computed item back into an input, keeping its rates.
func (i Item) ToInput() ItemInput {
	return ItemInput{
		Description:     i.Description,
		AccountCode:     i.AccountCode,
		FPP:             i.FPP,
		Price:           i.Price,
		Quantity:        i.Quantity,
		DiscountPercent: i.DiscountPercent,
		TaxCode:         i.TaxCode,
		TaxRate:         i.TaxRate,
		EWTCode:         i.EWTCode,
		EWTRate:         i.EWTRate,
		Vatable:         i.Vatable,
		VATRate:         i.Amounts.VATRate,
	}
}

// SumItems totals the amounts of items.
func SumItems(items []Item) Totals {
	amounts := make([]Amounts, 0, len(items))
	for _, item := range items {
		amounts = append(amounts, item.Amounts)
	}
	return Sum(amounts)
}
