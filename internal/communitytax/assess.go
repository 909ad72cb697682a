package communitytax

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/amountwords"
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/pkg/numeric"
)

var (
	ErrInvalidTaxpayerType = errors.New("invalid_taxpayer_type")
	ErrInvalidTaxpayerName = errors.New("invalid_taxpayer_name")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidInterestRate = errors.New("invalid_interest_rate")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)

type TaxpayerType string

const (
	TaxpayerIndividual TaxpayerType = "individual"
	TaxpayerJuridical  TaxpayerType = "juridical"
)

var (
	individualBasic     = decimal.NewFromInt(5)
	individualPerUnit   = decimal.NewFromInt(1)
	individualUnit      = decimal.NewFromInt(1000)
	individualCap       = decimal.NewFromInt(5000)
	juridicalBasic      = decimal.NewFromInt(500)
	juridicalPerUnit    = decimal.NewFromInt(2)
	juridicalUnit       = decimal.NewFromInt(5000)
	juridicalCap        = decimal.NewFromInt(10000)
	hundred             = decimal.NewFromInt(100)
	maxInterestOverride = decimal.NewFromInt(24)
)

// AssessInput carries the declared figures. Amounts accept numbers or
// numeric strings; InterestRate overrides the month table when set.
type AssessInput struct {
	TaxpayerType          TaxpayerType `json:"taxpayer_type"`
	GrossReceipts         any          `json:"gross_receipts"`
	Salaries              any          `json:"salaries"`
	RealPropertyIncome    any          `json:"real_property_income"`
	PropertyAssessedValue any          `json:"property_assessed_value"`
	InterestRate          any          `json:"interest_rate"`
}

type Assessment struct {
	TaxpayerType  TaxpayerType    `json:"taxpayer_type"`
	TaxableBase   decimal.Decimal `json:"taxable_base"`
	BasicTax      decimal.Decimal `json:"basic_tax"`
	AdditionalTax decimal.Decimal `json:"additional_tax"`
	Total         decimal.Decimal `json:"total"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	Interest      decimal.Decimal `json:"interest"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	AmountInWords string          `json:"amount_in_words"`
	AssessedAt    time.Time       `json:"assessed_at"`
}

// Normalize lower-cases the taxpayer type, defaulting to individual.
func (in AssessInput) Normalize() AssessInput {
	kind := TaxpayerType(strings.ToLower(strings.TrimSpace(string(in.TaxpayerType))))
	if kind == "" {
		kind = TaxpayerIndividual
	}
	in.TaxpayerType = kind
	return in
}

// Validate rejects unknown taxpayer types, negative amounts and interest
// overrides outside 0..24.
func (in AssessInput) Validate() error {
	in = in.Normalize()
	if in.TaxpayerType != TaxpayerIndividual && in.TaxpayerType != TaxpayerJuridical {
		return ErrInvalidTaxpayerType
	}
	for _, v := range []any{in.GrossReceipts, in.Salaries, in.RealPropertyIncome, in.PropertyAssessedValue} {
		if numeric.Decimal(v).IsNegative() {
			return ErrInvalidAmount
		}
	}
	if !numeric.IsBlank(in.InterestRate) {
		rate, ok := numeric.Parse(in.InterestRate)
		if !ok || rate.IsNegative() || rate.GreaterThan(maxInterestOverride) {
			return ErrInvalidInterestRate
		}
	}
	return nil
}

// Assess computes the community tax due. Non-numeric amounts count as zero.
func Assess(in AssessInput, c clock.Clock) Assessment {
	in = in.Normalize()
	now := c.Now()

	var out Assessment
	out.TaxpayerType = in.TaxpayerType
	out.AssessedAt = now

	if in.TaxpayerType == TaxpayerJuridical {
		out.TaxableBase = nonNegative(in.PropertyAssessedValue).Add(nonNegative(in.GrossReceipts))
		out.BasicTax = juridicalBasic
		out.AdditionalTax = additional(out.TaxableBase, juridicalUnit, juridicalPerUnit, juridicalCap)
	} else {
		out.TaxableBase = nonNegative(in.GrossReceipts).Add(nonNegative(in.Salaries)).Add(nonNegative(in.RealPropertyIncome))
		out.BasicTax = individualBasic
		out.AdditionalTax = additional(out.TaxableBase, individualUnit, individualPerUnit, individualCap)
	}
	out.Total = out.BasicTax.Add(out.AdditionalTax)

	out.InterestRate = decimal.NewFromInt(int64(InterestRate(c)))
	if !numeric.IsBlank(in.InterestRate) {
		out.InterestRate = nonNegative(in.InterestRate)
	}
	out.Interest = out.Total.Mul(out.InterestRate).Div(hundred).Round(2)
	out.AmountDue = out.Total.Add(out.Interest).Round(2)
	out.AmountInWords = amountwords.FromDecimal(out.AmountDue)

	return out
}

// additional charges perUnit for every full unit of base, up to limit.
func additional(base, unit, perUnit, limit decimal.Decimal) decimal.Decimal {
	tax := base.Div(unit).Floor().Mul(perUnit)
	if tax.GreaterThan(limit) {
		return limit
	}
	return tax
}

func nonNegative(v any) decimal.Decimal {
	d := numeric.Decimal(v)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
