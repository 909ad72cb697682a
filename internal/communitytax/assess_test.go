package communitytax

import (
	"testing"
	"time"

	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(month time.Month) clock.Clock {
	return clock.NewFakeClock(time.Date(2024, month, 15, 9, 0, 0, 0, time.UTC))
}

func TestAssessIndividual(t *testing.T) {
	a := Assess(AssessInput{
		GrossReceipts: "150000",
		Salaries:      240500,
	}, fixedClock(time.January))

	assert.Equal(t, TaxpayerIndividual, a.TaxpayerType)
	assert.Equal(t, "5", a.BasicTax.String())
	assert.Equal(t, "390", a.AdditionalTax.String())
	assert.Equal(t, "395", a.Total.String())
	assert.True(t, a.Interest.IsZero())
	assert.Equal(t, "THREE HUNDRED NINETY-FIVE PESOS", a.AmountInWords)
}

func TestAssessIndividualCap(t *testing.T) {
	a := Assess(AssessInput{TaxpayerType: "Individual", GrossReceipts: 10_000_000}, fixedClock(time.February))
	assert.Equal(t, "5000", a.AdditionalTax.String())
	assert.Equal(t, "5005", a.Total.String())
}

func TestAssessJuridicalWithInterest(t *testing.T) {
	a := Assess(AssessInput{
		TaxpayerType:          TaxpayerJuridical,
		PropertyAssessedValue: 1_000_000,
		GrossReceipts:         "512345.67",
	}, fixedClock(time.March))

	assert.Equal(t, "500", a.BasicTax.String())
	// floor(1512345.67 / 5000) = 302 units at 2 pesos
	assert.Equal(t, "604", a.AdditionalTax.String())
	assert.Equal(t, "1104", a.Total.String())
	assert.Equal(t, "6", a.InterestRate.String())
	assert.Equal(t, "66.24", a.Interest.String())
	assert.Equal(t, "1170.24", a.AmountDue.String())
	assert.Equal(t, "ONE THOUSAND ONE HUNDRED SEVENTY PESOS AND 24/100", a.AmountInWords)
}

func TestAssessJuridicalCap(t *testing.T) {
	a := Assess(AssessInput{TaxpayerType: TaxpayerJuridical, GrossReceipts: 1e9}, fixedClock(time.January))
	assert.Equal(t, "10000", a.AdditionalTax.String())
}

func TestAssessInterestOverride(t *testing.T) {
	a := Assess(AssessInput{Salaries: 100000, InterestRate: "0"}, fixedClock(time.December))
	assert.True(t, a.Interest.IsZero())

	a = Assess(AssessInput{Salaries: 100000, InterestRate: 10}, fixedClock(time.January))
	assert.Equal(t, "10.5", a.Interest.String())
}

func TestAssessNonNumericCountsAsZero(t *testing.T) {
	a := Assess(AssessInput{GrossReceipts: "n/a", Salaries: nil}, fixedClock(time.January))
	assert.Equal(t, "5", a.Total.String())
}

func TestValidate(t *testing.T) {
	require.NoError(t, AssessInput{}.Validate())
	assert.ErrorIs(t, AssessInput{TaxpayerType: "corporation"}.Validate(), ErrInvalidTaxpayerType)
	assert.ErrorIs(t, AssessInput{Salaries: -1}.Validate(), ErrInvalidAmount)
	assert.ErrorIs(t, AssessInput{InterestRate: 30}.Validate(), ErrInvalidInterestRate)
	assert.ErrorIs(t, AssessInput{InterestRate: "abc"}.Validate(), ErrInvalidInterestRate)
}
