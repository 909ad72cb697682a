package amountwords

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		amount any
		want   string
	}{
		{name: "zero", amount: 0, want: "ZERO PESOS"},
		{name: "example", amount: 1234.56, want: "ONE THOUSAND TWO HUNDRED THIRTY-FOUR PESOS AND 56/100"},
		{name: "string amount", amount: "1234.56", want: "ONE THOUSAND TWO HUNDRED THIRTY-FOUR PESOS AND 56/100"},
		{name: "non numeric", amount: "abc", want: ""},
		{name: "nil", amount: nil, want: ""},
		{name: "blank", amount: "  ", want: ""},
		{name: "nan", amount: math.NaN(), want: ""},
		{name: "negative", amount: -50, want: "MINUS FIFTY PESOS"},
		{name: "teens", amount: 15, want: "FIFTEEN PESOS"},
		{name: "exact tens", amount: 90, want: "NINETY PESOS"},
		{name: "hyphenated", amount: 21, want: "TWENTY-ONE PESOS"},
		{name: "exact hundred", amount: 300, want: "THREE HUNDRED PESOS"},
		{name: "cents only", amount: "0.05", want: "ZERO PESOS AND 05/100"},
		{name: "one million and one", amount: 1000001, want: "ONE MILLION ONE PESOS"},
		{name: "billions", amount: "2500000000", want: "TWO BILLION FIVE HUNDRED MILLION PESOS"},
		{name: "trillion", amount: "1000000000000", want: "ONE TRILLION PESOS"},
		{name: "mixed groups", amount: "45612.3", want: "FORTY-FIVE THOUSAND SIX HUNDRED TWELVE PESOS AND 30/100"},
		{name: "cent carry", amount: "99.999", want: "ONE HUNDRED PESOS"},
		{name: "half cent rounds up", amount: "10.005", want: "TEN PESOS AND 01/100"},
		{name: "negative with cents", amount: "-12.5", want: "MINUS TWELVE PESOS AND 50/100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.amount))
		})
	}
}

func TestConvert_WholeAmountsNeverContainAnd(t *testing.T) {
	for _, n := range []int64{1, 7, 19, 20, 99, 100, 101, 999, 1000, 1001, 12345, 999999, 1000000, 7654321} {
		words := FromDecimal(decimal.NewFromInt(n))
		assert.NotContains(t, strings.Fields(words), "AND", n)
		assert.True(t, strings.HasSuffix(words, " PESOS"), words)
	}
}

func TestConvert_BeyondUint64(t *testing.T) {
	got := Convert("5000000000000000")
	assert.Equal(t, "FIVE THOUSAND TRILLION PESOS", got)
}
