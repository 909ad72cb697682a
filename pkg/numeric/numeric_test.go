package numeric

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
		ok    bool
	}{
		{name: "nil", input: nil, want: "0", ok: false},
		{name: "empty string", input: "", want: "0", ok: false},
		{name: "blank string", input: "   ", want: "0", ok: false},
		{name: "garbage", input: "abc", want: "0", ok: false},
		{name: "numeric string", input: " 1120.50 ", want: "1120.5", ok: true},
		{name: "json number", input: json.Number("12"), want: "12", ok: true},
		{name: "int", input: 42, want: "42", ok: true},
		{name: "int64", input: int64(-7), want: "-7", ok: true},
		{name: "float", input: 1234.56, want: "1234.56", ok: true},
		{name: "nan", input: math.NaN(), want: "0", ok: false},
		{name: "inf", input: math.Inf(1), want: "0", ok: false},
		{name: "decimal", input: decimal.RequireFromString("0.05"), want: "0.05", ok: true},
		{name: "uint via cast", input: uint(9), want: "9", ok: true},
		{name: "bool via cast", input: true, want: "1", ok: true},
		{name: "struct", input: struct{}{}, want: "0", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDecimalOr(t *testing.T) {
	def := decimal.NewFromInt(12)

	assert.True(t, DecimalOr(nil, def).Equal(def))
	assert.True(t, DecimalOr("", def).Equal(def))
	assert.True(t, DecimalOr("abc", def).IsZero())
	assert.True(t, DecimalOr(0, def).IsZero())
	assert.True(t, DecimalOr("5", def).Equal(decimal.NewFromInt(5)))
}
