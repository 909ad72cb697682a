// Package amountwords spells out peso amounts for printed vouchers and
// certificates, e.g. "ONE THOUSAND TWO HUNDRED THIRTY-FOUR PESOS AND 56/100".
package amountwords

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/pkg/numeric"
)

const currencyWord = "PESOS"

var units = [...]string{
	"ZERO", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE",
	"TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN", "SIXTEEN",
	"SEVENTEEN", "EIGHTEEN", "NINETEEN",
}

var tens = [...]string{
	"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY", "EIGHTY", "NINETY",
}

type scale struct {
	value uint64
	name  string
}

// Largest first.
var scales = []scale{
	{value: 1_000_000_000_000, name: "TRILLION"},
	{value: 1_000_000_000, name: "BILLION"},
	{value: 1_000_000, name: "MILLION"},
	{value: 1_000, name: "THOUSAND"},
}

var hundred = decimal.NewFromInt(100)

// Convert renders amount in words. Anything that is not a number yields "".
func Convert(amount any) string {
	value, ok := numeric.Parse(amount)
	if !ok {
		return ""
	}
	return FromDecimal(value)
}

// FromDecimal renders a decimal amount in words.
func FromDecimal(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	abs := amount.Abs()

	whole := abs.Floor()
	cents := abs.Sub(whole).Mul(hundred).Round(0).IntPart()
	if cents >= 100 {
		whole = whole.Add(decimal.NewFromInt(1))
		cents -= 100
	}

	words := integerWords(whole)
	if negative && (!whole.IsZero() || cents > 0) {
		words = "MINUS " + words
	}

	out := words + " " + currencyWord
	if cents > 0 {
		out += fmt.Sprintf(" AND %02d/100", cents)
	}
	return out
}

func integerWords(n decimal.Decimal) string {
	if n.IsZero() {
		return units[0]
	}
	// Amounts beyond uint64 are split on the trillion boundary and recursed.
	trillion := decimal.NewFromInt(1_000_000_000_000)
	if n.GreaterThanOrEqual(decimal.NewFromInt(1_000_000_000_000_000)) {
		high := n.Div(trillion).Floor()
		low := n.Sub(high.Mul(trillion))
		out := integerWords(high) + " TRILLION"
		if !low.IsZero() {
			out += " " + integerWords(low)
		}
		return out
	}
	return wordsUint(uint64(n.IntPart()))
}

func wordsUint(n uint64) string {
	if n < 20 {
		return units[n]
	}
	if n < 100 {
		word := tens[n/10]
		if n%10 != 0 {
			word += "-" + units[n%10]
		}
		return word
	}
	if n < 1000 {
		word := units[n/100] + " HUNDRED"
		if n%100 != 0 {
			word += " " + wordsUint(n%100)
		}
		return word
	}

	for _, s := range scales {
		if n < s.value {
			continue
		}
		parts := []string{wordsUint(n/s.value), s.name}
		if rest := n % s.value; rest != 0 {
			parts = append(parts, wordsUint(rest))
		}
		return strings.Join(parts, " ")
	}
	return ""
}
