package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Peso formats an amount with thousands separators and two decimals,
// e.g. "PHP 1,234.50". The built-in PDF fonts have no peso glyph.
func Peso(d decimal.Decimal) string {
	return "PHP " + Amount(d)
}

// Amount formats an amount with thousands separators and two decimals.
func Amount(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Quantity drops trailing zeros from whole quantities.
func Quantity(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return printer.Sprintf("%d", d.IntPart())
	}
	return printer.Sprintf("%.2f", d.InexactFloat64())
}
