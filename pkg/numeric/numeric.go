// Package numeric coerces raw form input into decimals.
//
// Values typed into live-editing forms are frequently incomplete ("", "12.",
// "abc"). Coercion never fails: anything that is not a finite number becomes
// zero, and callers that need to tell the two apart use Parse.
package numeric

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Parse converts v into a decimal. The boolean is false when v is nil,
// blank, non-numeric, NaN or infinite.
func Parse(v any) (decimal.Decimal, bool) {
	switch typed := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return typed, true
	case *decimal.Decimal:
		if typed == nil {
			return decimal.Zero, false
		}
		return *typed, true
	case decimal.NullDecimal:
		if !typed.Valid {
			return decimal.Zero, false
		}
		return typed.Decimal, true
	case string:
		return parseString(typed)
	case *string:
		if typed == nil {
			return decimal.Zero, false
		}
		return parseString(*typed)
	case json.Number:
		return parseString(typed.String())
	case []byte:
		return parseString(string(typed))
	case int:
		return decimal.NewFromInt(int64(typed)), true
	case int32:
		return decimal.NewFromInt(int64(typed)), true
	case int64:
		return decimal.NewFromInt(typed), true
	case float32:
		return parseFloat(float64(typed))
	case float64:
		return parseFloat(typed)
	case *float64:
		if typed == nil {
			return decimal.Zero, false
		}
		return parseFloat(*typed)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return decimal.Zero, false
	}
	return parseFloat(f)
}

// Decimal converts v into a decimal, treating anything unparseable as zero.
func Decimal(v any) decimal.Decimal {
	d, _ := Parse(v)
	return d
}

// DecimalOr converts v into a decimal, falling back to def when v is nil or
// blank. Non-numeric, non-blank values still coerce to zero.
func DecimalOr(v any, def decimal.Decimal) decimal.Decimal {
	if IsBlank(v) {
		return def
	}
	return Decimal(v)
}

// IsBlank reports whether v carries no value at all.
func IsBlank(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case *string:
		return typed == nil || strings.TrimSpace(*typed) == ""
	case *decimal.Decimal:
		return typed == nil
	case *float64:
		return typed == nil
	case decimal.NullDecimal:
		return !typed.Valid
	}
	return false
}

func parseString(raw string) (decimal.Decimal, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}
