// Package masking redacts taxpayer identifiers and payment references before
// they reach the audit trail.
package masking

import "strings"

const maskToken = "****"

var sensitiveKeys = map[string]struct{}{
	"tin":          {},
	"check_number": {},
	"account_no":   {},
}

// MaskSecret redacts a value while keeping its last four characters.
func MaskSecret(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	digits := strings.NewReplacer("-", "", " ", "").Replace(trimmed)
	if len(digits) <= 4 {
		return maskToken
	}
	return maskToken + digits[len(digits)-4:]
}

// MaskSensitive returns a copy of input with string values under sensitive
// keys masked. Nested maps and slices are walked.
func MaskSensitive(input map[string]any) map[string]any {
	if len(input) == 0 {
		return nil
	}

	masked := make(map[string]any, len(input))
	for key, value := range input {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			continue
		}
		if _, ok := sensitiveKeys[strings.ToLower(trimmedKey)]; ok {
			if s, isString := value.(string); isString {
				masked[trimmedKey] = MaskSecret(s)
				continue
			}
		}
		masked[trimmedKey] = maskValue(value)
	}

	if len(masked) == 0 {
		return nil
	}
	return masked
}

func maskValue(value any) any {
	switch cast := value.(type) {
	case map[string]any:
		return MaskSensitive(cast)
	case []any:
		out := make([]any, 0, len(cast))
		for _, item := range cast {
			out = append(out, maskValue(item))
		}
		return out
	default:
		return value
	}
}
