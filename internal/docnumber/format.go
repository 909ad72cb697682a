// Package docnumber formats and allocates human-readable document numbers.
package docnumber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

// Format renders a document number from a template, the issue time and a
// monotonic sequence. Supported tokens: {YYYY} {YY} {MM} {DD} {SEQ} {SEQn}.
func Format(template string, issuedAt time.Time, seq int64) (string, error) {
	return FormatWithDepartment(template, issuedAt, seq, "")
}

// FormatWithDepartment is Format plus the {DEPT} token.
func FormatWithDepartment(template string, issuedAt time.Time, seq int64, department string) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", fmt.Errorf("document number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid document sequence: %d", seq)
	}

	out := template

	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	if strings.Contains(out, "{DEPT}") {
		dept := strings.ToUpper(strings.TrimSpace(department))
		if dept == "" {
			return "", fmt.Errorf("template %q requires a department code", template)
		}
		out = strings.ReplaceAll(out, "{DEPT}", dept)
	}

	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m
		}
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in document number format: %s", out)
	}

	return out, nil
}
