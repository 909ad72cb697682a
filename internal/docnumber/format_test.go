package docnumber

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	issued := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		template string
		seq      int64
		want     string
	}{
		{"OBR-{YYYY}-{MM}-{SEQ4}", 12, "OBR-2024-03-0012"},
		{"DV-{YY}{MM}{DD}-{SEQ}", 5, "DV-240307-5"},
		{"CTC-{YYYY}-{SEQ6}", 123456, "CTC-2024-123456"},
		{"X-{SEQ2}", 1234, "X-1234"},
	}

	for _, tc := range cases {
		got, err := Format(tc.template, issued, tc.seq)
		require.NoError(t, err, tc.template)
		assert.Equal(t, tc.want, got)
	}
}

func TestFormatErrors(t *testing.T) {
	issued := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)

	_, err := Format("", issued, 1)
	assert.Error(t, err)

	_, err = Format("OBR-{SEQ}", issued, 0)
	assert.Error(t, err)

	_, err = Format("OBR-{FOO}-{SEQ}", issued, 1)
	assert.Error(t, err)

	_, err = Format("OBR-{DEPT}-{SEQ}", issued, 1)
	assert.Error(t, err)
}

func TestFormatWithDepartment(t *testing.T) {
	issued := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	got, err := FormatWithDepartment("{DEPT}-{YYYY}-{SEQ3}", issued, 9, "mto")
	require.NoError(t, err)
	assert.Equal(t, "MTO-2025-009", got)
}
