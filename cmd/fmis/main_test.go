package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalcCommand(t *testing.T) {
	out, err := execute(t, "calc",
		"--price", "1120", "--quantity", "1", "--vatable",
		"--tax-rate", "5", "--ewt-rate", "", "--discount", "", "--vat-rate", "")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "120", got["vat"])
	assert.Equal(t, "1000", got["subtotal_tax_excluded"])
	assert.Equal(t, "-50", got["withheld"])
	assert.Equal(t, "1070", got["subtotal"])
	assert.Equal(t, "ONE THOUSAND SEVENTY PESOS", got["amount_in_words"])
}

func TestWordsCommand(t *testing.T) {
	out, err := execute(t, "words", "1234.56")
	require.NoError(t, err)
	assert.Equal(t, "ONE THOUSAND TWO HUNDRED THIRTY-FOUR PESOS AND 56/100", strings.TrimSpace(out))

	_, err = execute(t, "words", "abc")
	assert.Error(t, err)
}

func TestInterestCommand(t *testing.T) {
	out, err := execute(t, "interest", "--month", "4")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "April", got["month"])
	assert.EqualValues(t, 8, got["interest_rate"])

	_, err = execute(t, "interest", "--month", "13")
	assert.Error(t, err)
}

func TestInterestCommandDefaultsToConfiguredClock(t *testing.T) {
	// 2026-03-31 17:00 UTC is already April 1 in Manila.
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, time.March, 31, 17, 0, 0, 0, time.UTC).In(manila))

	prev := newClock
	newClock = func() (clock.Clock, error) { return fake, nil }
	t.Cleanup(func() { newClock = prev })

	out, err := execute(t, "interest", "--month", "0")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "April", got["month"])
	assert.EqualValues(t, 8, got["interest_rate"])
}
