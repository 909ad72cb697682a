package communitytax

import (
	"testing"
	"time"

	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestInterestRateFor(t *testing.T) {
	want := map[time.Month]int{
		time.January:   0,
		time.February:  0,
		time.March:     6,
		time.April:     8,
		time.May:       10,
		time.June:      12,
		time.July:      14,
		time.August:    16,
		time.September: 18,
		time.October:   20,
		time.November:  22,
		time.December:  24,
	}
	for month, rate := range want {
		assert.Equal(t, rate, InterestRateFor(month), month.String())
	}
}

func TestInterestRateForOutOfRange(t *testing.T) {
	assert.Equal(t, 0, InterestRateFor(0))
	assert.Equal(t, 0, InterestRateFor(13))
}

func TestInterestRateUsesClock(t *testing.T) {
	c := clock.NewFakeClock(time.Date(2024, time.January, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, InterestRate(c))

	c.Set(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 24, InterestRate(c))
}

func TestInterestRateMonotonic(t *testing.T) {
	prev := -1
	for m := time.January; m <= time.December; m++ {
		rate := InterestRateFor(m)
		assert.GreaterOrEqual(t, rate, prev)
		assert.LessOrEqual(t, rate, 24)
		prev = rate
	}
}
