package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/clock"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	c := NewTTLCache[string, int](fake.Now)

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, 0)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	fake.Advance(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)

	v, ok = c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())

	c.Delete("b")
	assert.Equal(t, 0, c.Len())
}

func TestTTLCacheConcurrentAccess(t *testing.T) {
	c := NewTTLCache[int, int](nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(j, n, time.Minute)
				c.Get(j)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100, c.Len())
}

func TestTaxCodeCache(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	c := newTaxCodeCache(fake, time.Minute)

	def := &taxdomain.TaxCode{ID: snowflake.ID(7), Code: "WC158", RatePercent: decimal.NewFromInt(1), IsEnabled: true}
	c.Set(" wc158 ", def)
	c.Set("PRESET", &taxdomain.TaxCode{Code: "PRESET"})

	got, ok := c.Get("WC158")
	require.True(t, ok)
	assert.Equal(t, "WC158", got.Code)

	got.RatePercent = decimal.NewFromInt(99)
	again, _ := c.Get("wc158")
	assert.Equal(t, "1", again.RatePercent.String())

	_, ok = c.Get("PRESET")
	assert.False(t, ok, "definitions without an id are not cached")

	c.Invalidate("Wc158")
	_, ok = c.Get("WC158")
	assert.False(t, ok)

	c.Set("WC158", def)
	fake.Advance(2 * time.Minute)
	_, ok = c.Get("WC158")
	assert.False(t, ok)
}
