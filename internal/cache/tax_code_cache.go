package cache

import (
	"strings"
	"time"

	"github.com/smallbiznis/fmis/internal/clock"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
)

const defaultTaxCodeTTL = 5 * time.Minute

// TaxCodeCache stores stored tax codes by normalized code for line-item rate
// resolution. Writers invalidate the code they change.
type TaxCodeCache interface {
	Get(code string) (*taxdomain.TaxCode, bool)
	Set(code string, def *taxdomain.TaxCode)
	Invalidate(code string)
	Purge()
}

type taxCodeCache struct {
	codes Cache[string, taxdomain.TaxCode]
	ttl   time.Duration
}

func NewTaxCodeCache(c clock.Clock) TaxCodeCache {
	return newTaxCodeCache(c, defaultTaxCodeTTL)
}

func newTaxCodeCache(c clock.Clock, ttl time.Duration) *taxCodeCache {
	return &taxCodeCache{
		codes: NewTTLCache[string, taxdomain.TaxCode](c.Now),
		ttl:   ttl,
	}
}

// Get returns a copy so callers cannot mutate the cached definition.
func (c *taxCodeCache) Get(code string) (*taxdomain.TaxCode, bool) {
	def, ok := c.codes.Get(cacheKey(code))
	if !ok {
		return nil, false
	}
	return &def, true
}

func (c *taxCodeCache) Set(code string, def *taxdomain.TaxCode) {
	if def == nil || def.ID == 0 {
		return
	}
	c.codes.Set(cacheKey(code), *def, c.ttl)
}

func (c *taxCodeCache) Invalidate(code string) {
	c.codes.Delete(cacheKey(code))
}

func (c *taxCodeCache) Purge() {
	c.codes.Purge()
}

func cacheKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
