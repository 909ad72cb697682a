package clock

import (
	"strings"
	"time"

	"github.com/smallbiznis/fmis/internal/config"
	"go.uber.org/fx"
)

// Clock abstracts wall-clock reads so month- and date-dependent rules can be
// pinned in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock that reads the local time.
func NewSystemClock() Clock {
	return systemClock{loc: time.Local}
}

// NewSystemClockIn returns a clock that reads the time in loc.
func NewSystemClockIn(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

var Module = fx.Module("clock",
	fx.Provide(FromConfig),
)

// FromConfig returns the system clock in the configured time zone.
func FromConfig(cfg config.Config) (Clock, error) {
	name := strings.TrimSpace(cfg.TimeZone)
	if name == "" {
		return NewSystemClock(), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return NewSystemClockIn(loc), nil
}
