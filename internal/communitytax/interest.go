// Package communitytax assesses community tax (cedula) and issues
// certificates.
package communitytax

import (
	"time"

	"github.com/smallbiznis/fmis/internal/clock"
)

// monthlyInterest is the surcharge percentage for payments made in each
// month, January first. Payments through February carry no interest.
var monthlyInterest = [12]int{0, 0, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24}

// InterestRate returns the interest percentage for the current month of c.
func InterestRate(c clock.Clock) int {
	return InterestRateFor(c.Now().Month())
}

// InterestRateFor returns the interest percentage for month m. Months
// outside January..December yield 0.
func InterestRateFor(m time.Month) int {
	if m < time.January || m > time.December {
		return 0
	}
	return monthlyInterest[m-1]
}
