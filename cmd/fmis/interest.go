package main

import (
	"fmt"
	"time"

	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/communitytax"
	"github.com/smallbiznis/fmis/internal/config"
	"github.com/spf13/cobra"
)

var flagMonth int

// newClock matches the clock the server is wired with.
var newClock = func() (clock.Clock, error) {
	return clock.FromConfig(config.Load())
}

var interestCmd = &cobra.Command{
	Use:   "interest",
	Short: "Community tax interest percentage for a month",
	RunE:  runInterest,
}

func init() {
	interestCmd.Flags().IntVarP(&flagMonth, "month", "m", 0, "Month 1-12 (default current month)")
	rootCmd.AddCommand(interestCmd)
}

func runInterest(cmd *cobra.Command, _ []string) error {
	if flagMonth < 0 || flagMonth > 12 {
		return fmt.Errorf("month must be 1-12, got %d", flagMonth)
	}
	month := time.Month(flagMonth)
	if flagMonth == 0 {
		c, err := newClock()
		if err != nil {
			return fmt.Errorf("load clock: %w", err)
		}
		month = c.Now().Month()
	}
	return printJSON(cmd, map[string]any{
		"month":         month.String(),
		"interest_rate": communitytax.InterestRateFor(month),
	})
}
