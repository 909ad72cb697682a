// Package seed bootstraps the reference data a fresh install needs: the
// withholding tax codes from rates.yml and an open fiscal year.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/config"
	refdomain "github.com/smallbiznis/fmis/internal/reference/domain"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
	"gorm.io/gorm"
)

// EnsureDefaults seeds missing tax codes and, when no fiscal year is open,
// opens the calendar year of now.
func EnsureDefaults(db *gorm.DB, rates config.RatesConfig, now time.Time) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, preset := range rates.Withholding {
			if err := ensureTaxCodeTx(ctx, tx, node, preset, now); err != nil {
				return err
			}
		}
		_, err := ensureOpenFiscalYearTx(ctx, tx, node, now)
		return err
	})
}

func ensureTaxCodeTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, preset config.WithholdingRate, now time.Time) error {
	code := strings.ToUpper(strings.TrimSpace(preset.Code))
	if code == "" {
		return nil
	}

	var existing taxdomain.TaxCode
	err := tx.WithContext(ctx).Where("code = ?", code).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	record := taxdomain.TaxCode{
		ID:          node.Generate(),
		Code:        code,
		Name:        strings.TrimSpace(preset.Name),
		Kind:        taxdomain.Kind(strings.ToLower(strings.TrimSpace(preset.Kind))),
		RatePercent: decimal.NewFromFloat(preset.Rate),
		IsEnabled:   true,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := record.Validate(); err != nil {
		return err
	}
	return tx.WithContext(ctx).Create(&record).Error
}

func ensureOpenFiscalYearTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, now time.Time) (refdomain.FiscalYear, error) {
	var fy refdomain.FiscalYear
	err := tx.WithContext(ctx).Where("is_open = ?", true).First(&fy).Error
	if err == nil {
		return fy, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fy, err
	}

	year := now.Year()
	err = tx.WithContext(ctx).Where("year = ?", year).First(&fy).Error
	if err == nil {
		// The current year exists but was closed deliberately.
		return fy, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fy, err
	}

	ts := now.UTC()
	fy = refdomain.FiscalYear{
		ID:        node.Generate(),
		Year:      year,
		StartsOn:  time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndsOn:    time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		IsOpen:    true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := tx.WithContext(ctx).Create(&fy).Error; err != nil {
		return fy, err
	}
	return fy, nil
}
