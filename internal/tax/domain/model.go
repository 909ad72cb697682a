package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Kind tells which line item column a tax code feeds.
type Kind string

const (
	KindWithholding Kind = "withholding" // feeds the line tax rate
	KindEWT         Kind = "ewt"         // expanded withholding tax
)

var maxRate = decimal.NewFromInt(100)

// TaxCode is a BIR alphanumeric tax code with its withholding rate.
// Code is immutable once created; name, rate and description are editable.
type TaxCode struct {
	ID          snowflake.ID    `gorm:"primaryKey;autoIncrement:false"`
	Code        string          `gorm:"type:text;not null;uniqueIndex"`
	Name        string          `gorm:"type:text;not null"`
	Kind        Kind            `gorm:"type:text;not null"`
	RatePercent decimal.Decimal `gorm:"column:rate_percent;type:numeric(7,4);not null"`
	Description *string         `gorm:"type:text"`
	IsEnabled   bool            `gorm:"column:is_enabled;not null;default:true"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (TaxCode) TableName() string { return "tax_codes" }

func (t *TaxCode) Validate() error {
	if t.Code == "" {
		return ErrInvalidTaxCode
	}
	if t.Name == "" {
		return ErrInvalidName
	}
	if !t.Kind.Valid() {
		return ErrInvalidTaxKind
	}
	if t.RatePercent.IsNegative() || t.RatePercent.GreaterThan(maxRate) {
		return ErrInvalidTaxRate
	}
	return nil
}

func (k Kind) Valid() bool {
	return k == KindWithholding || k == KindEWT
}
