package docnumber

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/fmis/pkg/db"
	"gorm.io/gorm"
)

// Document types that carry a number.
const (
	TypeObligationRequest   = "obligation_request"
	TypeDisbursementVoucher = "disbursement_voucher"
	TypeCommunityTax        = "community_tax_certificate"
)

// Sequence tracks the next number per document type and fiscal year.
type Sequence struct {
	DocumentType string    `gorm:"column:document_type;type:text;primaryKey"`
	FiscalYear   int       `gorm:"column:fiscal_year;primaryKey;autoIncrement:false"`
	NextValue    int64     `gorm:"column:next_value;not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (Sequence) TableName() string { return "document_sequences" }

// SequenceRepository allocates sequence values.
type SequenceRepository interface {
	WithTrx(tx *gorm.DB) SequenceRepository
	Next(ctx context.Context, documentType string, fiscalYear int) (int64, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(conn *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: conn}
}

func (r *sequenceRepository) WithTrx(tx *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: tx}
}

// Next returns the next value, starting at 1 for a new (type, year) pair.
func (r *sequenceRepository) Next(ctx context.Context, documentType string, fiscalYear int) (int64, error) {
	for attempt := 0; attempt < 3; attempt++ {
		value, err := r.next(ctx, documentType, fiscalYear)
		if err == nil {
			return value, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return 0, err
		}
	}
	return 0, errors.New("document sequence contention")
}

func (r *sequenceRepository) next(ctx context.Context, documentType string, fiscalYear int) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		res := tx.Model(&Sequence{}).
			Where("document_type = ? AND fiscal_year = ?", documentType, fiscalYear).
			Updates(map[string]any{
				"next_value": gorm.Expr("next_value + 1"),
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			value = 1
			return tx.Create(&Sequence{
				DocumentType: documentType,
				FiscalYear:   fiscalYear,
				NextValue:    2,
				UpdatedAt:    now,
			}).Error
		}

		var seq Sequence
		if err := tx.Where("document_type = ? AND fiscal_year = ?", documentType, fiscalYear).
			First(&seq).Error; err != nil {
			return err
		}
		value = seq.NextValue - 1
		return nil
	})
	return value, err
}
