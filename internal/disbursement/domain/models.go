// Package domain contains the disbursement voucher (DV) model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fmis/internal/lineitem"
	obligationdomain "github.com/smallbiznis/fmis/internal/obligation/domain"
	"github.com/smallbiznis/fmis/internal/payee"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusCertified Status = "certified"
	StatusApproved  Status = "approved"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusDraft:     {StatusCertified, StatusCancelled},
	StatusCertified: {StatusApproved, StatusCancelled},
	StatusApproved:  {StatusPaid, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type ModeOfPayment string

const (
	ModeCheck ModeOfPayment = "check"
	ModeCash  ModeOfPayment = "cash"
	ModeADA   ModeOfPayment = "ada"
	ModeOther ModeOfPayment = "other"
)

func (m ModeOfPayment) Valid() bool {
	switch m {
	case ModeCheck, ModeCash, ModeADA, ModeOther:
		return true
	}
	return false
}

// Voucher authorizes payment of an obligation to a payee.
type Voucher struct {
	ID                  snowflake.ID                                     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Number              string                                           `json:"number" gorm:"type:text;not null;uniqueIndex"`
	ObligationRequestID *snowflake.ID                                    `json:"obligation_request_id,omitempty" gorm:"index"`
	Payee               datatypes.JSONType[payee.Ref]                    `json:"payee"`
	Particulars         string                                           `json:"particulars" gorm:"type:text;not null"`
	ModeOfPayment       ModeOfPayment                                    `json:"mode_of_payment" gorm:"type:text;not null"`
	Status              Status                                           `json:"status" gorm:"type:text;not null;index"`
	Items               datatypes.JSONSlice[lineitem.Item]               `json:"items"`
	Totals              lineitem.Totals                                  `json:"totals" gorm:"embedded;embeddedPrefix:total_"`
	AmountInWords       string                                           `json:"amount_in_words" gorm:"type:text;not null"`
	Attachments         datatypes.JSONSlice[obligationdomain.Attachment] `json:"attachments"`
	CheckNumber         string                                           `json:"check_number,omitempty" gorm:"type:text"`
	CancelReason        string                                           `json:"cancel_reason,omitempty" gorm:"type:text"`
	CertifiedAt         *time.Time                                       `json:"certified_at,omitempty"`
	ApprovedAt          *time.Time                                       `json:"approved_at,omitempty"`
	PaidAt              *time.Time                                       `json:"paid_at,omitempty"`
	CancelledAt         *time.Time                                       `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time                                        `json:"created_at" gorm:"not null"`
	UpdatedAt           time.Time                                        `json:"updated_at" gorm:"not null"`
}

func (Voucher) TableName() string { return "disbursement_vouchers" }
