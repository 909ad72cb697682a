// Package domain contains the obligation request (OBR) model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fmis/internal/lineitem"
	"github.com/smallbiznis/fmis/internal/payee"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted, StatusCancelled},
	StatusSubmitted: {StatusApproved, StatusCancelled},
	StatusApproved:  {StatusCancelled},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Attachment points at a supporting document stored outside the database.
type Attachment struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type,omitempty"`
	URL         string    `json:"url,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// ObligationRequest commits appropriations for a payee.
type ObligationRequest struct {
	ID            snowflake.ID                       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Number        string                             `json:"number" gorm:"type:text;not null;uniqueIndex"`
	FiscalYearID  snowflake.ID                       `json:"fiscal_year_id" gorm:"not null;index"`
	DepartmentID  snowflake.ID                       `json:"department_id" gorm:"not null;index"`
	Payee         datatypes.JSONType[payee.Ref]      `json:"payee"`
	Purpose       string                             `json:"purpose" gorm:"type:text;not null"`
	Status        Status                             `json:"status" gorm:"type:text;not null;index"`
	Items         datatypes.JSONSlice[lineitem.Item] `json:"items"`
	Totals        lineitem.Totals                    `json:"totals" gorm:"embedded;embeddedPrefix:total_"`
	AmountInWords string                             `json:"amount_in_words" gorm:"type:text;not null"`
	Attachments   datatypes.JSONSlice[Attachment]    `json:"attachments"`
	CancelReason  string                             `json:"cancel_reason,omitempty" gorm:"type:text"`
	SubmittedAt   *time.Time                         `json:"submitted_at,omitempty"`
	ApprovedAt    *time.Time                         `json:"approved_at,omitempty"`
	CancelledAt   *time.Time                         `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time                          `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time                          `json:"updated_at" gorm:"not null"`
}

func (ObligationRequest) TableName() string { return "obligation_requests" }
