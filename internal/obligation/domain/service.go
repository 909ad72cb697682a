package domain

import (
	"context"

	"github.com/smallbiznis/fmis/internal/lineitem"
	"github.com/smallbiznis/fmis/internal/payee"
	"github.com/smallbiznis/fmis/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ObligationRequest, error)
	Get(ctx context.Context, id string) (*ObligationRequest, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Update(ctx context.Context, req UpdateRequest) (*ObligationRequest, error)
	Submit(ctx context.Context, id string) (*ObligationRequest, error)
	Approve(ctx context.Context, id string) (*ObligationRequest, error)
	Cancel(ctx context.Context, id string, reason string) (*ObligationRequest, error)
	AddAttachment(ctx context.Context, id string, req AttachmentRequest) (*ObligationRequest, error)
	Preview(ctx context.Context, items []lineitem.ItemInput) (*Preview, error)
	RenderPDF(ctx context.Context, id string) ([]byte, error)
}

type CreateRequest struct {
	FiscalYearID string               `json:"fiscal_year_id"`
	DepartmentID string               `json:"department_id"`
	Payee        payee.Ref            `json:"payee"`
	Purpose      string               `json:"purpose"`
	Items        []lineitem.ItemInput `json:"items"`
}

// UpdateRequest replaces the editable fields of a draft. Nil fields are kept.
type UpdateRequest struct {
	ID      string                `json:"-"`
	Payee   *payee.Ref            `json:"payee,omitempty"`
	Purpose *string               `json:"purpose,omitempty"`
	Items   *[]lineitem.ItemInput `json:"items,omitempty"`
}

type AttachmentRequest struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

type ListRequest struct {
	Status       string `form:"status"`
	DepartmentID string `form:"department_id"`
	FiscalYearID string `form:"fiscal_year_id"`
	pagination.Pagination
}

type ListResponse struct {
	Items    []*ObligationRequest `json:"items"`
	PageInfo pagination.PageInfo  `json:"page_info"`
}

// Preview is the computed form of a set of lines, not persisted.
type Preview struct {
	Items         []lineitem.Item `json:"items"`
	Totals        lineitem.Totals `json:"totals"`
	AmountInWords string          `json:"amount_in_words"`
}
