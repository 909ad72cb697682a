package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/lineitem"
	"github.com/smallbiznis/fmis/internal/payee"
	"github.com/smallbiznis/fmis/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Voucher, error)
	Get(ctx context.Context, id string) (*Voucher, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Certify(ctx context.Context, id string) (*Voucher, error)
	Approve(ctx context.Context, id string) (*Voucher, error)
	MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (*Voucher, error)
	Cancel(ctx context.Context, id string, reason string) (*Voucher, error)
	RenderPDF(ctx context.Context, id string) ([]byte, error)
}

// CreateRequest either links an approved obligation request, inheriting its
// payee and, when Items is empty, its lines, or stands alone with its own
// payee and lines.
type CreateRequest struct {
	ObligationRequestID string               `json:"obligation_request_id"`
	Payee               *payee.Ref           `json:"payee"`
	Particulars         string               `json:"particulars"`
	ModeOfPayment       ModeOfPayment        `json:"mode_of_payment"`
	Items               []lineitem.ItemInput `json:"items"`
}

type MarkPaidRequest struct {
	CheckNumber string `json:"check_number"`
}

type ListRequest struct {
	Status              string `form:"status"`
	ObligationRequestID string `form:"obligation_request_id"`
	pagination.Pagination
}

type ListResponse struct {
	Items    []*Voucher          `json:"items"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

// SumResult is the aggregate of existing vouchers against an obligation.
type SumResult struct {
	Net   decimal.Decimal
	Count int64
}
