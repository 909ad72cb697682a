// Package pdf renders printable LGU forms.
package pdf

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type Provider interface {
	GenerateVoucher(ctx context.Context, data VoucherData) (io.Reader, error)
	GenerateObligation(ctx context.Context, data ObligationData) (io.Reader, error)
}

var Module = fx.Module("pdf",
	fx.Provide(New),
)

// Header identifies the issuing local government unit.
type Header struct {
	LGUName  string
	Province string
}

// Line is one printed row of a form.
type Line struct {
	Description string
	AccountCode string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

type Summary struct {
	Gross    decimal.Decimal
	Discount decimal.Decimal
	VAT      decimal.Decimal
	Withheld decimal.Decimal
	EWT      decimal.Decimal
	Net      decimal.Decimal
}

type VoucherData struct {
	Header
	Number           string
	Date             string
	ObligationNumber string
	ModeOfPayment    string
	CheckNumber      string
	PayeeName        string
	PayeeTIN         string
	PayeeAddress     string
	Particulars      string
	Lines            []Line
	Summary          Summary
	AmountInWords    string
	Accountant       string
	Treasurer        string
	Mayor            string
}

type ObligationData struct {
	Header
	Number        string
	Date          string
	FiscalYear    string
	Department    string
	PayeeName     string
	PayeeOffice   string
	PayeeAddress  string
	Purpose       string
	Lines         []Line
	Summary       Summary
	AmountInWords string
	RequestedBy   string
	Accountant    string
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateVoucher(ctx context.Context, data VoucherData) (io.Reader, error) {
	return nil, nil
}

func (p *NoOpProvider) GenerateObligation(ctx context.Context, data ObligationData) (io.Reader, error) {
	return nil, nil
}
