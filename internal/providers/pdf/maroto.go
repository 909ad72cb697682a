package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

func (p *PDFProvider) GenerateVoucher(ctx context.Context, data VoucherData) (io.Reader, error) {
	m := newDocument()

	addHeader(m, data.Header, "DISBURSEMENT VOUCHER")

	m.AddRow(20,
		col.New(6).Add(
			text.New("Mode of payment: "+data.ModeOfPayment, props.Text{Top: 0}),
			text.New("Check no.: "+data.CheckNumber, props.Text{Top: 4}),
			text.New("OBR no.: "+data.ObligationNumber, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New("DV no.: "+data.Number, props.Text{Align: align.Right}),
			text.New("Date: "+data.Date, props.Text{Top: 4, Align: align.Right}),
		),
	)

	m.AddRow(25,
		col.New(12).Add(
			text.New("Payee", props.Text{Style: fontstyle.Bold}),
			text.New(data.PayeeName, props.Text{Top: 5}),
			text.New("TIN: "+data.PayeeTIN, props.Text{Top: 9}),
			text.New(data.PayeeAddress, props.Text{Top: 13}),
		),
	)

	m.AddRow(15,
		col.New(12).Add(
			text.New("Particulars", props.Text{Style: fontstyle.Bold}),
			text.New(data.Particulars, props.Text{Top: 5}),
		),
	)

	addLines(m, data.Lines)
	addSummary(m, data.Summary, data.AmountInWords)

	m.AddRow(30,
		signature("Certified: funds available", data.Accountant, "Municipal Accountant"),
		signature("Certified: cash available", data.Treasurer, "Municipal Treasurer"),
		signature("Approved for payment", data.Mayor, "Municipal Mayor"),
	)

	return generate(m)
}

func (p *PDFProvider) GenerateObligation(ctx context.Context, data ObligationData) (io.Reader, error) {
	m := newDocument()

	addHeader(m, data.Header, "OBLIGATION REQUEST")

	m.AddRow(20,
		col.New(6).Add(
			text.New("Fiscal year: "+data.FiscalYear, props.Text{Top: 0}),
			text.New("Office: "+data.Department, props.Text{Top: 4}),
		),
		col.New(6).Add(
			text.New("OBR no.: "+data.Number, props.Text{Align: align.Right}),
			text.New("Date: "+data.Date, props.Text{Top: 4, Align: align.Right}),
		),
	)

	m.AddRow(25,
		col.New(12).Add(
			text.New("Payee", props.Text{Style: fontstyle.Bold}),
			text.New(data.PayeeName, props.Text{Top: 5}),
			text.New(data.PayeeOffice, props.Text{Top: 9}),
			text.New(data.PayeeAddress, props.Text{Top: 13}),
		),
	)

	m.AddRow(15,
		col.New(12).Add(
			text.New("Purpose", props.Text{Style: fontstyle.Bold}),
			text.New(data.Purpose, props.Text{Top: 5}),
		),
	)

	addLines(m, data.Lines)
	addSummary(m, data.Summary, data.AmountInWords)

	m.AddRow(30,
		signature("Requested by", data.RequestedBy, "Head, Requesting Office"),
		col.New(4),
		signature("Certified: obligation", data.Accountant, "Municipal Accountant"),
	)

	return generate(m)
}

func addHeader(m core.Maroto, h Header, title string) {
	m.AddRow(6,
		text.NewCol(12, "Republic of the Philippines", props.Text{Size: 9, Align: align.Center}),
	)
	m.AddRow(6,
		text.NewCol(12, h.Province, props.Text{Size: 9, Align: align.Center}),
	)
	m.AddRow(8,
		text.NewCol(12, h.LGUName, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Center}),
	)
	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   3,
		}),
	)
}

func addLines(m core.Maroto, lines []Line) {
	m.AddRow(10,
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Account", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(1, line.NewCol(12))

	for _, l := range lines {
		m.AddRow(8,
			text.NewCol(5, l.Description, props.Text{Size: 9}),
			text.NewCol(2, l.AccountCode, props.Text{Size: 9}),
			text.NewCol(1, Quantity(l.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, Amount(l.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, Amount(l.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(1, line.NewCol(12))
}

func addSummary(m core.Maroto, s Summary, words string) {
	rows := []struct {
		label string
		value string
	}{
		{"Gross amount", Amount(s.Gross)},
		{"Discount", Amount(s.Discount)},
		{"VAT", Amount(s.VAT)},
		{"Withholding tax", Amount(s.Withheld)},
		{"Expanded withholding tax", Amount(s.EWT)},
	}
	for _, r := range rows {
		m.AddRow(6,
			col.New(7),
			text.NewCol(3, r.label, props.Text{Size: 9}),
			text.NewCol(2, r.value, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(8,
		col.New(7),
		text.NewCol(3, "Net amount", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, Peso(s.Net), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(12,
		text.NewCol(12, "Amount in words: "+words, props.Text{Size: 9, Style: fontstyle.Italic, Top: 3}),
	)
}

func signature(caption, name, title string) core.Col {
	return col.New(4).Add(
		text.New(caption, props.Text{Size: 8}),
		text.New(name, props.Text{Top: 14, Size: 9, Style: fontstyle.Bold, Align: align.Center}),
		text.New(title, props.Text{Top: 18, Size: 8, Align: align.Center}),
	)
}

func generate(m core.Maroto) (io.Reader, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
