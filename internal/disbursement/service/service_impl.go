package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/amountwords"
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/config"
	"github.com/smallbiznis/fmis/internal/disbursement/domain"
	"github.com/smallbiznis/fmis/internal/docnumber"
	"github.com/smallbiznis/fmis/internal/lineitem"
	obligationdomain "github.com/smallbiznis/fmis/internal/obligation/domain"
	"github.com/smallbiznis/fmis/internal/observability/metrics"
	"github.com/smallbiznis/fmis/internal/payee"
	"github.com/smallbiznis/fmis/internal/providers/pdf"
	refdomain "github.com/smallbiznis/fmis/internal/reference/domain"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
	"github.com/smallbiznis/fmis/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const documentType = docnumber.TypeDisbursementVoucher

type serviceParams struct {
	fx.In

	Log         *zap.Logger
	DB          *gorm.DB
	GenID       *snowflake.Node
	Repo        domain.Repository
	Obligations obligationdomain.Repository
	Clock       clock.Clock
	Numberer    docnumber.Numberer
	Taxes       taxdomain.Resolver
	Reference   refdomain.Service
	Payees      payee.Resolver
	Rates       *config.RatesConfigHolder
	Config      config.Config
	PDF         pdf.Provider
	Metrics     *metrics.Metrics `optional:"true"`
}

type Service struct {
	log         *zap.Logger
	db          *gorm.DB
	genID       *snowflake.Node
	repo        domain.Repository
	obligations obligationdomain.Repository
	clock       clock.Clock
	numberer    docnumber.Numberer
	reference   refdomain.Service
	payees      payee.Resolver
	builder     lineitem.Builder
	pdf         pdf.Provider
	lgu         config.LGUConfig
	metrics     *metrics.Metrics
}

func NewService(p serviceParams) domain.Service {
	return &Service{
		log:         p.Log.Named("disbursement.service"),
		db:          p.DB,
		genID:       p.GenID,
		repo:        p.Repo,
		obligations: p.Obligations,
		clock:       p.Clock,
		numberer:    p.Numberer,
		reference:   p.Reference,
		payees:      p.Payees,
		builder: lineitem.Builder{
			Rates: p.Taxes,
			DefaultVAT: func() decimal.Decimal {
				return decimal.NewFromFloat(p.Rates.Get().DefaultVATRate)
			},
		},
		pdf:     p.PDF,
		lgu:     p.Config.LGU,
		metrics: p.Metrics,
	}
}

// draft is a voucher validated and computed but not yet numbered.
type draft struct {
	obligationID *snowflake.ID
	department   string
	payee        payee.Ref
	items        []lineitem.Item
	totals       lineitem.Totals
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Voucher, error) {
	particulars := strings.TrimSpace(req.Particulars)
	if particulars == "" {
		return nil, domain.ErrInvalidParticulars
	}

	mode := domain.ModeOfPayment(strings.ToLower(strings.TrimSpace(string(req.ModeOfPayment))))
	if mode == "" {
		mode = domain.ModeCheck
	}
	if !mode.Valid() {
		return nil, domain.ErrInvalidModeOfPayment
	}

	d, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	record := &domain.Voucher{
		ID:                  s.genID.Generate(),
		ObligationRequestID: d.obligationID,
		Payee:               datatypes.NewJSONType(d.payee),
		Particulars:         particulars,
		ModeOfPayment:       mode,
		Status:              domain.StatusDraft,
		Items:               datatypes.JSONSlice[lineitem.Item](d.items),
		Totals:              d.totals,
		AmountInWords:       amountwords.FromDecimal(d.totals.Net),
		Attachments:         datatypes.JSONSlice[obligationdomain.Attachment]{},
		CreatedAt:           now.UTC(),
		UpdatedAt:           now.UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if d.obligationID != nil {
			if err := s.checkBalance(ctx, tx, *d.obligationID, d.totals.Net); err != nil {
				return err
			}
		}
		number, err := s.numberer.WithTrx(tx).Next(ctx, documentType, now, d.department)
		if err != nil {
			return err
		}
		record.Number = number
		return s.repo.WithTrx(tx).Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	for _, item := range d.items {
		s.metrics.RecordLineItem(item.Vatable, documentType)
	}
	s.metrics.RecordDocumentCreated(documentType, record.Totals.Net.InexactFloat64())
	s.log.Info("disbursement voucher created",
		zap.String("number", record.Number),
		zap.String("mode_of_payment", string(mode)),
		zap.String("net", record.Totals.Net.StringFixed(2)),
	)
	return record, nil
}

func (s *Service) prepare(ctx context.Context, req domain.CreateRequest) (*draft, error) {
	var d draft

	if strings.TrimSpace(req.ObligationRequestID) != "" {
		obrID, err := parseID(req.ObligationRequestID)
		if err != nil {
			return nil, err
		}
		obr, err := s.obligations.FindByID(ctx, obrID)
		if err != nil {
			return nil, err
		}
		if obr == nil {
			return nil, obligationdomain.ErrNotFound
		}
		if obr.Status != obligationdomain.StatusApproved {
			return nil, domain.ErrObligationNotApproved
		}
		d.obligationID = &obr.ID
		d.payee = obr.Payee.Data()
		d.items = obr.Items
		if dept, err := s.reference.GetDepartment(ctx, obr.DepartmentID.String()); err == nil {
			d.department = dept.Code
		}
	}

	if req.Payee != nil {
		resolved, err := s.payees.Resolve(ctx, *req.Payee)
		if err != nil {
			return nil, err
		}
		d.payee = payee.ToRef(resolved)
	} else if d.obligationID == nil {
		return nil, payee.ErrInvalidKind
	}

	if len(req.Items) > 0 || d.obligationID == nil {
		items, err := s.builder.BuildAll(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		d.items = items
	}
	d.totals = lineitem.SumItems(d.items)

	if d.obligationID != nil {
		if err := s.checkBalance(ctx, s.db.WithContext(ctx), *d.obligationID, d.totals.Net); err != nil {
			return nil, err
		}
	}
	return &d, nil
}

// checkBalance rejects a voucher whose net would take the vouchers drawn
// against an obligation request past the request's own net amount.
func (s *Service) checkBalance(ctx context.Context, tx *gorm.DB, obligationID snowflake.ID, net decimal.Decimal) error {
	obr, err := s.obligations.WithTrx(tx).FindByIDForUpdate(ctx, obligationID)
	if err != nil {
		return err
	}
	if obr == nil {
		return obligationdomain.ErrNotFound
	}
	if obr.Status != obligationdomain.StatusApproved {
		return domain.ErrObligationNotApproved
	}

	drawn, err := s.repo.WithTrx(tx).SumActiveByObligation(ctx, obligationID)
	if err != nil {
		return err
	}
	if drawn.Net.Add(net).GreaterThan(obr.Totals.Net) {
		return domain.ErrAmountExceedsObligation
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Voucher, error) {
	voucherID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.FindByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	filter := domain.ListFilter{
		Status: domain.Status(strings.ToLower(strings.TrimSpace(req.Status))),
		Limit:  req.Limit() + 1,
	}
	if strings.TrimSpace(req.ObligationRequestID) != "" {
		id, err := parseID(req.ObligationRequestID)
		if err != nil {
			return nil, err
		}
		filter.ObligationRequestID = id
	}

	cursor, err := pagination.DecodeCursor(req.PageToken)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		before, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, pagination.ErrInvalidPageToken
		}
		filter.BeforeID = before
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items, info := pagination.BuildCursorPageInfo(items, req.Limit(), func(v *domain.Voucher) string {
		return v.ID.String()
	})
	return &domain.ListResponse{Items: items, PageInfo: info}, nil
}

func (s *Service) Certify(ctx context.Context, id string) (*domain.Voucher, error) {
	return s.transition(ctx, id, domain.StatusCertified, func(v *domain.Voucher, now time.Time) error {
		v.CertifiedAt = &now
		return nil
	})
}

func (s *Service) Approve(ctx context.Context, id string) (*domain.Voucher, error) {
	return s.transition(ctx, id, domain.StatusApproved, func(v *domain.Voucher, now time.Time) error {
		v.ApprovedAt = &now
		return nil
	})
}

func (s *Service) MarkPaid(ctx context.Context, id string, req domain.MarkPaidRequest) (*domain.Voucher, error) {
	checkNumber := strings.TrimSpace(req.CheckNumber)
	return s.transition(ctx, id, domain.StatusPaid, func(v *domain.Voucher, now time.Time) error {
		if v.ModeOfPayment == domain.ModeCheck && checkNumber == "" {
			return domain.ErrCheckNumberRequired
		}
		v.CheckNumber = checkNumber
		v.PaidAt = &now
		return nil
	})
}

func (s *Service) Cancel(ctx context.Context, id string, reason string) (*domain.Voucher, error) {
	return s.transition(ctx, id, domain.StatusCancelled, func(v *domain.Voucher, now time.Time) error {
		v.CancelledAt = &now
		v.CancelReason = strings.TrimSpace(reason)
		return nil
	})
}

func (s *Service) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ref := record.Payee.Data()
	data := pdf.VoucherData{
		Header:        pdf.Header{LGUName: s.lgu.Name, Province: s.lgu.Province},
		Number:        record.Number,
		Date:          record.CreatedAt.Format("2006-01-02"),
		ModeOfPayment: strings.ToUpper(string(record.ModeOfPayment)),
		CheckNumber:   record.CheckNumber,
		PayeeName:     ref.Name,
		PayeeTIN:      ref.TIN,
		PayeeAddress:  ref.Address,
		Particulars:   record.Particulars,
		Lines:         pdf.LinesFromItems(record.Items),
		Summary:       pdf.SummaryFromTotals(record.Totals),
		AmountInWords: record.AmountInWords,
		Accountant:    s.lgu.Accountant,
		Treasurer:     s.lgu.Treasurer,
		Mayor:         s.lgu.Mayor,
	}
	if record.ObligationRequestID != nil {
		if obr, err := s.obligations.FindByID(ctx, *record.ObligationRequestID); err == nil && obr != nil {
			data.ObligationNumber = obr.Number
		}
	}

	r, err := s.pdf.GenerateVoucher(ctx, data)
	s.metrics.RecordPDF(documentType, err)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func (s *Service) transition(ctx context.Context, id string, to domain.Status, apply func(*domain.Voucher, time.Time) error) (*domain.Voucher, error) {
	voucherID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var (
		out  *domain.Voucher
		from domain.Status
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTrx(tx)
		record, err := repo.FindByIDForUpdate(ctx, voucherID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		if !domain.CanTransition(record.Status, to) {
			return domain.ErrInvalidStatusTransition
		}

		now := s.clock.Now().UTC()
		if err := apply(record, now); err != nil {
			return err
		}
		from = record.Status
		record.Status = to
		record.UpdatedAt = now
		if err := repo.Save(ctx, record); err != nil {
			return err
		}
		out = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTransition(documentType, string(to))
	s.log.Info("disbursement voucher status changed",
		zap.String("number", out.Number),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return out, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
