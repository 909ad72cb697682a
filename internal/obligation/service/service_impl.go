package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/amountwords"
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/config"
	"github.com/smallbiznis/fmis/internal/docnumber"
	"github.com/smallbiznis/fmis/internal/lineitem"
	"github.com/smallbiznis/fmis/internal/obligation/domain"
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

const documentType = docnumber.TypeObligationRequest

type serviceParams struct {
	fx.In

	Log       *zap.Logger
	DB        *gorm.DB
	GenID     *snowflake.Node
	Repo      domain.Repository
	Clock     clock.Clock
	Numberer  docnumber.Numberer
	Taxes     taxdomain.Resolver
	Reference refdomain.Service
	Payees    payee.Resolver
	Rates     *config.RatesConfigHolder
	Config    config.Config
	PDF       pdf.Provider
	Metrics   *metrics.Metrics `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	db        *gorm.DB
	genID     *snowflake.Node
	repo      domain.Repository
	clock     clock.Clock
	numberer  docnumber.Numberer
	reference refdomain.Service
	payees    payee.Resolver
	builder   lineitem.Builder
	pdf       pdf.Provider
	lgu       config.LGUConfig
	metrics   *metrics.Metrics
}

func NewService(p serviceParams) domain.Service {
	return &Service{
		log:       p.Log.Named("obligation.service"),
		db:        p.DB,
		genID:     p.GenID,
		repo:      p.Repo,
		clock:     p.Clock,
		numberer:  p.Numberer,
		reference: p.Reference,
		payees:    p.Payees,
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

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.ObligationRequest, error) {
	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		return nil, domain.ErrInvalidPurpose
	}

	fy, err := s.reference.ResolveFiscalYear(ctx, req.FiscalYearID)
	if err != nil {
		return nil, err
	}

	dept, err := s.reference.GetDepartment(ctx, req.DepartmentID)
	if errors.Is(err, refdomain.ErrNotFound) || errors.Is(err, refdomain.ErrInvalidID) {
		return nil, domain.ErrInvalidDepartment
	}
	if err != nil {
		return nil, err
	}

	resolved, err := s.payees.Resolve(ctx, req.Payee)
	if err != nil {
		return nil, err
	}

	preview, err := s.compute(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	record := &domain.ObligationRequest{
		ID:            s.genID.Generate(),
		FiscalYearID:  fy.ID,
		DepartmentID:  dept.ID,
		Payee:         datatypes.NewJSONType(payee.ToRef(resolved)),
		Purpose:       purpose,
		Status:        domain.StatusDraft,
		Items:         datatypes.JSONSlice[lineitem.Item](preview.Items),
		Totals:        preview.Totals,
		AmountInWords: preview.AmountInWords,
		Attachments:   datatypes.JSONSlice[domain.Attachment]{},
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := s.numberer.WithTrx(tx).Next(ctx, documentType, now, dept.Code)
		if err != nil {
			return err
		}
		record.Number = number
		return s.repo.WithTrx(tx).Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.recordItems(preview.Items)
	s.metrics.RecordDocumentCreated(documentType, record.Totals.Net.InexactFloat64())
	s.log.Info("obligation request created",
		zap.String("number", record.Number),
		zap.String("department", dept.Code),
		zap.String("net", record.Totals.Net.StringFixed(2)),
	)
	return record, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.ObligationRequest, error) {
	reqID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.FindByID(ctx, reqID)
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

	if strings.TrimSpace(req.DepartmentID) != "" {
		id, err := parseID(req.DepartmentID)
		if err != nil {
			return nil, err
		}
		filter.DepartmentID = id
	}
	if strings.TrimSpace(req.FiscalYearID) != "" {
		id, err := parseID(req.FiscalYearID)
		if err != nil {
			return nil, err
		}
		filter.FiscalYearID = id
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

	items, info := pagination.BuildCursorPageInfo(items, req.Limit(), func(r *domain.ObligationRequest) string {
		return r.ID.String()
	})
	return &domain.ListResponse{Items: items, PageInfo: info}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.ObligationRequest, error) {
	var purpose string
	if req.Purpose != nil {
		purpose = strings.TrimSpace(*req.Purpose)
		if purpose == "" {
			return nil, domain.ErrInvalidPurpose
		}
	}

	var ref *payee.Ref
	if req.Payee != nil {
		resolved, err := s.payees.Resolve(ctx, *req.Payee)
		if err != nil {
			return nil, err
		}
		r := payee.ToRef(resolved)
		ref = &r
	}

	var preview *domain.Preview
	if req.Items != nil {
		var err error
		if preview, err = s.compute(ctx, *req.Items); err != nil {
			return nil, err
		}
	}

	return s.mutate(ctx, req.ID, func(record *domain.ObligationRequest, now time.Time) error {
		if record.Status != domain.StatusDraft {
			return domain.ErrInvalidStatusTransition
		}
		if purpose != "" {
			record.Purpose = purpose
		}
		if ref != nil {
			record.Payee = datatypes.NewJSONType(*ref)
		}
		if preview != nil {
			record.Items = datatypes.JSONSlice[lineitem.Item](preview.Items)
			record.Totals = preview.Totals
			record.AmountInWords = preview.AmountInWords
		}
		return nil
	})
}

func (s *Service) Submit(ctx context.Context, id string) (*domain.ObligationRequest, error) {
	return s.transition(ctx, id, domain.StatusSubmitted, func(record *domain.ObligationRequest, now time.Time) {
		record.SubmittedAt = &now
	})
}

func (s *Service) Approve(ctx context.Context, id string) (*domain.ObligationRequest, error) {
	return s.transition(ctx, id, domain.StatusApproved, func(record *domain.ObligationRequest, now time.Time) {
		record.ApprovedAt = &now
	})
}

func (s *Service) Cancel(ctx context.Context, id string, reason string) (*domain.ObligationRequest, error) {
	return s.transition(ctx, id, domain.StatusCancelled, func(record *domain.ObligationRequest, now time.Time) {
		record.CancelledAt = &now
		record.CancelReason = strings.TrimSpace(reason)
	})
}

func (s *Service) AddAttachment(ctx context.Context, id string, req domain.AttachmentRequest) (*domain.ObligationRequest, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidAttachment
	}

	return s.mutate(ctx, id, func(record *domain.ObligationRequest, now time.Time) error {
		if record.Status == domain.StatusCancelled {
			return domain.ErrInvalidStatusTransition
		}
		record.Attachments = append(record.Attachments, domain.Attachment{
			Key:         ulid.Make().String(),
			Name:        name,
			ContentType: strings.TrimSpace(req.ContentType),
			URL:         strings.TrimSpace(req.URL),
			AddedAt:     now,
		})
		return nil
	})
}

func (s *Service) Preview(ctx context.Context, items []lineitem.ItemInput) (*domain.Preview, error) {
	preview, err := s.compute(ctx, items)
	if err != nil {
		return nil, err
	}
	s.recordItems(preview.Items)
	return preview, nil
}

func (s *Service) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data := pdf.ObligationData{
		Header:        pdf.Header{LGUName: s.lgu.Name, Province: s.lgu.Province},
		Number:        record.Number,
		Date:          record.CreatedAt.Format("2006-01-02"),
		Purpose:       record.Purpose,
		Lines:         pdf.LinesFromItems(record.Items),
		Summary:       pdf.SummaryFromTotals(record.Totals),
		AmountInWords: record.AmountInWords,
		Accountant:    s.lgu.Accountant,
	}

	ref := record.Payee.Data()
	data.PayeeName = ref.Name
	data.PayeeOffice = strings.TrimSpace(ref.Position + " " + ref.Department)
	data.PayeeAddress = ref.Address

	if dept, err := s.reference.GetDepartment(ctx, record.DepartmentID.String()); err == nil {
		data.Department = dept.Name
		data.RequestedBy = dept.Head
	}
	if fy, err := s.reference.ResolveFiscalYear(ctx, record.FiscalYearID.String()); err == nil {
		data.FiscalYear = strconv.Itoa(fy.Year)
	}

	r, err := s.pdf.GenerateObligation(ctx, data)
	s.metrics.RecordPDF(documentType, err)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func (s *Service) compute(ctx context.Context, inputs []lineitem.ItemInput) (*domain.Preview, error) {
	items, err := s.builder.BuildAll(ctx, inputs)
	if err != nil {
		return nil, err
	}
	totals := lineitem.SumItems(items)
	return &domain.Preview{
		Items:         items,
		Totals:        totals,
		AmountInWords: amountwords.FromDecimal(totals.Net),
	}, nil
}

func (s *Service) transition(ctx context.Context, id string, to domain.Status, apply func(*domain.ObligationRequest, time.Time)) (*domain.ObligationRequest, error) {
	var from domain.Status
	record, err := s.mutate(ctx, id, func(record *domain.ObligationRequest, now time.Time) error {
		if !domain.CanTransition(record.Status, to) {
			return domain.ErrInvalidStatusTransition
		}
		from = record.Status
		record.Status = to
		apply(record, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTransition(documentType, string(to))
	s.log.Info("obligation request status changed",
		zap.String("number", record.Number),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return record, nil
}

// mutate loads the request inside a transaction, applies fn and saves it.
func (s *Service) mutate(ctx context.Context, id string, fn func(*domain.ObligationRequest, time.Time) error) (*domain.ObligationRequest, error) {
	reqID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var out *domain.ObligationRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTrx(tx)
		record, err := repo.FindByIDForUpdate(ctx, reqID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}

		now := s.clock.Now().UTC()
		if err := fn(record, now); err != nil {
			return err
		}
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
	return out, nil
}

func (s *Service) recordItems(items []lineitem.Item) {
	for _, item := range items {
		s.metrics.RecordLineItem(item.Vatable, documentType)
	}
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

