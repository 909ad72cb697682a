package communitytax

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/config"
	"github.com/smallbiznis/fmis/internal/docnumber"
	"github.com/smallbiznis/fmis/internal/observability/metrics"
	"github.com/smallbiznis/fmis/pkg/db/option"
	"github.com/smallbiznis/fmis/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Certificate is an issued community tax certificate.
type Certificate struct {
	ID                    snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Number                string          `json:"number" gorm:"type:text;not null;uniqueIndex"`
	Year                  int             `json:"year" gorm:"not null;index"`
	TaxpayerType          TaxpayerType    `json:"taxpayer_type" gorm:"type:text;not null"`
	TaxpayerName          string          `json:"taxpayer_name" gorm:"type:text;not null"`
	Address               string          `json:"address,omitempty" gorm:"type:text"`
	TIN                   string          `json:"tin,omitempty" gorm:"column:tin;type:text"`
	PlaceOfIssue          string          `json:"place_of_issue" gorm:"type:text;not null"`
	GrossReceipts         decimal.Decimal `json:"gross_receipts" gorm:"type:numeric(18,2);not null"`
	Salaries              decimal.Decimal `json:"salaries" gorm:"type:numeric(18,2);not null"`
	RealPropertyIncome    decimal.Decimal `json:"real_property_income" gorm:"type:numeric(18,2);not null"`
	PropertyAssessedValue decimal.Decimal `json:"property_assessed_value" gorm:"type:numeric(18,2);not null"`
	BasicTax              decimal.Decimal `json:"basic_tax" gorm:"type:numeric(18,2);not null"`
	AdditionalTax         decimal.Decimal `json:"additional_tax" gorm:"type:numeric(18,2);not null"`
	InterestRate          decimal.Decimal `json:"interest_rate" gorm:"type:numeric(5,2);not null"`
	Interest              decimal.Decimal `json:"interest" gorm:"type:numeric(18,2);not null"`
	AmountDue             decimal.Decimal `json:"amount_due" gorm:"type:numeric(18,2);not null"`
	AmountInWords         string          `json:"amount_in_words" gorm:"type:text;not null"`
	IssuedAt              time.Time       `json:"issued_at" gorm:"not null"`
	CreatedAt             time.Time       `json:"created_at" gorm:"not null"`
}

func (Certificate) TableName() string { return "community_tax_certificates" }

type IssueRequest struct {
	AssessInput
	TaxpayerName string `json:"taxpayer_name"`
	Address      string `json:"address"`
	TIN          string `json:"tin"`
}

type ListRequest struct {
	Year         int
	TaxpayerType TaxpayerType
	Page         pagination.Pagination
}

type ListResponse struct {
	Items    []*Certificate      `json:"items"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Repository interface {
	WithTrx(tx *gorm.DB) Repository
	Create(ctx context.Context, cert *Certificate) error
	FindByID(ctx context.Context, id snowflake.ID) (*Certificate, error)
	List(ctx context.Context, req ListRequest, beforeID snowflake.ID, limit int) ([]*Certificate, error)
}

type Service interface {
	Assess(ctx context.Context, in AssessInput) (*Assessment, error)
	Issue(ctx context.Context, req IssueRequest) (*Certificate, error)
	Get(ctx context.Context, id string) (*Certificate, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTrx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, cert *Certificate) error {
	return r.db.WithContext(ctx).Create(cert).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*Certificate, error) {
	var cert Certificate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *repository) List(ctx context.Context, req ListRequest, beforeID snowflake.ID, limit int) ([]*Certificate, error) {
	stmt := r.db.WithContext(ctx).Model(&Certificate{})
	if req.Year > 0 {
		stmt = stmt.Where("year = ?", req.Year)
	}
	if req.TaxpayerType != "" {
		stmt = stmt.Where("taxpayer_type = ?", req.TaxpayerType)
	}
	stmt = option.WithIDBefore(int64(beforeID)).Apply(stmt)
	stmt = option.WithLimit(limit).Apply(stmt.Order("id desc"))

	var items []*Certificate
	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

type serviceParams struct {
	fx.In

	Log      *zap.Logger
	DB       *gorm.DB
	GenID    *snowflake.Node
	Repo     Repository
	Clock    clock.Clock
	Numberer docnumber.Numberer
	Config   config.Config
	Metrics  *metrics.Metrics `optional:"true"`
}

type service struct {
	log      *zap.Logger
	db       *gorm.DB
	genID    *snowflake.Node
	repo     Repository
	clock    clock.Clock
	numberer docnumber.Numberer
	lgu      config.LGUConfig
	metrics  *metrics.Metrics
}

func NewService(p serviceParams) Service {
	return &service{
		log:      p.Log.Named("communitytax.service"),
		db:       p.DB,
		genID:    p.GenID,
		repo:     p.Repo,
		clock:    p.Clock,
		numberer: p.Numberer,
		lgu:      p.Config.LGU,
		metrics:  p.Metrics,
	}
}

func (s *service) Assess(ctx context.Context, in AssessInput) (*Assessment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	out := Assess(in, s.clock)
	return &out, nil
}

func (s *service) Issue(ctx context.Context, req IssueRequest) (*Certificate, error) {
	name := strings.TrimSpace(req.TaxpayerName)
	if name == "" {
		return nil, ErrInvalidTaxpayerName
	}
	if err := req.AssessInput.Validate(); err != nil {
		return nil, err
	}

	assessment := Assess(req.AssessInput, s.clock)
	issuedAt := assessment.AssessedAt

	cert := &Certificate{
		ID:                    s.genID.Generate(),
		Year:                  issuedAt.Year(),
		TaxpayerType:          assessment.TaxpayerType,
		TaxpayerName:          name,
		Address:               strings.TrimSpace(req.Address),
		TIN:                   strings.TrimSpace(req.TIN),
		PlaceOfIssue:          s.placeOfIssue(),
		GrossReceipts:         nonNegative(req.GrossReceipts),
		Salaries:              nonNegative(req.Salaries),
		RealPropertyIncome:    nonNegative(req.RealPropertyIncome),
		PropertyAssessedValue: nonNegative(req.PropertyAssessedValue),
		BasicTax:              assessment.BasicTax,
		AdditionalTax:         assessment.AdditionalTax,
		InterestRate:          assessment.InterestRate,
		Interest:              assessment.Interest,
		AmountDue:             assessment.AmountDue,
		AmountInWords:         assessment.AmountInWords,
		IssuedAt:              issuedAt.UTC(),
		CreatedAt:             s.clock.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := s.numberer.WithTrx(tx).Next(ctx, docnumber.TypeCommunityTax, issuedAt, "")
		if err != nil {
			return err
		}
		cert.Number = number
		return s.repo.WithTrx(tx).Create(ctx, cert)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCertificateIssued()
	s.log.Info("community tax certificate issued",
		zap.String("number", cert.Number),
		zap.String("taxpayer_type", string(cert.TaxpayerType)),
		zap.String("amount_due", cert.AmountDue.StringFixed(2)),
	)
	return cert, nil
}

func (s *service) Get(ctx context.Context, id string) (*Certificate, error) {
	certID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrInvalidID
	}
	cert, err := s.repo.FindByID(ctx, certID)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, ErrNotFound
	}
	return cert, nil
}

func (s *service) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	cursor, err := pagination.DecodeCursor(req.Page.PageToken)
	if err != nil {
		return nil, err
	}
	var before snowflake.ID
	if cursor != nil {
		if before, err = snowflake.ParseString(cursor.ID); err != nil {
			return nil, pagination.ErrInvalidPageToken
		}
	}

	req.TaxpayerType = TaxpayerType(strings.ToLower(strings.TrimSpace(string(req.TaxpayerType))))
	limit := req.Page.Limit()
	items, err := s.repo.List(ctx, req, before, limit+1)
	if err != nil {
		return nil, err
	}

	items, info := pagination.BuildCursorPageInfo(items, limit, func(c *Certificate) string { return c.ID.String() })
	return &ListResponse{Items: items, PageInfo: info}, nil
}

func (s *service) placeOfIssue() string {
	parts := make([]string, 0, 2)
	if name := strings.TrimSpace(s.lgu.Name); name != "" {
		parts = append(parts, name)
	}
	if province := strings.TrimSpace(s.lgu.Province); province != "" {
		parts = append(parts, province)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
