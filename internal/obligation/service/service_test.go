package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/fmis/internal/lineitem"
	"github.com/smallbiznis/fmis/internal/obligation"
	"github.com/smallbiznis/fmis/internal/obligation/domain"
	"github.com/smallbiznis/fmis/internal/payee"
	refdomain "github.com/smallbiznis/fmis/internal/reference/domain"
	"github.com/smallbiznis/fmis/internal/testutil"
	"github.com/smallbiznis/fmis/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"gorm.io/gorm"
)

type fixture struct {
	env  *testutil.Env
	svc  domain.Service
	ref  refdomain.Service
	dept *refdomain.Department
	fy   *refdomain.FiscalYear
}

func newFixture(t *testing.T, opts ...fx.Option) *fixture {
	t.Helper()
	env := testutil.NewEnv(t, time.Date(2026, time.March, 12, 8, 30, 0, 0, time.UTC))

	f := &fixture{env: env}
	app := fxtest.New(t,
		env.Options(),
		obligation.Module,
		fx.Options(opts...),
		fx.Populate(&f.svc, &f.ref),
	)
	app.RequireStart()
	t.Cleanup(func() { app.RequireStop() })

	ctx := context.Background()
	var err error
	f.dept, err = f.ref.CreateDepartment(ctx, refdomain.CreateDepartmentRequest{Code: "MEO", Name: "Municipal Engineering Office", Head: "Engr. Luis Garcia"})
	require.NoError(t, err)
	f.fy, err = f.ref.CreateFiscalYear(ctx, refdomain.CreateFiscalYearRequest{Year: 2026, Open: true})
	require.NoError(t, err)
	return f
}

func supplyItems() []lineitem.ItemInput {
	return []lineitem.ItemInput{{
		Description: "Bond paper, long",
		AccountCode: "5-02-03-010",
		Price:       "1000",
		Quantity:    2,
		Vatable:     true,
		TaxCode:     "WV010",
		EWTCode:     "WI158",
	}}
}

func (f *fixture) create(t *testing.T) *domain.ObligationRequest {
	t.Helper()
	record, err := f.svc.Create(context.Background(), domain.CreateRequest{
		DepartmentID: f.dept.ID.String(),
		Payee:        payee.Ref{Kind: payee.KindIndividual, Name: "Pedro Penduko", Address: "Poblacion"},
		Purpose:      "Office supplies for Q1",
		Items:        supplyItems(),
	})
	require.NoError(t, err)
	return record
}

func TestCreateComputesTotalsAndNumber(t *testing.T) {
	f := newFixture(t)
	record := f.create(t)

	assert.Equal(t, "OBR-2026-03-0001", record.Number)
	assert.Equal(t, domain.StatusDraft, record.Status)
	assert.Equal(t, f.fy.ID, record.FiscalYearID)
	assert.Equal(t, f.dept.ID, record.DepartmentID)

	require.Len(t, record.Items, 1)
	item := record.Items[0]
	assert.Equal(t, "214.29", item.Amounts.VAT.StringFixed(2))
	assert.Equal(t, "-89.29", item.Amounts.Withheld.StringFixed(2))
	assert.Equal(t, "-17.86", item.Amounts.EWT.StringFixed(2))
	assert.Equal(t, "1892.85", item.Amounts.Subtotal.StringFixed(2))

	assert.Equal(t, "1892.85", record.Totals.Net.StringFixed(2))
	assert.Equal(t, "ONE THOUSAND EIGHT HUNDRED NINETY-TWO PESOS AND 85/100", record.AmountInWords)

	got, err := f.svc.Get(context.Background(), record.ID.String())
	require.NoError(t, err)
	assert.Equal(t, record.Number, got.Number)
	assert.Equal(t, "1892.85", got.Totals.Net.StringFixed(2))
	assert.Equal(t, "Pedro Penduko", got.Payee.Data().Name)

	second := f.create(t)
	assert.Equal(t, "OBR-2026-03-0002", second.Number)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := domain.CreateRequest{
		DepartmentID: f.dept.ID.String(),
		Payee:        payee.Ref{Kind: payee.KindIndividual, Name: "Pedro Penduko"},
		Purpose:      "Supplies",
		Items:        supplyItems(),
	}

	req := base
	req.Purpose = "  "
	_, err := f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidPurpose)

	req = base
	req.DepartmentID = "42"
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidDepartment)

	req = base
	req.Payee = payee.Ref{Kind: "contractor", Name: "X"}
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, payee.ErrInvalidKind)

	req = base
	req.Items = nil
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, lineitem.ErrInvalidItems)

	req = base
	req.Items = []lineitem.ItemInput{{Description: "Nothing", Price: 10, Quantity: 0}}
	_, err = f.svc.Create(ctx, req)
	var itemErr *lineitem.ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, "quantity", itemErr.Field)
}

func TestStatusFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.create(t)
	id := record.ID.String()

	_, err := f.svc.Approve(ctx, id)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	f.env.Clock.Advance(time.Hour)
	submitted, err := f.svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	_, err = f.svc.Update(ctx, domain.UpdateRequest{ID: id, Purpose: ptr("Changed")})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	approved, err := f.svc.Approve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	cancelled, err := f.svc.Cancel(ctx, id, " duplicate request ")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, "duplicate request", cancelled.CancelReason)

	_, err = f.svc.Submit(ctx, id)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	_, err = f.svc.Submit(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Submit(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdateDraftRecomputes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.create(t)

	items := []lineitem.ItemInput{{Description: "Printer ink", Price: 500, Quantity: 1, EWTRate: 2}}
	updated, err := f.svc.Update(ctx, domain.UpdateRequest{
		ID:      record.ID.String(),
		Purpose: ptr("Printer supplies"),
		Items:   &items,
	})
	require.NoError(t, err)
	assert.Equal(t, "Printer supplies", updated.Purpose)
	assert.Equal(t, record.Number, updated.Number)
	// VAT on a non-vatable line stays out of the base, EWT is 2% of 500.
	assert.Equal(t, "490.00", updated.Totals.Net.StringFixed(2))
	assert.Equal(t, "FOUR HUNDRED NINETY PESOS", updated.AmountInWords)

	_, err = f.svc.Update(ctx, domain.UpdateRequest{ID: record.ID.String(), Purpose: ptr(" ")})
	assert.ErrorIs(t, err, domain.ErrInvalidPurpose)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	preview, err := f.svc.Preview(ctx, supplyItems())
	require.NoError(t, err)
	assert.Equal(t, "1892.85", preview.Totals.Net.StringFixed(2))
	assert.Equal(t, 1, preview.Totals.ItemCount)

	list, err := f.svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestAddAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.create(t)

	updated, err := f.svc.AddAttachment(ctx, record.ID.String(), domain.AttachmentRequest{
		Name:        "purchase-request.pdf",
		ContentType: "application/pdf",
		URL:         "https://files.example.org/pr-001.pdf",
	})
	require.NoError(t, err)
	require.Len(t, updated.Attachments, 1)
	assert.NotEmpty(t, updated.Attachments[0].Key)
	assert.Equal(t, "purchase-request.pdf", updated.Attachments[0].Name)

	_, err = f.svc.AddAttachment(ctx, record.ID.String(), domain.AttachmentRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidAttachment)
}

func TestListFiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, f.create(t).ID.String())
	}
	_, err := f.svc.Submit(ctx, ids[0])
	require.NoError(t, err)

	page, err := f.svc.List(ctx, domain.ListRequest{Pagination: pagination.Pagination{PageSize: 2}})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.PageInfo.HasMore)
	assert.Equal(t, ids[2], page.Items[0].ID.String())

	next, err := f.svc.List(ctx, domain.ListRequest{Pagination: pagination.Pagination{PageSize: 2, PageToken: page.PageInfo.NextPageToken}})
	require.NoError(t, err)
	require.Len(t, next.Items, 1)
	assert.False(t, next.PageInfo.HasMore)
	assert.Equal(t, ids[0], next.Items[0].ID.String())

	submitted, err := f.svc.List(ctx, domain.ListRequest{Status: "SUBMITTED"})
	require.NoError(t, err)
	require.Len(t, submitted.Items, 1)
	assert.Equal(t, ids[0], submitted.Items[0].ID.String())

	byDept, err := f.svc.List(ctx, domain.ListRequest{DepartmentID: f.dept.ID.String()})
	require.NoError(t, err)
	assert.Len(t, byDept.Items, 3)

	_, err = f.svc.List(ctx, domain.ListRequest{Pagination: pagination.Pagination{PageToken: "%%%"}})
	assert.ErrorIs(t, err, pagination.ErrInvalidPageToken)
}

func TestRenderPDF(t *testing.T) {
	f := newFixture(t)
	record := f.create(t)

	body, err := f.svc.RenderPDF(context.Background(), record.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(body[:4]))
}

func ptr[T any](v T) *T { return &v }

type flakyDepartments struct {
	refdomain.Service
	err error
}

func (f flakyDepartments) GetDepartment(ctx context.Context, id string) (*refdomain.Department, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.Service.GetDepartment(ctx, id)
}

func TestCreateKeepsDepartmentLookupFailures(t *testing.T) {
	lookupErr := errors.New("connection reset by peer")
	departments := &flakyDepartments{}
	f := newFixture(t, fx.Decorate(func(s refdomain.Service) refdomain.Service {
		departments.Service = s
		return departments
	}))
	req := domain.CreateRequest{
		DepartmentID: f.dept.ID.String(),
		Payee:        payee.Ref{Kind: payee.KindIndividual, Name: "Pedro Penduko"},
		Purpose:      "Supplies",
		Items:        supplyItems(),
	}

	departments.err = lookupErr
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, lookupErr)
	assert.NotErrorIs(t, err, domain.ErrInvalidDepartment)

	departments.err = nil
	req.DepartmentID = "not-an-id"
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDepartment)
}

func TestFailedInsertDoesNotConsumeNumber(t *testing.T) {
	f := newFixture(t)
	insertErr := errors.New("disk full")
	fail := true
	require.NoError(t, f.env.DB.Callback().Create().Before("gorm:create").
		Register("test:fail_obligation_insert", func(tx *gorm.DB) {
			if fail && tx.Statement.Table == "obligation_requests" {
				_ = tx.AddError(insertErr)
			}
		}))

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		DepartmentID: f.dept.ID.String(),
		Payee:        payee.Ref{Kind: payee.KindIndividual, Name: "Pedro Penduko"},
		Purpose:      "Office supplies for Q1",
		Items:        supplyItems(),
	})
	require.ErrorIs(t, err, insertErr)

	fail = false
	record := f.create(t)
	assert.Equal(t, "OBR-2026-03-0001", record.Number)
}
