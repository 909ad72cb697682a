package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/fmis/internal/audit"
	"github.com/smallbiznis/fmis/internal/audit/domain"
	"github.com/smallbiznis/fmis/internal/observability/obscontext"
	"github.com/smallbiznis/fmis/internal/testutil"
	"github.com/smallbiznis/fmis/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func newService(t *testing.T) (domain.Service, *testutil.Env) {
	t.Helper()
	env := testutil.NewEnv(t, time.Date(2026, time.May, 4, 8, 30, 0, 0, time.UTC))

	var svc domain.Service
	app := fxtest.New(t,
		env.Options(),
		audit.Module,
		fx.Populate(&svc),
	)
	app.RequireStart()
	t.Cleanup(func() { app.RequireStop() })
	return svc, env
}

func TestAuditLogCapturesRequestContext(t *testing.T) {
	svc, _ := newService(t)

	ctx := obscontext.WithRequestID(context.Background(), "req-42")
	ctx = obscontext.WithClient(ctx, obscontext.Client{IPAddress: "10.0.0.7", UserAgent: "console/1.0"})
	ctx = obscontext.WithActor(ctx, "user", "mreyes")

	require.NoError(t, svc.AuditLog(ctx, domain.Entry{
		Action:     "disbursement_voucher.pay",
		TargetType: "disbursement_voucher",
		TargetID:   "1001",
		Metadata:   map[string]any{"check_number": "0001234567", "number": "DV-2026-05-0001"},
	}))

	resp, err := svc.List(context.Background(), domain.ListAuditLogRequest{})
	require.NoError(t, err)
	require.Len(t, resp.AuditLogs, 1)

	entry := resp.AuditLogs[0]
	assert.Equal(t, "user", entry.ActorType)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, "mreyes", *entry.ActorID)
	require.NotNil(t, entry.RequestID)
	assert.Equal(t, "req-42", *entry.RequestID)
	require.NotNil(t, entry.IPAddress)
	assert.Equal(t, "10.0.0.7", *entry.IPAddress)
	assert.Equal(t, "****4567", entry.Metadata["check_number"])
	assert.Equal(t, "DV-2026-05-0001", entry.Metadata["number"])
	assert.True(t, entry.CreatedAt.Equal(time.Date(2026, time.May, 4, 8, 30, 0, 0, time.UTC)))
}

func TestAuditLogDefaultsToSystemActor(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.AuditLog(ctx, domain.Entry{Action: "tax_code.create"}))
	assert.ErrorIs(t, svc.AuditLog(ctx, domain.Entry{Action: " "}), domain.ErrInvalidAction)

	resp, err := svc.List(ctx, domain.ListAuditLogRequest{})
	require.NoError(t, err)
	require.Len(t, resp.AuditLogs, 1)
	assert.Equal(t, "system", resp.AuditLogs[0].ActorType)
	assert.Equal(t, "unknown", resp.AuditLogs[0].TargetType)
	assert.Nil(t, resp.AuditLogs[0].ActorID)
}

func TestListFiltersAndPages(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, action := range []string{"obligation_request.create", "obligation_request.submit", "obligation_request.approve"} {
		require.NoError(t, svc.AuditLog(ctx, domain.Entry{Action: action, TargetType: "obligation_request", TargetID: "7"}))
	}
	require.NoError(t, svc.AuditLog(ctx, domain.Entry{Action: "tax_code.create", TargetType: "tax_code", TargetID: "9"}))

	resp, err := svc.List(ctx, domain.ListAuditLogRequest{TargetType: "obligation_request", TargetID: "7"})
	require.NoError(t, err)
	require.Len(t, resp.AuditLogs, 3)
	assert.Equal(t, "obligation_request.approve", resp.AuditLogs[0].Action)

	first, err := svc.List(ctx, domain.ListAuditLogRequest{Pagination: pagination.Pagination{PageSize: 2}})
	require.NoError(t, err)
	require.Len(t, first.AuditLogs, 2)
	require.True(t, first.PageInfo.HasMore)

	second, err := svc.List(ctx, domain.ListAuditLogRequest{Pagination: pagination.Pagination{PageSize: 2, PageToken: first.PageInfo.NextPageToken}})
	require.NoError(t, err)
	require.Len(t, second.AuditLogs, 2)
	assert.False(t, second.PageInfo.HasMore)
	assert.Equal(t, "obligation_request.create", second.AuditLogs[1].Action)

	start := time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC)
	_, err = svc.List(ctx, domain.ListAuditLogRequest{StartAt: &start, EndAt: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)

	_, err = svc.List(ctx, domain.ListAuditLogRequest{Pagination: pagination.Pagination{PageToken: "%%"}})
	assert.ErrorIs(t, err, pagination.ErrInvalidPageToken)
}
