package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fmis/internal/audit/domain"
	"github.com/smallbiznis/fmis/internal/audit/masking"
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/observability/obscontext"
	"github.com/smallbiznis/fmis/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) AuditLog(ctx context.Context, entry domain.Entry) error {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return domain.ErrInvalidAction
	}

	targetType := strings.TrimSpace(entry.TargetType)
	if targetType == "" {
		targetType = "unknown"
	}

	actor := obscontext.ActorFromContext(ctx)
	actorType := actor.Type
	if actorType == "" {
		actorType = string(domain.ActorTypeSystem)
	}
	client := obscontext.ClientFromContext(ctx)

	record := domain.AuditLog{
		ID:         s.genID.Generate(),
		ActorType:  actorType,
		ActorID:    optional(actor.ID),
		Action:     action,
		TargetType: targetType,
		TargetID:   optional(entry.TargetID),
		IPAddress:  optional(client.IPAddress),
		UserAgent:  optional(client.UserAgent),
		RequestID:  optional(obscontext.RequestIDFromContext(ctx)),
		CreatedAt:  s.clock.Now().UTC(),
	}
	if metadata := masking.MaskSensitive(entry.Metadata); len(metadata) > 0 {
		record.Metadata = datatypes.JSONMap(metadata)
	}

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListAuditLogRequest) (*domain.ListAuditLogResponse, error) {
	if req.StartAt != nil && req.EndAt != nil && req.StartAt.After(*req.EndAt) {
		return nil, domain.ErrInvalidTimeRange
	}

	filter := domain.ListFilter{
		Action:     req.Action,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		ActorType:  req.ActorType,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Limit:      req.Limit() + 1,
	}

	cursor, err := pagination.DecodeCursor(req.PageToken)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		before, err := snowflake.ParseString(cursor.ID)
		if err != nil || before <= 0 {
			return nil, pagination.ErrInvalidPageToken
		}
		filter.BeforeID = before
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	items, info := pagination.BuildCursorPageInfo(items, req.Limit(), func(item *domain.AuditLog) string {
		return item.ID.String()
	})
	return &domain.ListAuditLogResponse{AuditLogs: items, PageInfo: info}, nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
