package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/fmis/pkg/db/pagination"
	"gorm.io/gorm"
)

// Entry is what a caller reports; actor and client details come from the
// request context.
type Entry struct {
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
}

type ListAuditLogRequest struct {
	pagination.Pagination
	Action     string     `form:"action"`
	TargetType string     `form:"target_type"`
	TargetID   string     `form:"target_id"`
	ActorType  string     `form:"actor_type"`
	StartAt    *time.Time `form:"start_at" time_format:"2006-01-02T15:04:05Z07:00"`
	EndAt      *time.Time `form:"end_at" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ListAuditLogResponse struct {
	AuditLogs []*AuditLog         `json:"audit_logs"`
	PageInfo  pagination.PageInfo `json:"page_info"`
}

type Service interface {
	AuditLog(ctx context.Context, entry Entry) error
	List(ctx context.Context, req ListAuditLogRequest) (*ListAuditLogResponse, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditLog) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*AuditLog, error)
}

var (
	ErrInvalidTimeRange = errors.New("invalid_time_range")
	ErrInvalidAction    = errors.New("invalid_action")
)
