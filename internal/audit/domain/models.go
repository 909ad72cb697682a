package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type ActorType string

const (
	ActorTypeSystem ActorType = "system"
	ActorTypeUser   ActorType = "user"
)

// AuditLog records one change to a document or master record.
type AuditLog struct {
	ID         snowflake.ID      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ActorType  string            `json:"actor_type" gorm:"type:text;not null"`
	ActorID    *string           `json:"actor_id,omitempty" gorm:"type:text"`
	Action     string            `json:"action" gorm:"type:text;not null;index"`
	TargetType string            `json:"target_type" gorm:"type:text;not null;index:idx_audit_logs_target"`
	TargetID   *string           `json:"target_id,omitempty" gorm:"type:text;index:idx_audit_logs_target"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty"`
	IPAddress  *string           `json:"ip_address,omitempty" gorm:"type:text"`
	UserAgent  *string           `json:"user_agent,omitempty" gorm:"type:text"`
	RequestID  *string           `json:"request_id,omitempty" gorm:"type:text"`
	CreatedAt  time.Time         `json:"created_at" gorm:"not null;index"`
}

func (AuditLog) TableName() string { return "audit_logs" }

type ListFilter struct {
	Action     string
	TargetType string
	TargetID   string
	ActorType  string
	StartAt    *time.Time
	EndAt      *time.Time
	BeforeID   snowflake.ID
	Limit      int
}
