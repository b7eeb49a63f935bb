package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Service records audit entries. Recording failures are logged by callers but
// never fail the business operation.
type Service interface {
	AuditLog(ctx context.Context, action, targetType string, targetID *string, metadata map[string]any) error
	List(ctx context.Context, filter ListFilter) ([]*AuditLog, error)
}

type ListFilter struct {
	Action     string
	TargetType string
	StartAt    *time.Time
	EndAt      *time.Time
	Limit      int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditLog) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*AuditLog, error)
}

var (
	ErrInvalidAction     = errors.New("invalid_audit_action")
	ErrInvalidTargetType = errors.New("invalid_audit_target_type")
)
