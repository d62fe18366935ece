package repository

import (
	"context"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
)

// AuditRepository stores authentication events.
type AuditRepository interface {
	Insert(ctx context.Context, e entity.AuditEntry) error
}
