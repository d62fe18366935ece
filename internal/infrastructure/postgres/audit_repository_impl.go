package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/internal/domain/repository"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, e entity.AuditEntry) error {
	meta := []byte("{}")
	if len(e.Metadata) > 0 {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return err
		}
		meta = b
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (user_id, email, action, ip, user_agent, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, nullString(e.UserID), nullString(e.Email), e.Action, e.IP, e.UserAgent, string(meta), e.CreatedAt)
	return err
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
