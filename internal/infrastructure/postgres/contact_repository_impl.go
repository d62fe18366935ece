package postgres

import (
	"context"
	"database/sql"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/internal/domain/repository"
)

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.ContactSubmission) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (id, name, email, subject, message, file_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.Name, c.Email, string(c.Subject), c.Message, nullString(c.FileURL), c.CreatedAt)
	return mapErr(err)
}

var _ repository.ContactRepository = (*ContactRepository)(nil)
