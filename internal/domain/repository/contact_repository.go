package repository

import (
	"context"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
)

type ContactRepository interface {
	Create(ctx context.Context, c *entity.ContactSubmission) error
}
