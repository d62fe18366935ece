package repository

import (
	"context"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
)

// PendingRegistrationStore keeps unconfirmed sign-ups keyed by normalized email.
// At most one entry exists per email; Put overwrites the previous entry and its code.
type PendingRegistrationStore interface {
	Put(ctx context.Context, email string, p entity.PendingRegistration) error
	// Get returns ErrNotFound when there is no live entry.
	Get(ctx context.Context, email string) (*entity.PendingRegistration, error)
	// ValidateCode returns nil, ErrCodeMismatch or ErrNotFound. It never mutates the entry.
	ValidateCode(ctx context.Context, email, code string) error
	// Clear removes the entry; clearing an absent entry is not an error.
	Clear(ctx context.Context, email string) error
}
