package repository

import (
	"context"
	"time"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
)

// SessionStore keeps the current session per user.
type SessionStore interface {
	Save(ctx context.Context, s entity.Session, ttl time.Duration) error
	// Get returns ErrNotFound when the user has no live session.
	Get(ctx context.Context, userID string) (*entity.Session, error)
	// SyncProfile refreshes the cached display fields without touching the TTL.
	SyncProfile(ctx context.Context, userID, name, imageURL string) error
	Delete(ctx context.Context, userID string) error
}
