// Package redisstore keeps short-lived state in Redis: pending
// registrations awaiting their code and the current session per user.
package redisstore

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/pkg/helpers"
)

const pendingPrefix = "registration:pending:"

// PendingStore stores one JSON entry per normalized email with a TTL.
// An expired entry is simply gone, so it reads as ErrNotFound.
type PendingStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// DefaultPendingTTL applies when NewPendingStore gets a non-positive ttl,
// since a zero TTL would keep entries forever.
const DefaultPendingTTL = 10 * time.Minute

func NewPendingStore(rdb redis.Cmdable, ttl time.Duration) *PendingStore {
	if ttl <= 0 {
		ttl = DefaultPendingTTL
	}
	return &PendingStore{rdb: rdb, ttl: ttl}
}

func pendingKey(email string) string {
	return pendingPrefix + entity.NormalizeEmail(email)
}

func (s *PendingStore) Put(ctx context.Context, email string, p entity.PendingRegistration) error {
	return helpers.RedisSetJSON(ctx, s.rdb, pendingKey(email), p, s.ttl)
}

func (s *PendingStore) Get(ctx context.Context, email string) (*entity.PendingRegistration, error) {
	var p entity.PendingRegistration
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, pendingKey(email), &p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *PendingStore) ValidateCode(ctx context.Context, email, code string) error {
	p, err := s.Get(ctx, email)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(p.Code), []byte(code)) != 1 {
		return repository.ErrCodeMismatch
	}
	return nil
}

func (s *PendingStore) Clear(ctx context.Context, email string) error {
	return helpers.RedisDel(ctx, s.rdb, pendingKey(email))
}

var _ repository.PendingRegistrationStore = (*PendingStore)(nil)
