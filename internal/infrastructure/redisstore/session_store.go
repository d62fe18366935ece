package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/internal/domain/repository"
)

// SessionKey is the hash holding a user's current session.
func SessionKey(userID string) string {
	return "user:session:" + userID
}

type SessionStore struct {
	rdb redis.Cmdable
}

func NewSessionStore(rdb redis.Cmdable) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Save(ctx context.Context, sess entity.Session, ttl time.Duration) error {
	key := SessionKey(sess.UserID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sess.ID,
			"user_id":    sess.UserID,
			"email":      sess.Email,
			"name":       sess.Name,
			"avatar_url": sess.ProfileImageURL,
			"logged_in":  true,
			"created_at": sess.CreatedAt.UTC().Format(time.RFC3339Nano),
			"updated_at": sess.UpdatedAt.UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (s *SessionStore) Get(ctx context.Context, userID string) (*entity.Session, error) {
	data, err := s.rdb.HGetAll(ctx, SessionKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data["sid"] == "" {
		return nil, repository.ErrNotFound
	}
	sess := &entity.Session{
		ID:              data["sid"],
		UserID:          userID,
		Email:           data["email"],
		Name:            data["name"],
		ProfileImageURL: data["avatar_url"],
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, data["created_at"])
	sess.UpdatedAt, _ = time.Parse(time.RFC3339Nano, data["updated_at"])
	return sess, nil
}

// SyncProfile is a no-op for users without a live session.
func (s *SessionStore) SyncProfile(ctx context.Context, userID, name, imageURL string) error {
	key := SessionKey(userID)
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil || n == 0 {
		return err
	}
	return s.rdb.HSet(ctx, key, map[string]any{
		"name":       name,
		"avatar_url": imageURL,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}).Err()
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, SessionKey(userID)).Err()
}

var _ repository.SessionStore = (*SessionStore)(nil)
