package application

import (
	"context"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/pkg/mailer"
)

// PasswordHasher is a one-way salted hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(plain, hash string) bool
}

// EmailSender delivers (or enqueues) a transactional email.
type EmailSender interface {
	Send(ctx context.Context, job mailer.EmailJob) error
}

// FileStore uploads a blob and returns its public URL.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// SheetAppender appends a single row to the configured spreadsheet.
type SheetAppender interface {
	AppendRow(ctx context.Context, values []any) error
}

// UserIndex keeps a searchable projection of members.
type UserIndex interface {
	IndexUser(ctx context.Context, u *entity.User) error
	SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error)
}

// ImageResizer shrinks an uploaded avatar. On error the caller uploads the original bytes.
type ImageResizer interface {
	Resize(data []byte, contentType string) ([]byte, error)
}
