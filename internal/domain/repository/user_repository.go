package repository

import (
	"context"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Email and MembershipID are both unique; lookups return ErrNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByMembershipID(ctx context.Context, membershipID string) (*entity.User, error)
	GetByResetToken(ctx context.Context, token string) (*entity.User, error)
}
