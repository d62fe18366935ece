package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/internal/domain/repository"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, membership_id, email, password, name, occupation, profile_image_url,
		is_verified, reset_token, reset_token_expiry, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, membership_id, email, password, name, occupation, profile_image_url,
			is_verified, reset_token, reset_token_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, u.ID, u.MembershipID, u.Email, u.Password, u.Name, string(u.Occupation), u.ProfileImageURL,
		u.IsVerified, nullString(u.ResetToken), u.ResetTokenExpiry, u.CreatedAt, u.UpdatedAt)
	return mapErr(err)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = $1, password = $2, name = $3, occupation = $4, profile_image_url = $5,
			is_verified = $6, reset_token = $7, reset_token_expiry = $8, updated_at = $9
		WHERE id = $10
	`, u.Email, u.Password, u.Name, string(u.Occupation), u.ProfileImageURL,
		u.IsVerified, nullString(u.ResetToken), u.ResetTokenExpiry, u.UpdatedAt, u.ID)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetByMembershipID(ctx context.Context, membershipID string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE membership_id = $1`, membershipID)
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE reset_token = $1`, token)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var (
		u          entity.User
		occupation string
		resetToken sql.NullString
		resetExp   sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.MembershipID, &u.Email, &u.Password, &u.Name, &occupation, &u.ProfileImageURL,
		&u.IsVerified, &resetToken, &resetExp, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	u.Occupation = entity.Occupation(occupation)
	u.ResetToken = resetToken.String
	if resetExp.Valid {
		t := resetExp.Time
		u.ResetTokenExpiry = &t
	}
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ repository.UserRepository = (*UserRepository)(nil)
