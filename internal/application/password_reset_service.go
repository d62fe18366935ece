package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/pkg/mailer"
	"github.com/oksasatya/alc-backend/pkg/mailer/templates"
)

// PasswordResetService issues one-hour reset links and consumes them.
type PasswordResetService struct {
	Users   repo.UserRepository
	Hasher  PasswordHasher
	Mail    EmailSender
	Brand   templates.Brand
	Logger  *logrus.Logger
	Timeout time.Duration

	ResetURL string
	TokenTTL time.Duration

	Now      func() time.Time
	NewToken func() string
}

func (s *PasswordResetService) log() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

func (s *PasswordResetService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *PasswordResetService) token() string {
	if s.NewToken != nil {
		return s.NewToken()
	}
	return uuid.NewString()
}

// RequestReset mails a reset link. Unknown emails and mail failures both
// succeed silently so the endpoint cannot reveal who is a member.
func (s *PasswordResetService) RequestReset(ctx context.Context, rawEmail string) error {
	email := entity.NormalizeEmail(rawEmail)
	c, cancel := bounded(ctx, s.Timeout)
	u, err := s.Users.GetByEmail(c, email)
	cancel()
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.log().WithField("email", email).Debug("reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("load user: %w", err)
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	exp := s.now().Add(ttl)
	u.ResetToken = s.token()
	u.ResetTokenExpiry = &exp
	u.UpdatedAt = s.now()

	c, cancel = bounded(ctx, s.Timeout)
	err = s.Users.Update(c, u)
	cancel()
	if err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	rm := RequestMetaFrom(ctx)
	data := templates.NewEmailData(s.Brand, templates.PasswordReset, u.Name, u.Email,
		templates.WithResetURL(resetLink(s.ResetURL, u.ResetToken)),
		templates.WithExpiresIn(ttl),
		templates.WithIP(rm.IP),
		templates.WithUserAgent(rm.UserAgent),
	)
	// A mail failure must look like the unknown-email case, so it is only logged.
	notify(ctx, s.Mail, s.Timeout, s.log(), mailer.EmailJob{
		To:       u.Email,
		Template: templates.PasswordReset,
		Data:     templates.ToMap(data),
	})
	return nil
}

// ResetPassword sets a new password for the holder of a live token and burns the token.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if !IsPasswordValid(newPassword) {
		return ErrWeakPassword
	}
	if token == "" {
		return ErrInvalidResetToken
	}

	c, cancel := bounded(ctx, s.Timeout)
	u, err := s.Users.GetByResetToken(c, token)
	cancel()
	if err != nil {
		return lookupErr(err, ErrInvalidResetToken, "load user by reset token")
	}
	if u.ResetTokenExpiry == nil || !s.now().Before(*u.ResetTokenExpiry) {
		return ErrResetTokenExpired
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = hash
	u.ResetToken = ""
	u.ResetTokenExpiry = nil
	u.UpdatedAt = s.now()

	c, cancel = bounded(ctx, s.Timeout)
	defer cancel()
	if err := s.Users.Update(c, u); err != nil {
		return fmt.Errorf("save password: %w", err)
	}
	s.log().WithField("user_id", u.ID).Info("password reset")
	return nil
}

func resetLink(base, token string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}
