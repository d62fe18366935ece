package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/internal/metrics"
)

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	c, cancel := s.bound(ctx)
	u, err := s.Users.GetByEmail(c, entity.NormalizeEmail(email))
	cancel()
	return s.checkCredentials(u, err, password)
}

// AuthenticateMembership is Authenticate keyed by membership ID.
func (s *Service) AuthenticateMembership(ctx context.Context, membershipID, password string) (*entity.User, error) {
	c, cancel := s.bound(ctx)
	u, err := s.Users.GetByMembershipID(c, membershipID)
	cancel()
	return s.checkCredentials(u, err, password)
}

// checkCredentials gives unknown users and wrong passwords the same error and
// roughly the same cost. Verification is checked only after the password.
func (s *Service) checkCredentials(u *entity.User, err error, password string) (*entity.User, error) {
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Hasher.Matches(password, s.dummy())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !s.Hasher.Matches(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, ErrNotVerified
	}
	return u, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash(uuid.NewString())
		if err != nil {
			s.log().WithError(err).Warn("dummy hash unavailable")
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	return s.finishLogin(ctx, "email", entity.NormalizeEmail(email), u, err)
}

func (s *Service) LoginWithMembershipID(ctx context.Context, membershipID, password string) (*entity.User, TokenPair, error) {
	u, err := s.AuthenticateMembership(ctx, membershipID, password)
	return s.finishLogin(ctx, "membership_id", membershipID, u, err)
}

func (s *Service) finishLogin(ctx context.Context, method, ident string, u *entity.User, err error) (*entity.User, TokenPair, error) {
	if err != nil {
		metrics.RecordLogin(method, loginResult(err))
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrNotVerified) {
			s.log().WithField("method", method).Debug("login rejected")
			s.audit(ctx, nil, "", "login_failed", map[string]any{"method": method, "identifier": ident})
		}
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		metrics.RecordLogin(method, "error")
		return nil, TokenPair{}, err
	}
	metrics.RecordLogin(method, "ok")
	s.audit(ctx, u, u.Email, "login", map[string]any{"method": method})
	return u, pair, nil
}

// IssueTokens generates access/refresh tokens and records the session.
func (s *Service) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.signPair(u.ID, sid)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		return TokenPair{}, err
	}
	if s.Sessions != nil {
		now := s.now()
		sess := entity.Session{
			ID:              sid,
			UserID:          u.ID,
			Email:           u.Email,
			Name:            u.Name,
			ProfileImageURL: u.ProfileImageURL,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		c, cancel := s.bound(ctx)
		defer cancel()
		if err := s.Sessions.Save(c, sess, s.Opts.SessionTTL); err != nil {
			return TokenPair{}, fmt.Errorf("save session: %w", err)
		}
	}
	return pair, nil
}

// Refresh rotates the session id and both tokens. It returns the user id.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	c, cancel := s.bound(ctx)
	u, err := s.Users.GetByID(c, claims.UserID)
	cancel()
	if err != nil {
		return TokenPair{}, "", lookupErr(err, ErrInvalidCredentials, "load user")
	}

	if s.Sessions != nil {
		c, cancel := s.bound(ctx)
		sess, err := s.Sessions.Get(c, u.ID)
		cancel()
		if err != nil || sess.ID != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
		sid := uuid.NewString()
		pair, err := s.signPair(u.ID, sid)
		if err != nil {
			return TokenPair{}, "", err
		}
		sess.ID = sid
		sess.UpdatedAt = s.now()
		c, cancel = s.bound(ctx)
		defer cancel()
		if err := s.Sessions.Save(c, *sess, s.Opts.SessionTTL); err != nil {
			return TokenPair{}, "", fmt.Errorf("save session: %w", err)
		}
		return pair, u.ID, nil
	}

	pair, err := s.signPair(u.ID, uuid.NewString())
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the session; tokens issued for it stop validating.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if s.Sessions != nil {
		c, cancel := s.bound(ctx)
		defer cancel()
		if err := s.Sessions.Delete(c, userID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	s.audit(ctx, &entity.User{ID: userID}, "", "logout", nil)
	return nil
}

func (s *Service) signPair(userID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrNotVerified):
		return "not_verified"
	}
	return "error"
}
