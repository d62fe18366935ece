package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/internal/metrics"
	"github.com/oksasatya/alc-backend/pkg/mailer"
	"github.com/oksasatya/alc-backend/pkg/mailer/templates"
)

const (
	MsgOTPSent   = "OTP has been sent to your email for verification"
	MsgOTPResent = "New OTP has been sent to your email"
)

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Occupation string
}

// Register parks the sign-up in the pending store and mails a one-time code.
// The code itself is never returned. When the email cannot be sent the pending
// entry stays and a ProviderError tells the caller to ask for a resend.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := entity.NormalizeEmail(in.Email)
	if err := s.ensureEmailFree(ctx, email); err != nil {
		metrics.RecordRegistration(registrationResult(err))
		return "", err
	}
	if !IsPasswordValid(in.Password) {
		metrics.RecordRegistration("weak_password")
		return "", ErrWeakPassword
	}
	occ, err := parseOccupation(in.Occupation)
	if err != nil {
		metrics.RecordRegistration("invalid")
		return "", err
	}

	p := entity.PendingRegistration{
		Payload: entity.RegistrationPayload{
			Name:       strings.TrimSpace(in.Name),
			Email:      email,
			Password:   in.Password,
			Occupation: occ,
		},
	}
	if err := s.storeWithFreshCode(ctx, email, &p); err != nil {
		return "", err
	}
	if err := s.sendOTP(ctx, p); err != nil {
		metrics.RecordRegistration("email_failed")
		return "", err
	}
	metrics.RecordRegistration("pending")
	s.log().WithField("email", email).Info("registration pending verification")
	return MsgOTPSent, nil
}

// ResendOTP replaces the pending code, which invalidates the previous one.
func (s *Service) ResendOTP(ctx context.Context, rawEmail string) (string, error) {
	email := entity.NormalizeEmail(rawEmail)
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return "", err
	}

	c, cancel := s.bound(ctx)
	p, err := s.Pending.Get(c, email)
	cancel()
	if err != nil {
		return "", lookupErr(err, ErrNoPendingRegistration, "load pending registration")
	}
	if err := s.storeWithFreshCode(ctx, email, p); err != nil {
		return "", err
	}
	if err := s.sendOTP(ctx, *p); err != nil {
		return "", err
	}
	return MsgOTPResent, nil
}

// VerifyOTP turns a pending registration into a verified member. The entry is
// cleared on success, so repeating the call reports ErrNoPendingRegistration.
func (s *Service) VerifyOTP(ctx context.Context, rawEmail, code string) (*entity.User, error) {
	email := entity.NormalizeEmail(rawEmail)
	log := s.log().WithField("email", email)

	c, cancel := s.bound(ctx)
	err := s.Pending.ValidateCode(c, email, strings.TrimSpace(code))
	cancel()
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrNotFound):
		metrics.RecordVerification("no_pending")
		return nil, ErrNoPendingRegistration
	case errors.Is(err, repo.ErrCodeMismatch):
		metrics.RecordVerification("mismatch")
		return nil, ErrCodeMismatch
	default:
		return nil, fmt.Errorf("validate code: %w", err)
	}

	c, cancel = s.bound(ctx)
	p, err := s.Pending.Get(c, email)
	cancel()
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.RecordVerification("stale")
			log.WithError(ErrStaleState).Error("code matched but pending payload is missing")
			return nil, ErrStaleState
		}
		return nil, fmt.Errorf("load pending registration: %w", err)
	}

	hash, err := s.Hasher.Hash(p.Payload.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	c, cancel = s.bound(ctx)
	n, err := s.Sequences.Next(c, s.Opts.MembershipSequence)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("allocate membership id: %w", err)
	}

	now := s.now()
	u := &entity.User{
		ID:           uuid.NewString(),
		MembershipID: FormatMembershipID(s.Opts.MembershipPrefix, n),
		Email:        email,
		Password:     hash,
		Name:         p.Payload.Name,
		Occupation:   p.Payload.Occupation,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	c, cancel = s.bound(ctx)
	err = s.Users.Create(c, u)
	cancel()
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// A concurrent verify for the same email won; the number drawn here is skipped.
			log.WithField("membership_id", u.MembershipID).Warn("verify lost race on email; membership number unused")
			metrics.RecordVerification("duplicate")
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	c, cancel = s.bound(ctx)
	if err := s.Pending.Clear(c, email); err != nil {
		log.WithError(err).Warn("clear pending registration failed")
	}
	cancel()

	metrics.RecordVerification("verified")
	log.WithFields(logrus.Fields{"user_id": u.ID, "membership_id": u.MembershipID}).Info("member verified")

	data := templates.NewEmailData(s.Brand, templates.Welcome, u.Name, u.Email, templates.WithMembershipID(u.MembershipID))
	notify(ctx, s.Mail, s.Opts.CollaboratorTimeout, s.log(), mailer.EmailJob{
		To:       u.Email,
		Template: templates.Welcome,
		Data:     templates.ToMap(data),
	})
	s.indexUser(ctx, u)
	s.audit(ctx, u, u.Email, "register", map[string]any{"membership_id": u.MembershipID})
	return u, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	c, cancel := s.bound(ctx)
	defer cancel()
	exists, err := s.Users.ExistsByEmail(c, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ErrDuplicateEmail
	}
	return nil
}

func (s *Service) storeWithFreshCode(ctx context.Context, email string, p *entity.PendingRegistration) error {
	code, err := s.genCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	p.Code = code
	p.CreatedAt = s.now()

	c, cancel := s.bound(ctx)
	defer cancel()
	if err := s.Pending.Put(c, email, *p); err != nil {
		return fmt.Errorf("store pending registration: %w", err)
	}
	return nil
}

func (s *Service) sendOTP(ctx context.Context, p entity.PendingRegistration) error {
	data := templates.NewEmailData(s.Brand, templates.OTPVerification, p.Payload.Name, p.Payload.Email,
		templates.WithCode(p.Code),
		templates.WithExpiresIn(s.Opts.OTPTTL),
	)
	return deliver(ctx, s.Mail, s.Opts.CollaboratorTimeout, s.log(), mailer.EmailJob{
		To:       p.Payload.Email,
		Template: templates.OTPVerification,
		Data:     templates.ToMap(data),
	})
}

func registrationResult(err error) string {
	if errors.Is(err, ErrDuplicateEmail) {
		return "duplicate"
	}
	return "error"
}
