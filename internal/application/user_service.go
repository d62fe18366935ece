package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/internal/metrics"
	"github.com/oksasatya/alc-backend/pkg/helpers"
	"github.com/oksasatya/alc-backend/pkg/mailer"
	"github.com/oksasatya/alc-backend/pkg/mailer/templates"
)

// Options are the tunables of the membership workflow.
type Options struct {
	OTPTTL              time.Duration
	MembershipPrefix    string
	MembershipSequence  string
	CollaboratorTimeout time.Duration
	SessionTTL          time.Duration
}

// DefaultOptions matches the config defaults.
func DefaultOptions() Options {
	return Options{
		OTPTTL:              10 * time.Minute,
		MembershipPrefix:    "ALCWB",
		MembershipSequence:  "user_sequence",
		CollaboratorTimeout: 10 * time.Second,
		SessionTTL:          24 * time.Hour,
	}
}

// Service runs registration, login and profile flows for members.
// Index, Resizer, Sessions and Audit are optional.
type Service struct {
	Users     repo.UserRepository
	Pending   repo.PendingRegistrationStore
	Sequences repo.SequenceAllocator
	Sessions  repo.SessionStore
	Audit     repo.AuditRepository

	Hasher  PasswordHasher
	Mail    EmailSender
	Files   FileStore
	Index   UserIndex
	Resizer ImageResizer

	JWT    *helpers.JWTManager
	Brand  templates.Brand
	Logger *logrus.Logger
	Opts   Options

	// GenerateCode and Now are replaceable in tests.
	GenerateCode func() (string, error)
	Now          func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func (s *Service) log() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) genCode() (string, error) {
	if s.GenerateCode != nil {
		return s.GenerateCode()
	}
	return helpers.GenOTPCode()
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return bounded(ctx, s.Opts.CollaboratorTimeout)
}

// bounded caps a collaborator call. A zero timeout only adds cancellation.
func bounded(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// FormatMembershipID renders e.g. ALCWB0001. Numbers past 9999 keep all digits.
func FormatMembershipID(prefix string, n int64) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}

func parseOccupation(raw string) (entity.Occupation, error) {
	if strings.TrimSpace(raw) == "" {
		return entity.OccupationOther, nil
	}
	o, ok := entity.ParseOccupation(raw)
	if !ok {
		return "", ErrInvalidOccupation
	}
	return o, nil
}

// deliver sends an email whose failure the caller must see.
func deliver(ctx context.Context, mail EmailSender, timeout time.Duration, log *logrus.Logger, job mailer.EmailJob) error {
	c, cancel := bounded(ctx, timeout)
	defer cancel()
	if err := mail.Send(c, job); err != nil {
		pe := newProviderError("email", err)
		metrics.RecordProviderFailure(pe.Provider)
		log.WithError(err).WithFields(logrus.Fields{
			"provider": pe.Provider,
			"status":   pe.StatusCode,
			"body":     pe.Body,
			"template": job.Template,
			"to":       job.To,
		}).Error("email delivery failed")
		return pe
	}
	return nil
}

// notify sends an email that is not allowed to fail the operation.
func notify(ctx context.Context, mail EmailSender, timeout time.Duration, log *logrus.Logger, job mailer.EmailJob) bool {
	c, cancel := bounded(ctx, timeout)
	defer cancel()
	if err := mail.Send(c, job); err != nil {
		pe := newProviderError("email", err)
		metrics.RecordProviderFailure(pe.Provider)
		log.WithError(err).WithFields(logrus.Fields{
			"status":   pe.StatusCode,
			"template": job.Template,
			"to":       job.To,
		}).Warn("notification email failed")
		return false
	}
	return true
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) {
	if s.Index == nil {
		return
	}
	c, cancel := s.bound(ctx)
	defer cancel()
	if err := s.Index.IndexUser(c, u); err != nil {
		metrics.RecordProviderFailure("search")
		s.log().WithError(err).WithField("user_id", u.ID).Warn("search index failed")
	}
}

func (s *Service) audit(ctx context.Context, u *entity.User, email, action string, meta map[string]any) {
	if s.Audit == nil {
		return
	}
	rm := RequestMetaFrom(ctx)
	e := entity.AuditEntry{
		Email:     email,
		Action:    action,
		IP:        rm.IP,
		UserAgent: rm.UserAgent,
		Metadata:  meta,
		CreatedAt: s.now(),
	}
	if u != nil {
		e.UserID = u.ID
		e.Email = u.Email
	}
	c, cancel := s.bound(ctx)
	defer cancel()
	if err := s.Audit.Insert(c, e); err != nil {
		s.log().WithError(err).WithField("action", action).Warn("audit insert failed")
	}
}

// lookupErr maps a repository miss to want and wraps anything else.
func lookupErr(err error, want error, what string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return want
	}
	return fmt.Errorf("%s: %w", what, err)
}

func newObjectKey(prefix, id, ext string) string {
	return prefix + "/" + id + "/" + uuid.NewString() + ext
}
