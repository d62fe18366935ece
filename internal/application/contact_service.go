package application

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/internal/metrics"
	"github.com/oksasatya/alc-backend/pkg/mailer"
	"github.com/oksasatya/alc-backend/pkg/mailer/templates"
)

const (
	StatusSubmissionReceived = "Thank you! We've received your submission and sent a confirmation email."
	StatusConfirmationFailed = "Thank you! We've received your submission. (Warning: confirmation email could not be sent)"
	StatusAdminNotifyFailed  = "Thank you! We've received your submission. (Admin notification failed)"
	StatusFeedbackReceived   = "Thank you for your feedback!"
)

type ContactRequest struct {
	Name    string
	Email   string
	Subject string
	Message string
	File    *FileUpload
}

type ContactResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	FileURL string `json:"file_url,omitempty"`
	Status  string `json:"status"`
}

// ContactService stores contact-form submissions and fans them out.
// Only persistence can fail the call; uploads, the sheet and emails degrade.
type ContactService struct {
	Contacts   repo.ContactRepository
	Files      FileStore
	Sheets     SheetAppender
	Mail       EmailSender
	Brand      templates.Brand
	AdminEmail string
	Logger     *logrus.Logger
	Timeout    time.Duration
	Now        func() time.Time
}

func (s *ContactService) log() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

func (s *ContactService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (*ContactResponse, error) {
	subject, ok := entity.ParseContactSubject(strings.ToUpper(strings.TrimSpace(req.Subject)))
	if !ok {
		return nil, ErrInvalidSubject
	}
	email := entity.NormalizeEmail(req.Email)
	log := s.log().WithFields(logrus.Fields{"email": email, "subject": subject})

	fileURL := s.upload(ctx, log, req.File)

	sub := &entity.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Subject:   subject,
		Message:   req.Message,
		FileURL:   fileURL,
		CreatedAt: s.now(),
	}
	c, cancel := bounded(ctx, s.Timeout)
	err := s.Contacts.Create(c, sub)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("save contact submission: %w", err)
	}
	metrics.RecordContactSubmission(string(subject))

	s.appendSheet(ctx, log, sub)

	resp := &ContactResponse{
		Name:    sub.Name,
		Email:   sub.Email,
		Subject: string(subject),
		Message: sub.Message,
		FileURL: fileURL,
	}
	switch subject {
	case entity.SubjectBlogSubmission, entity.SubjectCollaboration:
		resp.Status = s.sendContactEmails(ctx, sub)
	default:
		resp.Status = StatusFeedbackReceived
	}
	return resp, nil
}

func (s *ContactService) upload(ctx context.Context, log *logrus.Entry, f *FileUpload) string {
	if f == nil || len(f.Data) == 0 {
		return ""
	}
	if s.Files == nil {
		log.Warn("file store not configured; attachment dropped")
		return ""
	}
	key := newObjectKey("contact", s.now().Format("2006-01-02"), strings.ToLower(filepath.Ext(f.Filename)))
	c, cancel := bounded(ctx, s.Timeout)
	defer cancel()
	url, err := s.Files.Upload(c, key, f.Data, f.ContentType)
	if err != nil {
		metrics.RecordProviderFailure("file_store")
		log.WithError(err).Warn("contact file upload failed; continuing without file")
		return ""
	}
	return url
}

func (s *ContactService) appendSheet(ctx context.Context, log *logrus.Entry, sub *entity.ContactSubmission) {
	if s.Sheets == nil {
		return
	}
	row := []any{
		sub.CreatedAt.Format(time.RFC3339),
		sub.Name,
		sub.Email,
		string(sub.Subject),
		sub.Message,
		sub.FileURL,
	}
	c, cancel := bounded(ctx, s.Timeout)
	defer cancel()
	if err := s.Sheets.AppendRow(c, row); err != nil {
		metrics.RecordProviderFailure("sheets")
		log.WithError(err).Warn("sheet append failed")
	}
}

// sendContactEmails returns the status text; the first failure decides it.
func (s *ContactService) sendContactEmails(ctx context.Context, sub *entity.ContactSubmission) string {
	status := ""

	user := templates.NewEmailData(s.Brand, templates.ContactConfirmation, sub.Name, sub.Email,
		templates.WithSubject(string(sub.Subject)),
		templates.WithMessage(sub.Message),
		templates.WithFileURL(sub.FileURL),
	)
	if !notify(ctx, s.Mail, s.Timeout, s.log(), mailer.EmailJob{
		To:       sub.Email,
		Template: templates.ContactConfirmation,
		Data:     templates.ToMap(user),
	}) {
		status = StatusConfirmationFailed
	}

	if s.AdminEmail != "" {
		admin := templates.NewEmailData(s.Brand, templates.ContactAdmin, "Admin", s.AdminEmail,
			templates.WithSender(sub.Name, sub.Email),
			templates.WithSubject(string(sub.Subject)),
			templates.WithMessage(sub.Message),
			templates.WithFileURL(sub.FileURL),
		)
		if !notify(ctx, s.Mail, s.Timeout, s.log(), mailer.EmailJob{
			To:       s.AdminEmail,
			Template: templates.ContactAdmin,
			Data:     templates.ToMap(admin),
		}) && status == "" {
			status = StatusAdminNotifyFailed
		}
	}

	if status == "" {
		status = StatusSubmissionReceived
	}
	return status
}
