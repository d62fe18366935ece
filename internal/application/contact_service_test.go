package application

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/pkg/mailer/templates"
)

type fakeContacts struct {
	saved []*entity.ContactSubmission
	err   error
}

func (f *fakeContacts) Create(_ context.Context, c *entity.ContactSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, c)
	return nil
}

type contactFixture struct {
	svc      *ContactService
	contacts *fakeContacts
	files    *fakeFiles
	sheets   *fakeSheets
	mail     *fakeMail
}

func newContactFixture() *contactFixture {
	log, _ := test.NewNullLogger()
	f := &contactFixture{
		contacts: &fakeContacts{},
		files:    &fakeFiles{},
		sheets:   &fakeSheets{},
		mail:     &fakeMail{failFor: map[string]error{}},
	}
	f.svc = &ContactService{
		Contacts:   f.contacts,
		Files:      f.files,
		Sheets:     f.sheets,
		Mail:       f.mail,
		AdminEmail: "admin@alc.org",
		Logger:     log,
	}
	return f
}

func blogRequest() ContactRequest {
	return ContactRequest{
		Name:    "Ana",
		Email:   "ana@x.io",
		Subject: "BLOG_SUBMISSION",
		Message: "draft attached",
		File:    &FileUpload{Filename: "draft.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	}
}

func TestContactBlogSubmission(t *testing.T) {
	f := newContactFixture()
	resp, err := f.svc.Submit(ctx, blogRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusSubmissionReceived, resp.Status)
	assert.NotEmpty(t, resp.FileURL)
	require.Len(t, f.contacts.saved, 1)
	assert.Equal(t, resp.FileURL, f.contacts.saved[0].FileURL)
	require.Len(t, f.sheets.rows, 1)
	assert.Len(t, f.sheets.rows[0], 6)
	assert.Equal(t, []string{templates.ContactConfirmation, templates.ContactAdmin}, f.mail.templates())
}

func TestContactDegradesOnProviderFailures(t *testing.T) {
	f := newContactFixture()
	f.files.err = errors.New("upload broke")
	f.sheets.err = errors.New("quota")

	resp, err := f.svc.Submit(ctx, blogRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.FileURL)
	require.Len(t, f.contacts.saved, 1)
	assert.Empty(t, f.contacts.saved[0].FileURL)

	f.mail.failFor[templates.ContactConfirmation] = errors.New("x")
	resp, err = f.svc.Submit(ctx, blogRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmationFailed, resp.Status)

	f.mail.failFor = map[string]error{templates.ContactAdmin: errors.New("x")}
	resp, err = f.svc.Submit(ctx, blogRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusAdminNotifyFailed, resp.Status)
}

func TestContactRemarksSendsNoEmail(t *testing.T) {
	f := newContactFixture()
	resp, err := f.svc.Submit(ctx, ContactRequest{Name: "Bo", Email: "bo@x.io", Subject: "remarks", Message: "nice"})
	require.NoError(t, err)
	assert.Equal(t, StatusFeedbackReceived, resp.Status)
	assert.Equal(t, "REMARKS", resp.Subject)
	assert.Empty(t, f.mail.templates())
}

func TestContactValidationAndPersistenceFailure(t *testing.T) {
	f := newContactFixture()
	_, err := f.svc.Submit(ctx, ContactRequest{Subject: "SPAM"})
	assert.ErrorIs(t, err, ErrInvalidSubject)

	f.contacts.err = errors.New("db down")
	_, err = f.svc.Submit(ctx, blogRequest())
	assert.Error(t, err)
	assert.Empty(t, f.sheets.rows)
}
