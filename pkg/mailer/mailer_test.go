package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/alc-backend/pkg/mailer/templates"
)

func otpJob() EmailJob {
	d := templates.NewEmailData(templates.Brand{CompanyName: "Art Law Communion"}, templates.OTPVerification, "Ana", "ana@x.io",
		templates.WithCode("123456"))
	return EmailJob{To: "ana@x.io", Template: templates.OTPVerification, Data: templates.ToMap(d)}
}

func TestResolveRendersTemplate(t *testing.T) {
	job, err := Resolve(otpJob())
	require.NoError(t, err)
	assert.Contains(t, job.Subject, "123456")
	assert.Contains(t, job.Text, "Hello Ana")
	assert.Contains(t, job.HTML, "123456")
}

func TestResolveKeepsExplicitSubject(t *testing.T) {
	j := otpJob()
	j.Subject = "custom"
	job, err := Resolve(j)
	require.NoError(t, err)
	assert.Equal(t, "custom", job.Subject)
}

func TestResolveRejectsUnknownTemplateAndEmptyBody(t *testing.T) {
	_, err := Resolve(EmailJob{To: "a@b.c", Template: "nope"})
	assert.Error(t, err)

	_, err = Resolve(EmailJob{To: "a@b.c"})
	assert.Error(t, err)

	_, err = Resolve(EmailJob{To: "a@b.c", Text: "plain"})
	assert.NoError(t, err)
}

func TestMailgunSendSurfacesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Forbidden"))
	}))
	defer srv.Close()

	m := NewMailgun("mg.example.com", "key-test", "ALC <no-reply@example.com>")
	m.SetAPIBase(srv.URL)

	err := m.Send(context.Background(), otpJob())
	require.Error(t, err)

	var se *SendError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode())
	assert.Contains(t, se.ResponseBody(), "Forbidden")
}

type capturePublisher struct {
	topic string
	body  []byte
	attrs map[string]string
	err   error
}

func (p *capturePublisher) Publish(_ context.Context, topic string, body []byte, attrs map[string]string) (string, error) {
	p.topic, p.body, p.attrs = topic, body, attrs
	return "msg-1", p.err
}

func TestQueueSenderPublishesJob(t *testing.T) {
	pub := &capturePublisher{}
	q := NewQueueSender(pub, "emails")

	job := otpJob()
	job.Attachments = []Attachment{{Name: "a.txt", Content: []byte("hi")}}
	require.NoError(t, q.Send(context.Background(), job))
	assert.Equal(t, "emails", pub.topic)
	assert.Equal(t, templates.OTPVerification, pub.attrs["template"])

	var got EmailJob
	require.NoError(t, json.Unmarshal(pub.body, &got))
	assert.Equal(t, templates.OTPVerification, got.Template)
	assert.Equal(t, []byte("hi"), got.Attachments[0].Content)
}

func TestQueueSenderPropagatesPublishError(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	err := NewQueueSender(pub, "emails").Send(context.Background(), otpJob())
	assert.EqualError(t, err, "broker down")
}

func TestLogSenderSkipsDelivery(t *testing.T) {
	log, hook := test.NewNullLogger()
	require.NoError(t, LogSender{Log: log}.Send(context.Background(), otpJob()))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "ana@x.io", hook.LastEntry().Data["to"])
}
