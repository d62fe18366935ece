package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps a Mailgun client configured once at startup.
type Mailgun struct {
	Domain string
	Sender string

	client *mg.MailgunImpl
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, Sender: sender, client: mg.NewMailgun(domain, apiKey)}
}

// SetAPIBase points the client at another endpoint (EU region, tests).
func (m *Mailgun) SetAPIBase(url string) { m.client.SetAPIBase(url) }

// SendError is returned when Mailgun rejects a message. It keeps the HTTP
// status and response body so callers can surface them.
type SendError struct {
	Status int
	Body   string
	Err    error
}

func (e *SendError) Error() string {
	if e.Status <= 0 {
		return fmt.Sprintf("mailgun: %v", e.Err)
	}
	return fmt.Sprintf("mailgun: status %d: %v", e.Status, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

func (e *SendError) StatusCode() int      { return e.Status }
func (e *SendError) ResponseBody() string { return e.Body }

// Send renders the job if it references a template and delivers it.
func (m *Mailgun) Send(ctx context.Context, job EmailJob) error {
	job, err := Resolve(job)
	if err != nil {
		return err
	}
	msg := m.client.NewMessage(m.Sender, job.Subject, job.Text, job.To)
	if job.HTML != "" {
		msg.SetHtml(job.HTML)
	}
	for _, a := range job.Attachments {
		msg.AddBufferAttachment(a.Name, a.Content)
	}

	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, _, err := m.client.Send(c, msg); err != nil {
		se := &SendError{Status: mg.GetStatusFromErr(err), Err: err}
		var ure *mg.UnexpectedResponseError
		if errors.As(err, &ure) {
			se.Body = string(ure.Data)
		}
		return se
	}
	return nil
}
