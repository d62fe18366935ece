package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSender replaces real delivery when MAIL_SEND_ENABLED=false. The rendered
// subject is logged so local flows can be followed without an inbox.
type LogSender struct {
	Log *logrus.Logger
}

func (s LogSender) Send(_ context.Context, job EmailJob) error {
	job, err := Resolve(job)
	if err != nil {
		return err
	}
	s.Log.WithFields(logrus.Fields{
		"to":       job.To,
		"subject":  job.Subject,
		"template": job.Template,
	}).Info("email sending disabled; skipped delivery")
	return nil
}
