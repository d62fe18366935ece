package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/internal/infrastructure/mq"
	"github.com/oksasatya/alc-backend/pkg/mailer"
)

type sender interface {
	Send(ctx context.Context, job mailer.EmailJob) error
}

// worker turns queued email jobs into provider sends. Malformed or
// unrenderable jobs are dropped; send failures are redelivered.
type worker struct {
	Sender  sender
	Log     *logrus.Logger
	Timeout time.Duration
}

func (w *worker) Handle(ctx context.Context, msg mq.Message) error {
	log := w.Log.WithField("message_id", msg.ID)

	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		log.WithError(err).Error("bad message")
		return fmt.Errorf("%w: %v", mq.ErrDrop, err)
	}
	log = log.WithFields(logrus.Fields{"to": job.To, "template": job.Template})
	if _, err := mailer.Resolve(job); err != nil {
		log.WithError(err).Error("render failed")
		return fmt.Errorf("%w: %v", mq.ErrDrop, err)
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := w.Sender.Send(c, job); err != nil {
		log.WithError(err).Warn("send failed, will retry")
		return err
	}
	log.Info("email sent")
	return nil
}
