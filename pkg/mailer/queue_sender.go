package mailer

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher is satisfied by the message-queue backends.
type Publisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// QueueSender hands email jobs to the email worker instead of calling
// Mailgun from the request path.
type QueueSender struct {
	pub   Publisher
	topic string
}

func NewQueueSender(pub Publisher, topic string) *QueueSender {
	return &QueueSender{pub: pub, topic: topic}
}

// Send validates the template up front so a broken job fails the caller
// rather than the worker.
func (q *QueueSender) Send(ctx context.Context, job EmailJob) error {
	if _, err := Resolve(job); err != nil {
		return err
	}
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}
	_, err = q.pub.Publish(ctx, q.topic, body, map[string]string{"template": job.Template})
	return err
}
