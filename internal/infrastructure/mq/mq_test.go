package mq

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	queues map[string][]Message
	closed bool
}

func (m *memBackend) Publish(_ context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if m.queues == nil {
		m.queues = map[string][]Message{}
	}
	id := channel + "-" + string(rune('0'+len(m.queues[channel])))
	m.queues[channel] = append(m.queues[channel], Message{ID: id, Data: data, Attributes: attrs})
	return id, nil
}

func (m *memBackend) Subscribe(ctx context.Context, channel string, handler Handler) error {
	for _, msg := range m.queues[channel] {
		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (m *memBackend) Close() error {
	m.closed = true
	return nil
}

func TestMQ_DelegatesToBackend(t *testing.T) {
	be := &memBackend{}
	q := New(be)
	ctx := context.Background()

	id, err := q.Publish(ctx, "emails", []byte(`{"to":"a@b.c"}`), map[string]string{"template": "welcome"})
	require.NoError(t, err)
	assert.Equal(t, "emails-0", id)

	var got []Message
	err = q.Subscribe(ctx, "emails", func(_ context.Context, msg Message) error {
		got = append(got, msg)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "welcome", got[0].Attributes["template"])
	assert.JSONEq(t, `{"to":"a@b.c"}`, string(got[0].Data))

	require.NoError(t, q.Close())
	assert.True(t, be.closed)
}

func TestMQ_HandlerErrorPropagates(t *testing.T) {
	be := &memBackend{}
	q := New(be)
	ctx := context.Background()
	_, _ = q.Publish(ctx, "emails", []byte("x"), nil)

	err := q.Subscribe(ctx, "emails", func(context.Context, Message) error {
		return ErrDrop
	})
	assert.ErrorIs(t, err, ErrDrop)
}

func TestHeadersToAttributes(t *testing.T) {
	assert.Nil(t, headersToAttributes(nil))

	attrs := headersToAttributes(amqp.Table{
		"template": "otp_verification",
		"raw":      []byte("bytes"),
		"attempt":  int32(3),
	})
	assert.Equal(t, map[string]string{
		"template": "otp_verification",
		"raw":      "bytes",
		"attempt":  "3",
	}, attrs)
}

func TestNewClients_RequireSettings(t *testing.T) {
	_, err := NewRabbitMQClient(RabbitMQConfig{})
	assert.EqualError(t, err, "rabbitmq url is required")

	_, err = NewPubSubClient(context.Background(), PubSubConfig{})
	assert.EqualError(t, err, "pubsub project id is required")
	assert.False(t, errors.Is(err, ErrDrop))
}

func TestPubSubSubscriptionName(t *testing.T) {
	p := &PubSubClient{subscriptionSuffix: "-worker"}
	assert.Equal(t, "emails-worker", p.subscriptionName("emails"))
}

func TestNewMessageID(t *testing.T) {
	a, b := newMessageID(), newMessageID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
