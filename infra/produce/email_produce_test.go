package produce

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	published  []published
	declareErr error
	publishErr error
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func TestInitProduce_DeclaresEmailExchange(t *testing.T) {
	ch := &fakeChannel{}
	p, err := InitProduce(ch)
	require.NoError(t, err)
	require.NotNil(t, p.EmailService)
	assert.Equal(t, []string{"email_exchange:topic"}, ch.declared)
}

func TestInitProduce_DeclareFailure(t *testing.T) {
	_, err := InitProduce(&fakeChannel{declareErr: errors.New("channel closed")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestSendWelcomeEmail(t *testing.T) {
	ch := &fakeChannel{}
	svc, err := InitEmailService(ch)
	require.NoError(t, err)

	require.NoError(t, svc.SendWelcomeEmail(context.Background(), "ana@example.com", "Ana", "http://localhost:8080/auth/login"))
	require.Len(t, ch.published, 1)

	p := ch.published[0]
	assert.Equal(t, EmailExchange, p.exchange)
	assert.Equal(t, EmailConfirmationRoutingKey, p.key)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.Equal(t, amqp.Persistent, p.msg.DeliveryMode)

	var msg EmailMessage
	require.NoError(t, json.Unmarshal(p.msg.Body, &msg))
	assert.Equal(t, "confirmation", msg.Type)
	assert.Equal(t, "ana@example.com", msg.Recipient)
	assert.Equal(t, "Ana", msg.RecipientName)
	assert.Equal(t, "http://localhost:8080/auth/login", msg.ActionUrl)
}

func TestSendPasswordChanged(t *testing.T) {
	ch := &fakeChannel{}
	svc, err := InitEmailService(ch)
	require.NoError(t, err)

	require.NoError(t, svc.SendPasswordChanged(context.Background(), "ana@example.com", "Ana"))
	require.Len(t, ch.published, 1)
	assert.Equal(t, EmailNotificationRoutingKey, ch.published[0].key)
}

func TestPublishEmail_Errors(t *testing.T) {
	ch := &fakeChannel{}
	svc, err := InitEmailService(ch)
	require.NoError(t, err)

	err = svc.SendWelcomeEmail(context.Background(), "", "Ana", "")
	require.Error(t, err)
	assert.Empty(t, ch.published)

	ch.publishErr = errors.New("connection reset")
	err = svc.SendWelcomeEmail(context.Background(), "ana@example.com", "Ana", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish email message")
}
