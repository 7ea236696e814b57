package produce

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EmailExchange               = "email_exchange"
	EmailConfirmationRoutingKey = "email.confirmation"
	EmailNotificationRoutingKey = "email.notification"
)

type EmailMessage struct {
	Type          string `json:"type"`
	Recipient     string `json:"recipient"`
	RecipientName string `json:"recipientName,omitempty"`
	Content       string `json:"content"`
	ActionUrl     string `json:"actionUrl,omitempty"`
}

type EmailService struct {
	channel Channel
}

func InitEmailService(channel Channel) (*EmailService, error) {
	err := channel.ExchangeDeclare(
		EmailExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare %s: %w", EmailExchange, err)
	}

	return &EmailService{
		channel: channel,
	}, nil
}

// SendWelcomeEmail announces a new account to its owner.
func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, recipientName, actionUrl string) error {
	message := EmailMessage{
		Type:          "confirmation",
		Recipient:     email,
		RecipientName: recipientName,
		Content:       "Tu cuenta en el panel de mitigación de sequía fue creada.",
		ActionUrl:     actionUrl,
	}

	return s.publishEmail(ctx, EmailConfirmationRoutingKey, message)
}

// SendPasswordChanged warns the owner that the password was replaced.
func (s *EmailService) SendPasswordChanged(ctx context.Context, email, recipientName string) error {
	message := EmailMessage{
		Type:          "notification",
		Recipient:     email,
		RecipientName: recipientName,
		Content:       "La contraseña de tu cuenta fue actualizada.",
	}

	return s.publishEmail(ctx, EmailNotificationRoutingKey, message)
}

func (s *EmailService) publishEmail(ctx context.Context, routingKey string, message EmailMessage) error {
	if message.Recipient == "" {
		return fmt.Errorf("email message without recipient")
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal email message: %w", err)
	}

	err = s.channel.PublishWithContext(
		ctx,
		EmailExchange, // exchange
		routingKey,    // routing key
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish email message: %w", err)
	}

	return nil
}
