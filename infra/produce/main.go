package produce

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the producers use.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Produce struct {
	EmailService *EmailService
}

func InitProduce(channel Channel) (*Produce, error) {
	emailService, err := InitEmailService(channel)
	if err != nil {
		return nil, fmt.Errorf("init email service: %w", err)
	}

	return &Produce{
		EmailService: emailService,
	}, nil
}
