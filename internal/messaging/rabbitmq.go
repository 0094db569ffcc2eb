package messaging

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type PublishErrorKind string

const (
	PublishUnreachable PublishErrorKind = "unreachable"
	PublishRejected    PublishErrorKind = "rejected"
)

// PublishError classifies a failed delivery to the broker.
type PublishError struct {
	Kind PublishErrorKind
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("broker publish failed (%s): %v", e.Kind, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// Broker publishes messages over a connection scoped to a single call.
// Connections are never pooled or shared across requests.
type Broker struct {
	url string
}

func NewBroker(host string, port int, user, password string) *Broker {
	return &Broker{
		url: fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port),
	}
}

// Publish connects, declares the exchange, sends one message and closes the
// connection again. The deferred closes hold on every exit path.
func (b *Broker) Publish(ctx context.Context, exchange, routingKey string, body []byte) error {
	conn, err := amqp.Dial(b.url)
	if err != nil {
		return &PublishError{Kind: PublishUnreachable,
			Err: fmt.Errorf("failed to connect to RabbitMQ: %w", err)}
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return &PublishError{Kind: PublishRejected,
			Err: fmt.Errorf("failed to open channel: %w", err)}
	}
	defer channel.Close()

	// Idempotent declare: safe to repeat on every publish
	err = channel.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return &PublishError{Kind: PublishRejected,
			Err: fmt.Errorf("failed to declare exchange: %w", err)}
	}

	err = channel.PublishWithContext(ctx,
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return &PublishError{Kind: PublishRejected,
			Err: fmt.Errorf("failed to publish message: %w", err)}
	}

	return nil
}
