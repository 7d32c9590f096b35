// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package invite

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// publishTimeout bounds a single broker round-trip.
const publishTimeout = 5 * time.Second

// Channel is the subset of [*amqp.Channel] used to publish.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher publishes invitations on a durable queue via the default exchange.
type AMQPPublisher struct {
	channel Channel
	queue   string
}

// NewAMQPPublisher constructs a publisher bound to queue.
func NewAMQPPublisher(channel Channel, queue string) *AMQPPublisher {
	return &AMQPPublisher{channel: channel, queue: queue}
}

/*
Publish encodes the message as JSON and sends it as a persistent delivery.

Parameters:
  - ctx: context.Context
  - message: Message

Returns:
  - error: Encoding or broker failures
*/
func (publisher *AMQPPublisher) Publish(ctx context.Context, message Message) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("invite_encode_failed: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = publisher.channel.PublishWithContext(publishCtx, "", publisher.queue, true, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("invite_publish_failed: %w", err)
	}
	return nil
}

// LogPublisher only logs invitations. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher constructs a [LogPublisher].
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the activation link instead of sending it.
func (publisher *LogPublisher) Publish(ctx context.Context, message Message) error {
	publisher.logger.InfoContext(ctx, "invite_not_published",
		slog.String("user_id", message.UserID),
		slog.String("email", message.Email),
		slog.String("activation_url", message.ActivationURL),
	)
	return nil
}
