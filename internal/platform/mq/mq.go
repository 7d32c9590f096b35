// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package mq manages the RabbitMQ connection shared by the API publisher and
the mail worker.
*/
package mq

import (
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Broker owns one AMQP connection and the channel opened on it.
type Broker struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

/*
Dial connects to RabbitMQ and opens a channel.

Parameters:
  - url: string (amqp:// DSN)
  - logger: *slog.Logger

Returns:
  - *Broker: Connected broker
  - error: Connection or channel failures
*/
func Dial(url string, logger *slog.Logger) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp_dial_failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp_channel_failed: %w", err)
	}

	logger.Info("amqp_connected")
	return &Broker{conn: conn, channel: channel}, nil
}

// DeadLetterQueue names the queue receiving the rejected messages of name.
func DeadLetterQueue(name string) string {
	return name + ".dead"
}

// DeclareQueue declares a durable, non-exclusive queue together with its
// dead-letter queue. Messages nacked without requeue land in the latter.
func (broker *Broker) DeclareQueue(name string) error {
	deadLetter := DeadLetterQueue(name)
	if _, err := broker.channel.QueueDeclare(deadLetter, true, false, false, false, nil); err != nil {
		return fmt.Errorf("amqp_dead_letter_declare_failed: %w", err)
	}

	_, err := broker.channel.QueueDeclare(
		name,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": deadLetter,
		},
	)
	if err != nil {
		return fmt.Errorf("amqp_queue_declare_failed: %w", err)
	}
	return nil
}

// Channel returns the underlying channel.
func (broker *Broker) Channel() *amqp.Channel {
	return broker.channel
}

// Ping reports whether the connection is still open.
func (broker *Broker) Ping() error {
	if broker.conn.IsClosed() {
		return fmt.Errorf("amqp_connection_closed")
	}
	return nil
}

// Close closes the channel and then the connection.
func (broker *Broker) Close() error {
	if err := broker.channel.Close(); err != nil && !broker.conn.IsClosed() {
		_ = broker.conn.Close()
		return fmt.Errorf("amqp_channel_close_failed: %w", err)
	}
	if broker.conn.IsClosed() {
		return nil
	}
	return broker.conn.Close()
}
