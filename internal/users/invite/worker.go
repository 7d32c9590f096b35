// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package invite

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Worker consumes invitation deliveries and hands them to a [Sender].
//
// # Acknowledgement
//   - Malformed bodies are dropped (nack without requeue).
//   - A first delivery failure is requeued once; a failing redelivery is
//     nacked without requeue and goes to the dead-letter queue.
//   - Sent messages are acked.
type Worker struct {
	sender Sender
	logger *slog.Logger
}

// NewWorker constructs a new [Worker].
func NewWorker(sender Sender, logger *slog.Logger) *Worker {
	return &Worker{sender: sender, logger: logger}
}

// Run processes deliveries until ctx is cancelled or the channel closes.
func (worker *Worker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				worker.logger.Warn("invite_deliveries_closed")
				return
			}
			worker.Handle(ctx, delivery)
		}
	}
}

// Handle processes a single delivery.
func (worker *Worker) Handle(ctx context.Context, delivery amqp.Delivery) {
	var message Message
	if err := json.Unmarshal(delivery.Body, &message); err != nil || message.Email == "" {
		worker.logger.ErrorContext(ctx, "invite_message_malformed",
			slog.Any("error", err),
			slog.Int("body_size", len(delivery.Body)),
		)
		_ = delivery.Nack(false, false)
		return
	}

	logger := worker.logger.With(slog.String("user_id", message.UserID))

	if err := worker.sender.Send(ctx, message); err != nil {
		if delivery.Redelivered {
			logger.ErrorContext(ctx, "invite_send_abandoned", slog.Any("error", err))
			_ = delivery.Nack(false, false)
			return
		}
		logger.ErrorContext(ctx, "invite_send_failed", slog.Any("error", err))
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
	logger.InfoContext(ctx, "invite_sent")
}
