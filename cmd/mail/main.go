// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Command mail delivers collaborator invitations.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load the mailer configuration.
//  3. Build the SMTP sender.
//  4. Connect to RabbitMQ and declare the invitation queue.
//  5. Consume with manual acknowledgement until SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/johnvilela/motolink/internal/platform/config"
	"github.com/johnvilela/motolink/internal/platform/constants"
	"github.com/johnvilela/motolink/internal/platform/mq"
	"github.com/johnvilela/motolink/internal/users/invite"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", "motolink-mail"))
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadMailer()
	must(log, err, "load mailer configuration")

	if cfg.Debug {
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})).With(slog.String("app", "motolink-mail"))
		slog.SetDefault(log)
	}

	// ── 3. SMTP ───────────────────────────────────────────────────────────
	sender, err := invite.NewSMTPSender(cfg)
	must(log, err, "create smtp sender")
	defer func() {
		if cerr := sender.Close(); cerr != nil {
			log.Warn("smtp close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. RabbitMQ ───────────────────────────────────────────────────────
	broker, err := mq.Dial(cfg.AMQPURL, log)
	must(log, err, "connect to rabbitmq")
	defer func() {
		if cerr := broker.Close(); cerr != nil {
			log.Warn("amqp close error", slog.Any("error", cerr))
		}
	}()

	must(log, broker.DeclareQueue(constants.QueueInvites), "declare invitation queue")

	deliveries, err := broker.Channel().Consume(
		constants.QueueInvites,
		"",    // consumer tag assigned by the broker
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	must(log, err, "consume invitation queue")

	// ── 5. Consume ────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	worker := invite.NewWorker(sender, log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx, deliveries)
	}()

	log.Info("mail worker waiting for invitations", slog.String("queue", constants.QueueInvites))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit

	log.Info("shutdown signal received", slog.String("signal", sig.String()))
	cancel()
	wg.Wait()
	log.Info("mail worker stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
