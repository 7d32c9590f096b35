// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package invite

import (
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"

	"github.com/johnvilela/motolink/internal/platform/config"
)

//go:embed templates/*.html
var templatesFS embed.FS

var activationTemplate = template.Must(template.ParseFS(templatesFS, "templates/activation.html"))

// subject of the invitation e-mail.
const subject = "Motolink - Bem-vindo(a)! Conclua seu primeiro acesso"

// SMTPSender delivers invitations with go-mail.
type SMTPSender struct {
	client *mail.Client
	from   string
}

/*
NewSMTPSender builds an SMTP client authenticated with PLAIN over SSL.

Parameters:
  - cfg: *config.MailerConfig

Returns:
  - *SMTPSender: Ready sender
  - error: Invalid client options
*/
func NewSMTPSender(cfg *config.MailerConfig) (*SMTPSender, error) {
	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.SMTPPort),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTimeout(cfg.DialTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp_client_failed: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.SMTPFrom}, nil
}

/*
Send renders the activation template and delivers it.

Parameters:
  - ctx: context.Context
  - message: Message

Returns:
  - error: Invalid addresses, rendering or delivery failures
*/
func (sender *SMTPSender) Send(ctx context.Context, message Message) error {
	msg := mail.NewMsg()
	if err := msg.From(sender.from); err != nil {
		return fmt.Errorf("smtp_from_invalid: %w", err)
	}
	if err := msg.To(message.Email); err != nil {
		return fmt.Errorf("smtp_to_invalid: %w", err)
	}
	msg.Subject(subject)

	if err := msg.SetBodyHTMLTemplate(activationTemplate, message); err != nil {
		return fmt.Errorf("smtp_body_failed: %w", err)
	}

	if err := sender.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp_send_failed: %w", err)
	}
	return nil
}

// Close terminates the SMTP connection if one is open.
func (sender *SMTPSender) Close() error {
	return sender.client.Close()
}
