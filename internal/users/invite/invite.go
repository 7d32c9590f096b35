// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package invite carries collaborator invitations from the API to the mail
worker over RabbitMQ and delivers them through SMTP.
*/
package invite

import (
	"context"
	"net/url"
	"strings"

	"github.com/johnvilela/motolink/internal/platform/constants"
)

// Message is the body published on the invitation queue.
type Message struct {
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Token         string `json:"token"`
	ActivationURL string `json:"activationUrl"`
}

// Publisher hands invitations to the delivery pipeline.
type Publisher interface {
	Publish(context context.Context, message Message) error
}

// Sender delivers one invitation e-mail.
type Sender interface {
	Send(context context.Context, message Message) error
}

// ActivationURL builds the first-access link for token.
func ActivationURL(baseURL, token string) string {
	query := url.Values{"token": {token}}
	return strings.TrimRight(baseURL, "/") + constants.PathFirstLogin + "?" + query.Encode()
}
