// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	prd "github.com/hngprojects/prd-agent"
)

const defaultNotifyTimeout = 10 * time.Second

// notificationJWTHeader carries a short-lived signed token proving the
// delivery came from this agent, independent of the caller-supplied bearer
// token.
const notificationJWTHeader = "X-Notification-JWT"

// WebhookNotifier posts terminal envelopes to caller-supplied webhook URLs.
// Delivery is a single attempt; the orchestrator logs failures and moves on.
type WebhookNotifier struct {
	client     *http.Client
	timeout    time.Duration
	signingKey []byte
	logger     *slog.Logger
}

var _ Notifier = (*WebhookNotifier)(nil)

// WebhookNotifierConfig holds configuration for a WebhookNotifier.
type WebhookNotifierConfig struct {
	// Client is the HTTP client used for deliveries. Defaults to
	// http.DefaultClient.
	Client *http.Client
	// Timeout bounds a single delivery attempt. Defaults to 10 seconds.
	Timeout time.Duration
	// SigningKey, when set, enables an HMAC-signed JWT on each delivery in
	// the X-Notification-JWT header.
	SigningKey []byte
	Logger     *slog.Logger
}

// NewWebhookNotifier creates a WebhookNotifier.
func NewWebhookNotifier(cfg WebhookNotifierConfig) *WebhookNotifier {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookNotifier{
		client:     client,
		timeout:    timeout,
		signingKey: cfg.SigningKey,
		logger:     logger,
	}
}

// Notify delivers the envelope to url as a JSON POST. The caller-supplied
// token rides in the Authorization header as a bearer credential.
func (n *WebhookNotifier) Notify(ctx context.Context, url, token string, envelope *prd.Envelope) error {
	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if len(n.signingKey) > 0 {
		signed, err := n.signDelivery(envelope.ID)
		if err != nil {
			return fmt.Errorf("failed to sign notification: %w", err)
		}
		req.Header.Set(notificationJWTHeader, signed)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification delivery failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}

	n.logger.Info("notification delivered",
		"url", url,
		"status", resp.StatusCode)
	return nil
}

// signDelivery mints a short-lived HMAC token bound to the envelope id.
func (n *WebhookNotifier) signDelivery(envelopeID string) (string, error) {
	now := time.Now()
	tok, err := jwt.NewBuilder().
		Issuer("prd-agent").
		Subject(envelopeID).
		IssuedAt(now).
		Expiration(now.Add(5 * time.Minute)).
		Build()
	if err != nil {
		return "", err
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), n.signingKey))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

// NoOpNotifier discards envelopes. Useful in tests and in deployments that
// never accept non-blocking requests.
type NoOpNotifier struct{}

var _ Notifier = (*NoOpNotifier)(nil)

// Notify implements Notifier by doing nothing.
func (NoOpNotifier) Notify(context.Context, string, string, *prd.Envelope) error {
	return nil
}
