// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package upload

import (
	"context"
	"log/slog"
	"time"

	prd "github.com/hngprojects/prd-agent"
)

// Retry defaults.
const (
	defaultAttempts  = 3
	defaultBaseDelay = 2 * time.Second
)

// RetryPolicy wraps an Adapter with bounded retries. Transient failures are
// retried with linearly increasing backoff (attempt × base delay); permanent
// failures surface immediately as classified errors.
type RetryPolicy struct {
	adapter   Adapter
	attempts  int
	baseDelay time.Duration
	logger    *slog.Logger

	// sleep is swapped in tests to observe the backoff schedule.
	sleep func(ctx context.Context, d time.Duration) error
}

// RetryPolicyConfig holds configuration for a RetryPolicy.
type RetryPolicyConfig struct {
	Adapter   Adapter
	Attempts  int
	BaseDelay time.Duration
	Logger    *slog.Logger
}

// NewRetryPolicy creates a RetryPolicy with the configured bounds, applying
// defaults for anything unset.
func NewRetryPolicy(cfg RetryPolicyConfig) *RetryPolicy {
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}

	baseDelay := cfg.BaseDelay
	if baseDelay <= 0 {
		baseDelay = defaultBaseDelay
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RetryPolicy{
		adapter:   cfg.Adapter,
		attempts:  attempts,
		baseDelay: baseDelay,
		logger:    logger,
		sleep:     sleepContext,
	}
}

// Upload delivers the payload through the adapter, retrying transient
// failures up to the attempt bound, and normalizes the returned URL to the
// raw document path.
func (p *RetryPolicy) Upload(ctx context.Context, data []byte) (string, error) {
	var lastErr error
	var lastKind FailureKind

	for attempt := 1; attempt <= p.attempts; attempt++ {
		url, err := p.adapter.Upload(ctx, data)
		if err == nil {
			return NormalizeDocumentURL(url), nil
		}

		kind := Classify(err)
		lastErr, lastKind = err, kind

		if !kind.Retryable() {
			return "", permanentError(kind, err)
		}

		if attempt < p.attempts {
			delay := time.Duration(attempt) * p.baseDelay
			p.logger.Warn("upload attempt failed, retrying",
				"attempt", attempt,
				"kind", kind.String(),
				"delay", delay,
				"error", err)
			if err := p.sleep(ctx, delay); err != nil {
				return "", prd.NewErrorWithCause(prd.CodeUploadFailed, "upload interrupted", err)
			}
		}
	}

	if lastKind == FailureRateLimited {
		return "", prd.NewErrorWithCause(prd.CodeRateLimited, "upload rate limited after retries", lastErr)
	}
	// Transient network failures that exhaust the budget surface as the
	// adapter's raw failure.
	return "", lastErr
}

// permanentError maps a non-retryable failure kind to its classified error.
func permanentError(kind FailureKind, cause error) *prd.Error {
	switch kind {
	case FailureAuth:
		return prd.NewErrorWithCause(prd.CodeUploadFailed, "upload authentication failed", cause)
	case FailureQuota:
		return prd.NewErrorWithCause(prd.CodeUploadFailed, "upload quota exceeded", cause)
	case FailureTooLarge:
		return prd.NewErrorWithCause(prd.CodeUploadFailed, "upload payload too large", cause)
	default:
		return prd.NewErrorWithCause(prd.CodeUploadFailed, "upload failed", cause)
	}
}

// sleepContext waits for the delay or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
