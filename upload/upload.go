// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

// Package upload delivers rendered documents to the object store. It wraps a
// narrow Adapter boundary with a retry policy that classifies adapter
// failures and backs off linearly on transient ones.
package upload

import (
	"context"
	"strings"
)

// Adapter uploads a binary payload to the object store and returns the
// secure delivery URL. Implementations may fail with arbitrary errors; the
// retry policy classifies them by message text.
type Adapter interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// FailureKind classifies an upload failure.
type FailureKind int

const (
	// FailureUnknown is any failure the table below does not match.
	FailureUnknown FailureKind = iota
	// FailureRateLimited is a backend rate limit. Retried.
	FailureRateLimited
	// FailureAuth is an authentication failure. Not retried.
	FailureAuth
	// FailureQuota is a storage quota failure. Not retried.
	FailureQuota
	// FailureTooLarge is a payload size failure. Not retried.
	FailureTooLarge
	// FailureNetwork is a transient network failure. Retried.
	FailureNetwork
)

// String returns the kind's name for logging.
func (k FailureKind) String() string {
	switch k {
	case FailureRateLimited:
		return "rate_limited"
	case FailureAuth:
		return "auth"
	case FailureQuota:
		return "quota"
	case FailureTooLarge:
		return "too_large"
	case FailureNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Retryable reports whether another attempt may succeed.
func (k FailureKind) Retryable() bool {
	return k == FailureRateLimited || k == FailureNetwork
}

// classifications maps error-text fragments to failure kinds, in priority
// order. The adapter's only failure signal is free text, so the mapping is
// an explicit table rather than inline string checks.
var classifications = []struct {
	kind      FailureKind
	fragments []string
}{
	{FailureRateLimited, []string{"rate limit", "429", "too many requests"}},
	{FailureAuth, []string{"401", "unauthorized", "authentication"}},
	{FailureQuota, []string{"quota", "storage limit"}},
	{FailureTooLarge, []string{"file size", "too large"}},
	{FailureNetwork, []string{"timeout", "connection", "network"}},
}

// Classify determines the failure kind of an adapter error by
// case-insensitive substring match.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}

	text := strings.ToLower(err.Error())
	for _, c := range classifications {
		for _, fragment := range c.fragments {
			if strings.Contains(text, fragment) {
				return c.kind
			}
		}
	}
	return FailureUnknown
}

// NormalizeDocumentURL rewrites an upload URL so it serves the document
// through the raw delivery path rather than the image pipeline, and ensures
// the .pdf suffix consumers expect.
func NormalizeDocumentURL(url string) string {
	switch {
	case strings.Contains(url, "/raw/upload/"):
		// Already on the raw path.
	case strings.Contains(url, "/image/upload/"):
		url = strings.Replace(url, "/image/upload/", "/raw/upload/", 1)
	case strings.Contains(url, "/upload/"):
		url = strings.Replace(url, "/upload/", "/raw/upload/", 1)
	}

	if !strings.HasSuffix(url, ".pdf") {
		url += ".pdf"
	}
	return url
}
