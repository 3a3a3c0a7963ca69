// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"regexp"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"

	prd "github.com/hngprojects/prd-agent"
)

// TaskRequest is a validated inbound request: everything the orchestrator
// needs, captured as immutable values before any work starts.
type TaskRequest struct {
	RequestID    string
	Prompt       string
	Blocking     bool
	Notification *prd.PushNotificationConfig
}

// ParseRequest validates a raw request body and extracts the task request.
// Validation short-circuits in order: well-formed JSON, params present,
// message present, non-empty parts, usable prompt, and a notification config
// when the caller asked for non-blocking delivery. Failing the last check
// here keeps async misconfiguration from ever reaching the generation
// backend.
func ParseRequest(body []byte) (*TaskRequest, error) {
	var req prd.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, prd.NewErrorWithCause(prd.CodeParseError, "Invalid JSON payload", err)
	}

	requestID := req.ID.String()
	if requestID == "" {
		requestID = uuid.NewString()
	}

	if req.Params == nil {
		return nil, prd.NewError(prd.CodeInvalidParams, "request has no params")
	}
	if req.Params.Message == nil {
		return nil, prd.NewError(prd.CodeInvalidParams, "params has no message")
	}
	if len(req.Params.Message.Parts) == 0 {
		return nil, prd.NewError(prd.CodeInvalidParams, "message has no parts")
	}

	prompt := ExtractPrompt(req.Params.Message.Parts)
	if prompt == "" {
		return nil, prd.NewError(prd.CodeInvalidParams, "no valid user prompt found in request")
	}

	blocking := true
	cfg := req.Params.Configuration
	if cfg != nil && cfg.Blocking != nil {
		blocking = *cfg.Blocking
	}

	var notification *prd.PushNotificationConfig
	if !blocking {
		if cfg == nil {
			return nil, prd.NewError(prd.CodeInvalidParams, "non-blocking request requires a push notification config")
		}
		if err := cfg.PushNotificationConfig.Validate(); err != nil {
			return nil, prd.NewErrorWithCause(prd.CodeInvalidParams, "non-blocking request requires a push notification config", err)
		}
		notification = cfg.PushNotificationConfig
	}

	return &TaskRequest{
		RequestID:    requestID,
		Prompt:       prompt,
		Blocking:     blocking,
		Notification: notification,
	}, nil
}

// markupTags matches <...> spans stripped from nested sub-part text.
var markupTags = regexp.MustCompile(`<[^>]*>`)

// ExtractPrompt scans the parts for a usable user prompt.
//
// First pass: the parts in order, returning the first non-empty text part.
// Second pass: data parts whose payload is itself a part sequence, scanned
// from the end backward because nested data blocks place the most recent
// message last, returning the first sub-part text that is non-empty after
// markup tags and surrounding whitespace are stripped. Returns "" when both
// passes come up empty.
func ExtractPrompt(parts []prd.Part) string {
	for _, part := range parts {
		if part.Kind == prd.PartKindText && part.Text != nil && *part.Text != "" {
			return *part.Text
		}
	}

	for _, part := range parts {
		if part.Kind != prd.PartKindData {
			continue
		}
		sub := part.DataParts()
		for i := len(sub) - 1; i >= 0; i-- {
			if sub[i].Kind != prd.PartKindText || sub[i].Text == nil {
				continue
			}
			text := strings.TrimSpace(markupTags.ReplaceAllString(*sub[i].Text, ""))
			if text != "" {
				return text
			}
		}
	}

	return ""
}

// peekRequestID best-effort extracts the request id from a body that failed
// full validation, so even a rejection envelope can echo the caller's id.
func peekRequestID(body []byte) string {
	var probe struct {
		ID prd.RequestID `json:"id"`
	}
	if err := json.Unmarshal(body, &probe); err == nil {
		if id := probe.ID.String(); id != "" {
			return id
		}
	}
	return uuid.NewString()
}
