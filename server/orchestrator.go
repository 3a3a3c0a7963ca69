// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	prd "github.com/hngprojects/prd-agent"
)

// Generator turns a prompt into a base64-encoded rendered document.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Uploader delivers document bytes to the object store and returns the
// delivery URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// Notifier delivers a terminal envelope to a caller-supplied webhook.
type Notifier interface {
	Notify(ctx context.Context, url, token string, envelope *prd.Envelope) error
}

// Orchestrator drives the task lifecycle: Received → Validated → Generating
// → Uploading → Completed/Failed. Blocking requests run the pipeline inline
// and get the terminal envelope as the response; non-blocking requests get
// an in-progress acknowledgment, and the terminal envelope goes to their
// webhook instead. The collaborators are injected, stateless handles; the
// orchestrator itself holds no per-task state beyond the values captured at
// dispatch.
type Orchestrator struct {
	generator Generator
	uploader  Uploader
	notifier  Notifier
	logger    *slog.Logger

	// inlineArtifacts additionally embeds the base64 document as a data
	// part next to the file reference.
	inlineArtifacts bool
}

// OrchestratorConfig holds configuration for an Orchestrator.
type OrchestratorConfig struct {
	Generator       Generator
	Uploader        Uploader
	Notifier        Notifier
	Logger          *slog.Logger
	InlineArtifacts bool
}

// NewOrchestrator creates an Orchestrator with the given collaborators.
func NewOrchestrator(cfg OrchestratorConfig) (*Orchestrator, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if cfg.Uploader == nil {
		return nil, fmt.Errorf("uploader is required")
	}
	if cfg.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		generator:       cfg.Generator,
		uploader:        cfg.Uploader,
		notifier:        cfg.Notifier,
		logger:          logger,
		inlineArtifacts: cfg.InlineArtifacts,
	}, nil
}

// Handle processes one raw request body and returns the envelope to send as
// the HTTP response, plus a dispatch function for the asynchronous path.
//
// A nil dispatch means the envelope is terminal and nothing else runs. A
// non-nil dispatch carries the generation/upload/webhook work for a
// non-blocking task; the caller must invoke it only after the acknowledgment
// envelope has been written, preserving send-then-dispatch ordering. Only
// the immutable TaskRequest and the generated ids cross into the dispatch
// closure.
func (o *Orchestrator) Handle(ctx context.Context, body []byte) (*prd.Envelope, func()) {
	req, err := ParseRequest(body)
	if err != nil {
		// An unparseable or invalid request cannot be acknowledged
		// asynchronously; the rejection is always synchronous.
		return prd.NewErrorEnvelope(peekRequestID(body), err), nil
	}

	taskID := prd.NewTaskID()
	contextID := prd.NewContextID()

	if req.Blocking {
		task, err := o.execute(ctx, req.Prompt, taskID, contextID)
		if err != nil {
			o.logger.Error("task failed",
				"task_id", taskID,
				"error", err)
			return prd.NewErrorEnvelope(req.RequestID, err), nil
		}
		return prd.NewResultEnvelope(req.RequestID, task), nil
	}

	ack := prd.NewResultEnvelope(req.RequestID, prd.NewInProgressTask(taskID, contextID))

	// The worker outlives the HTTP request; detach it from the request
	// context but keep its values.
	workCtx := context.WithoutCancel(ctx)
	dispatch := func() {
		o.runDetached(workCtx, req, taskID, contextID)
	}

	return ack, dispatch
}

// execute runs the generation and upload stages and builds the completed
// task. Errors come back classified for the envelope.
func (o *Orchestrator) execute(ctx context.Context, prompt, taskID, contextID string) (*prd.Task, error) {
	payload, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, classify(err, prd.CodeGenerationFailed, "document generation failed")
	}
	if payload == "" {
		return nil, prd.NewError(prd.CodeGenerationFailed, "generation backend returned empty output")
	}

	document, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, prd.NewErrorWithCause(prd.CodeDecodeError, "generated payload is not valid base64", err)
	}

	fileURL, err := o.uploader.Upload(ctx, document)
	if err != nil {
		return nil, classify(err, prd.CodeUploadFailed, "document upload failed")
	}

	inline := ""
	if o.inlineArtifacts {
		inline = payload
	}
	return prd.NewCompletedTask(taskID, contextID, prompt, fileURL, inline), nil
}

// runDetached is the asynchronous worker: it runs the pipeline to a terminal
// state and delivers that state through the webhook. The webhook envelope
// carries the task id rather than the original request id; the synchronous
// exchange is already over.
func (o *Orchestrator) runDetached(ctx context.Context, req *TaskRequest, taskID, contextID string) {
	var envelope *prd.Envelope

	task, err := o.execute(ctx, req.Prompt, taskID, contextID)
	if err != nil {
		o.logger.Error("async task failed",
			"task_id", taskID,
			"error", err)
		envelope = prd.NewErrorEnvelope(taskID, err)
	} else {
		envelope = prd.NewResultEnvelope(taskID, task)
	}

	// Best effort: a delivery failure is logged by the notifier and
	// accepted as lost, there is no caller left to surface it to.
	if err := o.notifier.Notify(ctx, req.Notification.URL, req.Notification.Token, envelope); err != nil {
		o.logger.Error("webhook delivery failed",
			"task_id", taskID,
			"url", req.Notification.URL,
			"error", err)
	}
}

// classify passes through already-classified errors and wraps everything
// else under the stage's code.
func classify(err error, code int, message string) *prd.Error {
	var classified *prd.Error
	if errors.As(err, &classified) {
		return classified
	}
	return prd.NewErrorWithCause(code, message, err)
}
