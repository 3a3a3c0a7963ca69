// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the PRD agent over HTTP. One JSON-RPC endpoint
// accepts task requests; a well-known endpoint serves the agent card. All
// protocol outcomes, success and failure alike, go out as HTTP 200 with the
// verdict in the JSON-RPC envelope.
package server

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-json-experiment/json"

	prd "github.com/hngprojects/prd-agent"
)

const defaultAgentName = "prdAgent"

// maxRequestBytes caps an inbound request body.
const maxRequestBytes = 1 << 20

// Server is the HTTP surface of the agent.
type Server struct {
	mux          *http.ServeMux
	orchestrator *Orchestrator
	card         *prd.AgentCard
	logger       *slog.Logger
}

var _ http.Handler = (*Server)(nil)

// Config holds configuration for a Server.
type Config struct {
	// AgentName is the path segment the agent is mounted under. Defaults to
	// "prdAgent".
	AgentName    string
	Orchestrator *Orchestrator
	Logger       *slog.Logger
}

// New creates a Server and registers its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Orchestrator == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}

	name := cfg.AgentName
	if name == "" {
		name = defaultAgentName
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mux:          http.NewServeMux(),
		orchestrator: cfg.Orchestrator,
		card:         prd.NewAgentCard(name),
		logger:       logger,
	}
	s.mux.HandleFunc("POST /a2a/agent/"+name, s.handleTask)
	s.mux.HandleFunc("GET "+prd.AgentCardWellKnownPath, s.handleAgentCard)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		envelope := prd.NewErrorEnvelope("", prd.NewErrorWithCause(prd.CodeParseError, "Invalid JSON payload", err))
		s.writeEnvelope(w, envelope)
		return
	}

	envelope, dispatch := s.orchestrator.Handle(r.Context(), body)
	s.writeEnvelope(w, envelope)

	s.logger.Info("request handled",
		"id", envelope.ID,
		"blocking", dispatch == nil,
		"failed", envelope.Error != nil,
		"duration", time.Since(start))

	// The acknowledgment is on the wire; only now may the async work start.
	if dispatch != nil {
		go dispatch()
	}
}

func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.MarshalWrite(w, s.card); err != nil {
		s.logger.Error("failed to write agent card", "error", err)
	}
}

// writeEnvelope serializes the envelope as the HTTP 200 response. If the
// envelope itself fails to serialize, a hand-built internal-error envelope
// goes out instead so the caller always receives well-formed JSON-RPC.
func (s *Server) writeEnvelope(w http.ResponseWriter, envelope *prd.Envelope) {
	body, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error("failed to encode envelope",
			"id", envelope.ID,
			"error", err)
		body = []byte(prd.FallbackEnvelope(envelope.ID))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}
