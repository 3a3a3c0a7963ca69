// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// GeminiGateway generates PRD text with the Gemini API and renders it to a
// PDF document.
type GeminiGateway struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

var _ Gateway = (*GeminiGateway)(nil)

// GeminiConfig holds configuration for a GeminiGateway.
type GeminiConfig struct {
	APIKey string
	Model  string
	Logger *slog.Logger
}

// NewGeminiGateway creates a gateway backed by the Gemini API.
func NewGeminiGateway(ctx context.Context, cfg GeminiConfig) (*GeminiGateway, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GeminiGateway{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Generate asks the model for the PRD text, renders it to PDF, and returns
// the document base64-encoded.
func (g *GeminiGateway) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := strings.TrimSpace(response.Text())
	if text == "" {
		return "", errors.New("gemini returned no text")
	}

	document, err := RenderPDF(text)
	if err != nil {
		return "", err
	}

	g.logger.Info("document generated",
		"model", g.model,
		"text_chars", len(text),
		"pdf_bytes", len(document))
	return base64.StdEncoding.EncodeToString(document), nil
}
