// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

// Package generate produces rendered PRD documents from natural-language
// prompts. The orchestrator sees only the Gateway contract: prompt in,
// base64-encoded document payload out.
package generate

import (
	"context"
)

// Gateway turns a prompt into a base64-encoded rendered document.
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, prompt string) (string, error)

// Generate implements Gateway.
func (f GatewayFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
