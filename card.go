// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package prd

// AgentCardWellKnownPath is the standard path for retrieving the agent's
// public card.
const AgentCardWellKnownPath = "/.well-known/agent.json"

// AgentCard describes this agent to its callers.
type AgentCard struct {
	Name         string            `json:"name"`
	Description  string            `json:"description,omitzero"`
	Version      string            `json:"version"`
	Capabilities AgentCapabilities `json:"capabilities"`
}

// AgentCapabilities advertises which protocol features the agent supports.
type AgentCapabilities struct {
	Streaming         bool `json:"streaming"`
	PushNotifications bool `json:"pushNotifications"`
}

// NewAgentCard creates the card served for the named agent.
func NewAgentCard(name string) *AgentCard {
	return &AgentCard{
		Name:        name,
		Description: "Generates Product Requirement Documents from a natural-language prompt and delivers them as uploaded PDFs.",
		Version:     "0.1.0",
		Capabilities: AgentCapabilities{
			PushNotifications: true,
		},
	}
}
