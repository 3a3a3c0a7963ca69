// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package prd

import (
	"fmt"
)

// Role identifies the sender of a Message.
type Role string

// Valid message roles.
const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// KindMessage is the kind tag carried by every Message.
const KindMessage = "message"

// Message is an ordered sequence of Parts attributed to a role. TaskID is
// null for user messages that precede task creation; Metadata is reserved
// and always serialized (null when absent) to keep the schema positional.
type Message struct {
	Kind      string         `json:"kind"`
	Role      Role           `json:"role"`
	Parts     []Part         `json:"parts"`
	MessageID string         `json:"messageId"`
	TaskID    *string        `json:"taskId"`
	Metadata  map[string]any `json:"metadata"`
}

// NewUserMessage creates a user Message carrying the prompt as a lone text
// part. User messages have no task id.
func NewUserMessage(prompt string) *Message {
	return &Message{
		Kind:      KindMessage,
		Role:      RoleUser,
		Parts:     []Part{NewTextPart(prompt)},
		MessageID: NewMessageID(),
	}
}

// NewAgentMessage creates an agent Message from the given parts, bound to a
// task.
func NewAgentMessage(parts []Part, messageID, taskID string) *Message {
	return &Message{
		Kind:      KindMessage,
		Role:      RoleAgent,
		Parts:     parts,
		MessageID: messageID,
		TaskID:    &taskID,
	}
}

// Validate ensures the Message is well formed.
func (m *Message) Validate() error {
	if m.Kind != KindMessage {
		return fmt.Errorf("invalid message kind: %q", m.Kind)
	}
	if m.Role != RoleUser && m.Role != RoleAgent {
		return fmt.Errorf("invalid message role: %q", m.Role)
	}
	if m.MessageID == "" {
		return fmt.Errorf("message ID cannot be empty")
	}
	if len(m.Parts) == 0 {
		return fmt.Errorf("message must contain at least one part")
	}
	for i, part := range m.Parts {
		if err := part.Validate(); err != nil {
			return fmt.Errorf("message part at index %d is invalid: %w", i, err)
		}
	}
	return nil
}
