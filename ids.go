// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package prd

import (
	"github.com/google/uuid"
)

// Identifier prefixes. Every generated id is globally unique and prefixed by
// the kind of entity it names.
const (
	taskIDPrefix     = "task-"
	contextIDPrefix  = "ctx-"
	messageIDPrefix  = "msg-"
	artifactIDPrefix = "artifact-"
)

// NewTaskID generates a task identifier.
func NewTaskID() string {
	return taskIDPrefix + uuid.NewString()
}

// NewContextID generates a context identifier.
func NewContextID() string {
	return contextIDPrefix + uuid.NewString()
}

// NewMessageID generates a message identifier.
func NewMessageID() string {
	return messageIDPrefix + uuid.NewString()
}

// NewArtifactID generates an artifact identifier.
func NewArtifactID() string {
	return artifactIDPrefix + uuid.NewString()
}
