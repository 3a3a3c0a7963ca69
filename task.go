// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package prd

import (
	"fmt"
	"time"
)

// TaskState represents the lifecycle state of a Task.
type TaskState string

const (
	// TaskStateInProgress indicates the task has been accepted and is being
	// worked on.
	TaskStateInProgress TaskState = "in_progress"

	// TaskStateCompleted indicates the task finished and its artifacts are
	// available.
	TaskStateCompleted TaskState = "completed"

	// TaskStateFailed indicates the task terminated with an error.
	TaskStateFailed TaskState = "failed"
)

// Terminal reports whether the state admits no further transitions.
func (s TaskState) Terminal() bool {
	return s == TaskStateCompleted || s == TaskStateFailed
}

// KindTask is the kind tag carried by every Task.
const KindTask = "task"

// TaskStatus captures the state of a Task at a point in time, with an agent
// message explaining it.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Timestamp string    `json:"timestamp"`
	Message   *Message  `json:"message"`
}

// Task is the unit of work record returned to callers. A task lives only as
// long as the envelope that carries it: it is created when a request is
// accepted, transitions at most once to a terminal state, and is never
// persisted.
type Task struct {
	ID        string      `json:"id"`
	ContextID string      `json:"contextId"`
	Status    TaskStatus  `json:"status"`
	Artifacts []*Artifact `json:"artifacts"`
	History   []*Message  `json:"history"`
	Kind      string      `json:"kind"`
}

// Validate ensures the Task is well formed.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if t.ContextID == "" {
		return fmt.Errorf("context ID cannot be empty")
	}
	if t.Kind != KindTask {
		return fmt.Errorf("invalid task kind: %q", t.Kind)
	}
	switch t.Status.State {
	case TaskStateInProgress, TaskStateCompleted, TaskStateFailed:
	default:
		return fmt.Errorf("invalid task state: %q", t.Status.State)
	}
	if t.Status.Message != nil {
		if err := t.Status.Message.Validate(); err != nil {
			return fmt.Errorf("invalid status message: %w", err)
		}
	}
	for i, artifact := range t.Artifacts {
		if err := artifact.Validate(); err != nil {
			return fmt.Errorf("artifact at index %d is invalid: %w", i, err)
		}
	}
	for i, message := range t.History {
		if err := message.Validate(); err != nil {
			return fmt.Errorf("history message at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// statusTimestamp returns the generation time in the wire format.
func statusTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
