// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package prd

import (
	"fmt"
)

// Artifact is an output produced by a task: an ordered sequence of Parts
// describing the deliverable, typically a file reference.
type Artifact struct {
	ArtifactID string `json:"artifactId"`
	Name       string `json:"name"`
	Parts      []Part `json:"parts"`
}

// NewArtifact creates an Artifact with a fresh artifact id.
func NewArtifact(name string, parts []Part) *Artifact {
	return &Artifact{
		ArtifactID: NewArtifactID(),
		Name:       name,
		Parts:      parts,
	}
}

// Validate ensures the Artifact is well formed.
func (a *Artifact) Validate() error {
	if a == nil {
		return fmt.Errorf("artifact cannot be nil")
	}
	if a.ArtifactID == "" {
		return fmt.Errorf("artifact ID cannot be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("artifact name cannot be empty")
	}
	if len(a.Parts) == 0 {
		return fmt.Errorf("artifact must contain at least one part")
	}
	for i, part := range a.Parts {
		if err := part.Validate(); err != nil {
			return fmt.Errorf("artifact part at index %d is invalid: %w", i, err)
		}
	}
	return nil
}
