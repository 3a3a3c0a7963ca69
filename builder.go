// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package prd

// User-visible deliverable metadata.
const (
	// ArtifactName names the artifact that carries the rendered document.
	ArtifactName = "PRDDocument"
	// DocumentFileName is the download name of the rendered document.
	DocumentFileName = "Product_Requirement_Document.pdf"
	// DocumentMimeType is the mime type of the rendered document.
	DocumentMimeType = "application/pdf"
)

// Status texts shown to the caller.
const (
	inProgressText = "🔄 Generating your PRD document..."
	completedText  = "📄 Your PRD has been generated successfully! Click below to download it:"
)

// NewInProgressTask builds the acknowledgment task returned to a
// non-blocking caller: in-progress status, no artifacts, empty history.
func NewInProgressTask(taskID, contextID string) *Task {
	message := NewAgentMessage([]Part{NewTextPart(inProgressText)}, NewMessageID(), taskID)

	return &Task{
		ID:        taskID,
		ContextID: contextID,
		Status: TaskStatus{
			State:     TaskStateInProgress,
			Timestamp: statusTimestamp(),
			Message:   message,
		},
		Artifacts: []*Artifact{},
		History:   []*Message{},
		Kind:      KindTask,
	}
}

// NewCompletedTask builds the terminal task for a delivered document.
//
// The agent message carries a descriptive text part, a file part referencing
// the uploaded document, and optionally the document itself as an inline
// base64 data part. The artifact mirrors the deliverable parts (everything
// but the descriptive text). History is the original user prompt followed by
// the same agent message object that the status embeds, so ids never diverge
// between the two serializations.
func NewCompletedTask(taskID, contextID, prompt, fileURL, inlineData string) *Task {
	parts := []Part{NewTextPart(completedText)}
	if fileURL != "" {
		parts = append(parts, NewFilePart(fileURL, DocumentFileName, DocumentMimeType))
	}
	if inlineData != "" {
		parts = append(parts, NewDataPart(inlineData))
	}

	agentMessage := NewAgentMessage(parts, NewMessageID(), taskID)
	userMessage := NewUserMessage(prompt)
	artifact := NewArtifact(ArtifactName, parts[1:])

	return &Task{
		ID:        taskID,
		ContextID: contextID,
		Status: TaskStatus{
			State:     TaskStateCompleted,
			Timestamp: statusTimestamp(),
			Message:   agentMessage,
		},
		Artifacts: []*Artifact{artifact},
		History:   []*Message{userMessage, agentMessage},
		Kind:      KindTask,
	}
}
