// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

// Package prd provides the wire types and envelope builders for the PRD
// agent's A2A task protocol: Parts, Messages, Tasks, Artifacts, and the
// JSON-RPC 2.0 envelope they travel in.
package prd

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// PartKind discriminates the Part union.
type PartKind string

// Valid part kinds.
const (
	PartKindText PartKind = "text"
	PartKindFile PartKind = "file"
	PartKindData PartKind = "data"
)

// Part is a tagged fragment of a Message or Artifact. Exactly one kind is
// set per part; fields that do not belong to the kind serialize as explicit
// null so consumers see a stable positional schema.
type Part struct {
	Kind     PartKind `json:"kind"`
	Text     *string  `json:"text"`
	FileURL  *string  `json:"file_url"`
	FileName *string  `json:"file_name"`
	MimeType *string  `json:"mime_type"`
	Data     any      `json:"data"`
}

// NewTextPart creates a Part of kind "text".
func NewTextPart(text string) Part {
	return Part{
		Kind: PartKindText,
		Text: &text,
	}
}

// NewFilePart creates a Part of kind "file" referencing an uploaded document.
func NewFilePart(fileURL, fileName, mimeType string) Part {
	return Part{
		Kind:     PartKindFile,
		FileURL:  &fileURL,
		FileName: &fileName,
		MimeType: &mimeType,
	}
}

// NewDataPart creates a Part of kind "data" carrying an opaque payload,
// typically a base64-encoded document or a nested sequence of sub-parts.
func NewDataPart(data any) Part {
	return Part{
		Kind: PartKindData,
		Data: data,
	}
}

// Validate ensures the Part carries the fields its kind requires.
func (p Part) Validate() error {
	switch p.Kind {
	case PartKindText:
		if p.Text == nil {
			return fmt.Errorf("text part must carry text")
		}
	case PartKindFile:
		if p.FileURL == nil || *p.FileURL == "" {
			return fmt.Errorf("file part must carry a file URL")
		}
	case PartKindData:
		if p.Data == nil {
			return fmt.Errorf("data part must carry a payload")
		}
	default:
		return fmt.Errorf("invalid part kind: %q", p.Kind)
	}
	return nil
}

// DataParts interprets a data part's payload as an ordered sequence of
// sub-parts. It returns nil when the part is not a data part or the payload
// is not a part sequence (for example a base64 string).
func (p Part) DataParts() []Part {
	if p.Kind != PartKindData || p.Data == nil {
		return nil
	}

	raw, err := json.Marshal(p.Data)
	if err != nil {
		return nil
	}

	var parts []Part
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil
	}
	return parts
}
