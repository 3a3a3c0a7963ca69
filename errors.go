// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package prd

import (
	"errors"
	"fmt"
)

// JSON-RPC error codes used by the protocol.
const (
	// CodeParseError indicates a malformed request body.
	CodeParseError = -32700
	// CodeInvalidParams indicates missing or unusable request parameters.
	CodeInvalidParams = -32602
	// CodeInternalError indicates an unclassified failure.
	CodeInternalError = -32603

	// CodeGenerationFailed indicates the generation backend failed or
	// produced empty output.
	CodeGenerationFailed = -32001
	// CodeDecodeError indicates the generated payload could not be decoded
	// to document bytes.
	CodeDecodeError = -32002
	// CodeRateLimited indicates the upload backend rate-limited the agent
	// after the retry budget was exhausted.
	CodeRateLimited = -32003
	// CodeUploadFailed indicates a permanent upload failure (authentication,
	// quota, size, or unclassified).
	CodeUploadFailed = -32004
)

// Error is a classified protocol failure carrying its JSON-RPC code. It is
// produced at collaborator boundaries so classification is a property of the
// value, not of its message text.
type Error struct {
	Code    int
	Message string
	Cause   error
}

// NewError creates a classified Error.
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithCause creates a classified Error wrapping an underlying cause.
func NewErrorWithCause(code int, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("prd error %d: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("prd error %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// AsRPCError converts any error into the wire error object. Classified
// errors keep their code and message; everything else surfaces as an
// internal error so callers never see a raw failure.
func AsRPCError(err error) *RPCError {
	var classified *Error
	if errors.As(err, &classified) {
		return &RPCError{
			Code:    classified.Code,
			Message: classified.Message,
		}
	}
	return &RPCError{
		Code:    CodeInternalError,
		Message: "Failed to process request: " + err.Error(),
	}
}
