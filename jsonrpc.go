// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package prd

import (
	"fmt"
	"strconv"

	"github.com/go-json-experiment/json"
)

// Version is the JSON-RPC protocol version, always "2.0".
const Version = "2.0"

// RequestID holds a JSON-RPC request id, which callers may send as a string,
// a number, or omit entirely.
type RequestID struct {
	value any
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *RequestID) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.(type) {
	case string, float64, nil:
		id.value = v
	default:
		return fmt.Errorf("request id must be a string or number, got %T", v)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (id RequestID) MarshalJSON() ([]byte, error) {
	if id.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(id.value)
}

// String renders the id for echoing into a response envelope. An absent id
// renders as the empty string.
func (id RequestID) String() string {
	switch v := id.value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Request is the inbound JSON-RPC 2.0 request object.
type Request struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      RequestID `json:"id,omitzero"`
	Method  string    `json:"method,omitzero"`
	Params  *Params   `json:"params"`
}

// Params carries the message to process and the optional delivery
// configuration.
type Params struct {
	Message       *RequestMessage `json:"message"`
	Configuration *Configuration  `json:"configuration"`
}

// RequestMessage is the inbound message: an ordered sequence of parts from
// which the user prompt is extracted.
type RequestMessage struct {
	Role  Role   `json:"role,omitzero"`
	Parts []Part `json:"parts"`
}

// Configuration selects the delivery mode. Blocking defaults to true;
// non-blocking requests must carry a push notification config.
type Configuration struct {
	Blocking               *bool                   `json:"blocking"`
	PushNotificationConfig *PushNotificationConfig `json:"pushNotificationConfig"`
}

// PushNotificationConfig names the webhook that receives the terminal
// envelope of a non-blocking task.
type PushNotificationConfig struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// Validate ensures the push notification config is usable.
func (c *PushNotificationConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("push notification config is required")
	}
	if c.URL == "" {
		return fmt.Errorf("push notification URL is required")
	}
	if c.Token == "" {
		return fmt.Errorf("push notification token is required")
	}
	return nil
}

// RPCError is the wire error object of an Envelope.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Envelope is the JSON-RPC 2.0 response wrapper. Exactly one of Result and
// Error is non-null, never both.
type Envelope struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      string    `json:"id"`
	Result  *Task     `json:"result"`
	Error   *RPCError `json:"error"`
}

// NewResultEnvelope wraps a task into a success envelope.
func NewResultEnvelope(id string, task *Task) *Envelope {
	return &Envelope{
		JSONRPC: Version,
		ID:      id,
		Result:  task,
	}
}

// NewErrorEnvelope wraps a failure into an error envelope with a null
// result.
func NewErrorEnvelope(id string, err error) *Envelope {
	return &Envelope{
		JSONRPC: Version,
		ID:      id,
		Error:   AsRPCError(err),
	}
}

// FallbackEnvelope hand-builds a minimal internal-error envelope string for
// the case where envelope serialization itself fails. Callers must always be
// able to emit a well-formed envelope, even then.
func FallbackEnvelope(id string) string {
	return `{"jsonrpc":"2.0","id":` + strconv.Quote(id) +
		`,"result":null,"error":{"code":-32603,"message":"Internal error"}}`
}
