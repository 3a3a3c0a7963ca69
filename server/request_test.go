// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"
	"testing"

	prd "github.com/hngprojects/prd-agent"
)

func TestParseRequest(t *testing.T) {
	tests := map[string]struct {
		body         string
		wantPrompt   string
		wantBlocking bool
		wantCode     int
	}{
		"blocking by default": {
			body:         `{"jsonrpc":"2.0","id":"req-1","params":{"message":{"role":"user","parts":[{"kind":"text","text":"Build a todo app"}]}}}`,
			wantPrompt:   "Build a todo app",
			wantBlocking: true,
		},
		"explicit blocking": {
			body:         `{"jsonrpc":"2.0","id":"req-1","params":{"message":{"parts":[{"kind":"text","text":"Build a todo app"}]},"configuration":{"blocking":true}}}`,
			wantPrompt:   "Build a todo app",
			wantBlocking: true,
		},
		"non-blocking with webhook": {
			body:         `{"jsonrpc":"2.0","id":"req-1","params":{"message":{"parts":[{"kind":"text","text":"Build a todo app"}]},"configuration":{"blocking":false,"pushNotificationConfig":{"url":"https://caller.example/hook","token":"secret"}}}}`,
			wantPrompt:   "Build a todo app",
			wantBlocking: false,
		},
		"malformed json": {
			body:     `{"jsonrpc":`,
			wantCode: prd.CodeParseError,
		},
		"missing params": {
			body:     `{"jsonrpc":"2.0","id":"req-1"}`,
			wantCode: prd.CodeInvalidParams,
		},
		"missing message": {
			body:     `{"jsonrpc":"2.0","id":"req-1","params":{}}`,
			wantCode: prd.CodeInvalidParams,
		},
		"empty parts": {
			body:     `{"jsonrpc":"2.0","id":"req-1","params":{"message":{"parts":[]}}}`,
			wantCode: prd.CodeInvalidParams,
		},
		"no usable prompt": {
			body:     `{"jsonrpc":"2.0","id":"req-1","params":{"message":{"parts":[{"kind":"file","file_url":"https://x.example/a.pdf"}]}}}`,
			wantCode: prd.CodeInvalidParams,
		},
		"non-blocking without webhook": {
			body:     `{"jsonrpc":"2.0","id":"req-1","params":{"message":{"parts":[{"kind":"text","text":"Build a todo app"}]},"configuration":{"blocking":false}}}`,
			wantCode: prd.CodeInvalidParams,
		},
		"non-blocking with tokenless webhook": {
			body:     `{"jsonrpc":"2.0","id":"req-1","params":{"message":{"parts":[{"kind":"text","text":"Build a todo app"}]},"configuration":{"blocking":false,"pushNotificationConfig":{"url":"https://caller.example/hook"}}}}`,
			wantCode: prd.CodeInvalidParams,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := ParseRequest([]byte(tt.body))
			if tt.wantCode != 0 {
				if err == nil {
					t.Fatalf("ParseRequest() error = nil, want code %d", tt.wantCode)
				}
				if !errors.Is(err, prd.NewError(tt.wantCode, "")) {
					t.Errorf("ParseRequest() error = %v, want code %d", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest() error = %v", err)
			}
			if req.Prompt != tt.wantPrompt {
				t.Errorf("Prompt = %q, want %q", req.Prompt, tt.wantPrompt)
			}
			if req.Blocking != tt.wantBlocking {
				t.Errorf("Blocking = %v, want %v", req.Blocking, tt.wantBlocking)
			}
			if req.RequestID != "req-1" {
				t.Errorf("RequestID = %q, want %q", req.RequestID, "req-1")
			}
			if !req.Blocking && req.Notification == nil {
				t.Error("non-blocking request parsed without a notification config")
			}
		})
	}
}

func TestParseRequestGeneratesRequestID(t *testing.T) {
	body := `{"jsonrpc":"2.0","params":{"message":{"parts":[{"kind":"text","text":"Build a todo app"}]}}}`

	req, err := ParseRequest([]byte(body))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.RequestID == "" {
		t.Error("RequestID is empty, want a generated id")
	}
}

func TestExtractPrompt(t *testing.T) {
	tests := map[string]struct {
		parts []prd.Part
		want  string
	}{
		"first text part wins": {
			parts: []prd.Part{
				prd.NewTextPart("first"),
				prd.NewTextPart("second"),
			},
			want: "first",
		},
		"empty text skipped": {
			parts: []prd.Part{
				prd.NewTextPart(""),
				prd.NewTextPart("second"),
			},
			want: "second",
		},
		"text beats earlier data": {
			parts: []prd.Part{
				prd.NewDataPart([]prd.Part{prd.NewTextPart("nested")}),
				prd.NewTextPart("direct"),
			},
			want: "direct",
		},
		"nested data scanned backward": {
			parts: []prd.Part{
				prd.NewDataPart([]prd.Part{
					prd.NewTextPart("old msg"),
					prd.NewTextPart("new msg"),
				}),
			},
			want: "new msg",
		},
		"nested reverse scan with markup and padding": {
			parts: []prd.Part{
				prd.NewDataPart([]prd.Part{
					prd.NewTextPart("<b>old</b>"),
					prd.NewTextPart("  new msg  "),
				}),
			},
			want: "new msg",
		},
		"nested markup stripped": {
			parts: []prd.Part{
				prd.NewDataPart([]prd.Part{
					prd.NewTextPart("  <p>Build a <b>todo</b> app</p>  "),
				}),
			},
			want: "Build a todo app",
		},
		"nested markup-only text skipped": {
			parts: []prd.Part{
				prd.NewDataPart([]prd.Part{
					prd.NewTextPart("usable"),
					prd.NewTextPart("<br/>"),
				}),
			},
			want: "usable",
		},
		"data payload not a part sequence": {
			parts: []prd.Part{
				prd.NewDataPart("aGVsbG8="),
			},
			want: "",
		},
		"no usable prompt": {
			parts: []prd.Part{
				prd.NewFilePart("https://x.example/a.pdf", "a.pdf", "application/pdf"),
			},
			want: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ExtractPrompt(tt.parts); got != tt.want {
				t.Errorf("ExtractPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPeekRequestID(t *testing.T) {
	tests := map[string]struct {
		body      string
		want      string
		generated bool
	}{
		"truncated body": {
			// The probe fails on truncation, so a fresh id is generated.
			body:      `{"id":"req-1","params":`,
			generated: true,
		},
		"id from valid prefix": {
			body: `{"id":"req-1"}`,
			want: "req-1",
		},
		"numeric id": {
			body: `{"id":7}`,
			want: "7",
		},
		"garbage body": {
			body:      `not json`,
			generated: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := peekRequestID([]byte(tt.body))
			if tt.generated {
				if got == "" {
					t.Error("peekRequestID() = empty, want generated id")
				}
				return
			}
			if got != tt.want {
				t.Errorf("peekRequestID() = %q, want %q", got, tt.want)
			}
		})
	}
}
