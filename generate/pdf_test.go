// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderPDF(t *testing.T) {
	tests := map[string]struct {
		text string
	}{
		"single line": {
			text: "Product Requirement Document",
		},
		"multi line with blanks": {
			text: "# Overview\n\nThe product does things.\n\n## Goals\n- ship",
		},
		"typographic punctuation": {
			text: "Scope — “MVP only”",
		},
		"long paragraph wraps": {
			text: strings.Repeat("requirements ", 200),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := RenderPDF(tt.text)
			if err != nil {
				t.Fatalf("RenderPDF() error = %v", err)
			}
			if !bytes.HasPrefix(got, []byte("%PDF-")) {
				t.Errorf("RenderPDF() output does not start with a PDF header")
			}
			if len(got) < 100 {
				t.Errorf("RenderPDF() produced %d bytes, implausibly small", len(got))
			}
		})
	}
}
