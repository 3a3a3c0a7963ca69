// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// RenderPDF lays the generated text out as a simple A4 document and returns
// the PDF bytes.
func RenderPDF(text string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Product Requirement Document", true)
	doc.SetMargins(20, 20, 20)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 11)

	// Core fonts only cover cp1252; translate so model output with
	// typographic punctuation does not corrupt the page.
	translate := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			doc.Ln(4)
			continue
		}
		doc.MultiCell(0, 5, translate(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
