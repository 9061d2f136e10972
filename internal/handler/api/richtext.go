// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"schoolsite/internal/model"
)

// htmlSanitizer strips dangerous markup from stored rich-text bodies.
// UGCPolicy allows the usual user-generated-content tags while removing
// <script>, event handlers and similar vectors.
var htmlSanitizer = bluemonday.UGCPolicy()

// sanitizeBody cleans a rich-text body on write. HTML bodies are sanitized
// before storage; markdown is stored verbatim and sanitized at render time.
func sanitizeBody(format, body string) string {
	if format == model.BodyFormatHTML {
		return htmlSanitizer.Sanitize(body)
	}
	return body
}

// renderBody converts a stored body to safe HTML for ?render=true responses.
func renderBody(format, body string) (string, error) {
	if format == model.BodyFormatMarkdown {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(body), &buf); err != nil {
			return "", fmt.Errorf("rendering markdown: %w", err)
		}
		return htmlSanitizer.Sanitize(buf.String()), nil
	}
	return htmlSanitizer.Sanitize(body), nil
}

// validateBodyFormat checks a submitted body format, defaulting empty input
// to HTML. Returns the effective format and a field error map on failure.
func validateBodyFormat(format string) (string, map[string]string) {
	if format == "" {
		return model.BodyFormatHTML, nil
	}
	if !model.IsValidBodyFormat(format) {
		return "", map[string]string{"body_format": "Body format must be 'html' or 'markdown'"}
	}
	return format, nil
}
