// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Body formats for rich-text fields.
const (
	BodyFormatHTML     = "html"
	BodyFormatMarkdown = "markdown"
)

// ValidBodyFormats contains all accepted body format values.
var ValidBodyFormats = []string{BodyFormatHTML, BodyFormatMarkdown}

// Page represents a site page. Pages form a two-level tree in practice
// (section roots with child pages) ordered by Position within each parent.
type Page struct {
	ID         int64         `json:"id"`
	ParentID   sql.NullInt64 `json:"-"`
	Slug       string        `json:"slug"`
	TitleBg    string        `json:"title_bg"`
	TitleEn    string        `json:"title_en"`
	BodyBg     string        `json:"body_bg"`
	BodyEn     string        `json:"body_en"`
	BodyFormat string        `json:"body_format"`
	Position   int64         `json:"position"`
	ShowInMenu bool          `json:"show_in_menu"`
	IsActive   bool          `json:"is_active"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// IsValidBodyFormat checks if a body format value is valid.
func IsValidBodyFormat(format string) bool {
	for _, f := range ValidBodyFormats {
		if f == format {
			return true
		}
	}
	return false
}
