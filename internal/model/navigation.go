// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Link target values
const (
	TargetSelf  = "_self"
	TargetBlank = "_blank"
)

// ValidTargets contains all valid link target values.
var ValidTargets = []string{TargetSelf, TargetBlank}

// NavigationItem represents an entry in the public site menu.
// Items either link to a page (PageID set) or carry a raw URL.
type NavigationItem struct {
	ID        int64         `json:"id"`
	ParentID  sql.NullInt64 `json:"-"`
	LinkKey   string        `json:"link_key"`
	TitleBg   string        `json:"title_bg"`
	TitleEn   string        `json:"title_en"`
	URL       string        `json:"url"`
	PageID    sql.NullInt64 `json:"-"`
	Target    string        `json:"target"`
	Position  int64         `json:"position"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsValidTarget checks if a target value is valid.
func IsValidTarget(target string) bool {
	for _, t := range ValidTargets {
		if t == target {
			return true
		}
	}
	return false
}
