// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package reorder turns a submitted item list into per-row position moves.
//
// A reorder request carries an ordered list of ids with optional explicit
// positions. Items omitted from the request keep their stored positions, so
// a partial submission moves only the rows it names. Duplicate resulting
// positions are allowed; listings break ties by id.
package reorder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrEmpty is returned when the request body decodes to no items.
var ErrEmpty = errors.New("reorder: no items submitted")

// Item is one entry of a reorder request. Position is optional; when absent
// the item's index in the submitted list is used.
type Item struct {
	ID       int64  `json:"id"`
	Position *int64 `json:"position,omitempty"`
}

// Request is the body of a reorder call.
type Request struct {
	Items []Item `json:"items"`
}

// Move is a resolved position assignment for one row.
type Move struct {
	ID       int64
	Position int64
}

// Parse decodes and validates a reorder request body.
func Parse(r io.Reader) ([]Move, error) {
	var req Request
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("reorder: decoding request: %w", err)
	}
	return Resolve(req.Items)
}

// Resolve turns submitted items into concrete moves. Explicit positions win;
// items without one take their index in the list.
func Resolve(items []Item) ([]Move, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	moves := make([]Move, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for i, item := range items {
		if item.ID <= 0 {
			return nil, fmt.Errorf("reorder: item %d has no id", i)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("reorder: duplicate id %d", item.ID)
		}
		seen[item.ID] = struct{}{}
		pos := int64(i)
		if item.Position != nil {
			if *item.Position < 0 {
				return nil, fmt.Errorf("reorder: item %d has negative position", item.ID)
			}
			pos = *item.Position
		}
		moves = append(moves, Move{ID: item.ID, Position: pos})
	}
	return moves, nil
}
