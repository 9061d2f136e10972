// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package reorder

import (
	"errors"
	"strings"
	"testing"
)

func pos(p int64) *int64 { return &p }

func TestResolveExplicitPositions(t *testing.T) {
	moves, err := Resolve([]Item{
		{ID: 3, Position: pos(0)},
		{ID: 1, Position: pos(1)},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []Move{{ID: 3, Position: 0}, {ID: 1, Position: 1}}
	if len(moves) != len(want) {
		t.Fatalf("len(moves) = %d, want %d", len(moves), len(want))
	}
	for i, w := range want {
		if moves[i] != w {
			t.Errorf("moves[%d] = %+v, want %+v", i, moves[i], w)
		}
	}
}

func TestResolveIndexFallback(t *testing.T) {
	moves, err := Resolve([]Item{{ID: 5}, {ID: 2}, {ID: 9}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for i, m := range moves {
		if m.Position != int64(i) {
			t.Errorf("moves[%d].Position = %d, want %d", i, m.Position, i)
		}
	}
}

func TestResolveMixed(t *testing.T) {
	moves, err := Resolve([]Item{
		{ID: 5},
		{ID: 2, Position: pos(10)},
		{ID: 9},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if moves[0].Position != 0 || moves[1].Position != 10 || moves[2].Position != 2 {
		t.Errorf("positions = %d, %d, %d, want 0, 10, 2",
			moves[0].Position, moves[1].Position, moves[2].Position)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{"empty", nil},
		{"missing id", []Item{{Position: pos(0)}}},
		{"negative id", []Item{{ID: -1}}},
		{"duplicate id", []Item{{ID: 1}, {ID: 1}}},
		{"negative position", []Item{{ID: 1, Position: pos(-2)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.items); err == nil {
				t.Errorf("Resolve(%v) = nil error, want error", tt.items)
			}
		})
	}
}

func TestResolveEmptyIsErrEmpty(t *testing.T) {
	_, err := Resolve(nil)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestParse(t *testing.T) {
	body := `{"items": [{"id": 3, "position": 0}, {"id": 1}]}`
	moves, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("len(moves) = %d, want 2", len(moves))
	}
	if moves[0] != (Move{ID: 3, Position: 0}) {
		t.Errorf("moves[0] = %+v", moves[0])
	}
	if moves[1] != (Move{ID: 1, Position: 1}) {
		t.Errorf("moves[1] = %+v", moves[1])
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse(strings.NewReader(`{"items": "nope"}`)); err == nil {
		t.Error("Parse accepted malformed body")
	}
	if _, err := Parse(strings.NewReader(`{}`)); !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse({}) err = %v, want ErrEmpty", err)
	}
}
