// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package tree

import (
	"database/sql"
	"testing"
)

type row struct {
	ID       int64
	ParentID sql.NullInt64
	Slug     string
}

func rowID(r row) int64             { return r.ID }
func rowParent(r row) sql.NullInt64 { return r.ParentID }

func child(id, parent int64, slug string) row {
	return row{ID: id, ParentID: sql.NullInt64{Int64: parent, Valid: true}, Slug: slug}
}

func root(id int64, slug string) row { return row{ID: id, Slug: slug} }

func TestBuild(t *testing.T) {
	// Global display order: position ASC, id ASC.
	items := []row{
		root(1, "home"),
		root(2, "school"),
		child(4, 2, "school-history"),
		child(5, 2, "school-team"),
		root(3, "contacts"),
	}

	nodes := Build(items, rowID, rowParent)

	if len(nodes) != 3 {
		t.Fatalf("len(nodes) = %d, want 3", len(nodes))
	}
	if nodes[0].Item.Slug != "home" {
		t.Errorf("nodes[0] = %q, want %q", nodes[0].Item.Slug, "home")
	}
	if nodes[1].Item.Slug != "school" {
		t.Errorf("nodes[1] = %q, want %q", nodes[1].Item.Slug, "school")
	}
	if len(nodes[1].Children) != 2 {
		t.Fatalf("len(nodes[1].Children) = %d, want 2", len(nodes[1].Children))
	}
	if nodes[1].Children[0].Item.Slug != "school-history" {
		t.Errorf("first child = %q, want %q", nodes[1].Children[0].Item.Slug, "school-history")
	}
	if nodes[1].Children[1].Item.Slug != "school-team" {
		t.Errorf("second child = %q, want %q", nodes[1].Children[1].Item.Slug, "school-team")
	}
	if nodes[2].Item.Slug != "contacts" {
		t.Errorf("nodes[2] = %q, want %q", nodes[2].Item.Slug, "contacts")
	}
}

func TestBuildPreservesInputOrderWithinParent(t *testing.T) {
	// Siblings arrive interleaved with other parents' children. The builder
	// must keep each sibling group in arrival order, not re-sort it.
	items := []row{
		root(1, "a"),
		root(2, "b"),
		child(10, 1, "a-first"),
		child(20, 2, "b-first"),
		child(11, 1, "a-second"),
	}

	nodes := Build(items, rowID, rowParent)

	if len(nodes[0].Children) != 2 {
		t.Fatalf("len(a.Children) = %d, want 2", len(nodes[0].Children))
	}
	if nodes[0].Children[0].Item.Slug != "a-first" || nodes[0].Children[1].Item.Slug != "a-second" {
		t.Errorf("a children = %q, %q, want a-first, a-second",
			nodes[0].Children[0].Item.Slug, nodes[0].Children[1].Item.Slug)
	}
}

func TestBuildDropsOrphans(t *testing.T) {
	items := []row{
		root(1, "home"),
		child(2, 99, "orphan"),
		child(3, 2, "orphan-child"),
	}

	nodes := Build(items, rowID, rowParent)

	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	if got := Count(nodes); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
}

func TestBuildChildBeforeParent(t *testing.T) {
	// A child row can precede its parent in global order when positions
	// differ across levels.
	items := []row{
		child(2, 1, "early-child"),
		root(1, "late-parent"),
	}

	nodes := Build(items, rowID, rowParent)

	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	if len(nodes[0].Children) != 1 || nodes[0].Children[0].Item.Slug != "early-child" {
		t.Fatalf("child not attached to parent")
	}
}

func TestBuildSelfReference(t *testing.T) {
	items := []row{
		root(1, "home"),
		child(2, 2, "self-loop"),
	}

	nodes := Build(items, rowID, rowParent)

	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	if got := Count(nodes); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	if nodes := Build(nil, rowID, rowParent); len(nodes) != 0 {
		t.Errorf("Build(nil) = %d nodes, want 0", len(nodes))
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	items := []row{
		root(1, "home"),
		root(2, "school"),
		child(4, 2, "school-history"),
		child(5, 2, "school-team"),
		root(3, "contacts"),
	}

	flat := Flatten(Build(items, rowID, rowParent))

	if len(flat) != len(items) {
		t.Fatalf("len(flat) = %d, want %d", len(flat), len(items))
	}
	// Pre-order walk: home, school, school-history, school-team, contacts.
	want := []string{"home", "school", "school-history", "school-team", "contacts"}
	for i, w := range want {
		if flat[i].Slug != w {
			t.Errorf("flat[%d] = %q, want %q", i, flat[i].Slug, w)
		}
	}
}
