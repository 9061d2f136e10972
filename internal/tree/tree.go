// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package tree assembles flat, position-ordered rows into nested trees.
//
// Input rows are expected in global display order (position, then id). The
// builder partitions them by parent without re-sorting, so siblings keep the
// order the query produced. Rows whose parent is missing from the input are
// dropped together with their descendants.
package tree

import "database/sql"

// Node wraps one input row together with its assembled children.
type Node[T any] struct {
	Item     T
	Children []*Node[T]
}

// Build assembles nested trees from flat rows. The id and parentID funcs
// extract the row's identity and parent reference.
//
// Roots and sibling groups preserve the input order. A row referencing a
// parent not present in items is unreachable from the result.
func Build[T any](items []T, id func(T) int64, parentID func(T) sql.NullInt64) []*Node[T] {
	nodes := make(map[int64]*Node[T], len(items))
	for _, item := range items {
		nodes[id(item)] = &Node[T]{Item: item}
	}

	var roots []*Node[T]
	for _, item := range items {
		node := nodes[id(item)]
		pid := parentID(item)
		if !pid.Valid {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[pid.Int64]
		if !ok || pid.Int64 == id(item) {
			// Orphan or self-reference: unreachable, drop silently.
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// Flatten walks the trees depth-first and returns the rows in pre-order.
// For trees built from globally ordered input this reproduces a valid
// display order.
func Flatten[T any](nodes []*Node[T]) []T {
	var out []T
	var walk func(ns []*Node[T])
	walk = func(ns []*Node[T]) {
		for _, n := range ns {
			out = append(out, n.Item)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

// Count returns the number of reachable rows across the trees.
func Count[T any](nodes []*Node[T]) int {
	n := 0
	for _, node := range nodes {
		n += 1 + Count(node.Children)
	}
	return n
}
