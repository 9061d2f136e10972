// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"schoolsite/internal/cache"
	"schoolsite/internal/model"
	"schoolsite/internal/store"
	"schoolsite/internal/testutil"
)

func createNavItem(t *testing.T, q *store.Queries, linkKey string, parentID sql.NullInt64, position int64) model.NavigationItem {
	t.Helper()
	now := time.Now()
	item, err := q.CreateNavigationItem(context.Background(), store.CreateNavigationItemParams{
		ParentID:  parentID,
		LinkKey:   linkKey,
		TitleBg:   "БГ " + linkKey,
		TitleEn:   "EN " + linkKey,
		URL:       "/" + linkKey,
		Target:    model.TargetSelf,
		Position:  position,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateNavigationItem(%s): %v", linkKey, err)
	}
	return item
}

func TestNavigationTree(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	q := store.New(db)
	school := createNavItem(t, q, "school", sql.NullInt64{}, 0)
	createNavItem(t, q, "contacts", sql.NullInt64{}, 1)
	createNavItem(t, q, "history", sql.NullInt64{Int64: school.ID, Valid: true}, 0)

	svc := NewNavigationService(db, nil, 0)
	nodes := svc.Tree(context.Background())

	if len(nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want 2", len(nodes))
	}
	if nodes[0].LinkKey != "school" {
		t.Errorf("nodes[0].LinkKey = %q", nodes[0].LinkKey)
	}
	if len(nodes[0].Children) != 1 || nodes[0].Children[0].LinkKey != "history" {
		t.Errorf("school children = %+v", nodes[0].Children)
	}
	if nodes[1].LinkKey != "contacts" {
		t.Errorf("nodes[1].LinkKey = %q", nodes[1].LinkKey)
	}
}

func TestNavigationTreeCaching(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	q := store.New(db)
	createNavItem(t, q, "home", sql.NullInt64{}, 0)

	cacher := cache.NewSimpleMemoryCache(time.Minute)
	defer cacher.Close()
	svc := NewNavigationService(db, cacher, time.Minute)
	ctx := context.Background()

	if got := svc.Tree(ctx); len(got) != 1 {
		t.Fatalf("len(tree) = %d, want 1", len(got))
	}

	// A write bypassing Invalidate is not visible until the cache is dropped.
	createNavItem(t, q, "news", sql.NullInt64{}, 1)
	if got := svc.Tree(ctx); len(got) != 1 {
		t.Errorf("len(tree) = %d before invalidation, want 1", len(got))
	}

	svc.Invalidate(ctx)
	if got := svc.Tree(ctx); len(got) != 2 {
		t.Errorf("len(tree) = %d after invalidation, want 2", len(got))
	}
}

func TestNavigationTreeFallback(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	cleanup() // close the DB up front to force query failure

	svc := NewNavigationService(db, nil, 0)
	nodes := svc.Tree(context.Background())

	if len(nodes) != 3 {
		t.Fatalf("len(fallback) = %d, want 3", len(nodes))
	}
	if nodes[0].LinkKey != "home" || nodes[2].LinkKey != "contacts" {
		t.Errorf("fallback = %+v", nodes)
	}
}
