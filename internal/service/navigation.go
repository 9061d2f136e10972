// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"schoolsite/internal/cache"
	"schoolsite/internal/model"
	"schoolsite/internal/store"
	"schoolsite/internal/tree"
)

// navTreeCacheKey is the cache key for the assembled public navigation tree.
const navTreeCacheKey = "navigation:tree"

// NavNode is one node of the public navigation tree.
type NavNode struct {
	ID       int64     `json:"id"`
	LinkKey  string    `json:"link_key"`
	TitleBg  string    `json:"title_bg"`
	TitleEn  string    `json:"title_en"`
	URL      string    `json:"url"`
	Target   string    `json:"target"`
	Children []NavNode `json:"children,omitempty"`
}

// NavigationService assembles and caches the public navigation tree.
type NavigationService struct {
	queries *store.Queries
	cache   *cache.TypedCache[[]NavNode]
}

// NewNavigationService creates a navigation service backed by the given
// cache. A nil cacher disables caching.
func NewNavigationService(db *sql.DB, cacher cache.Cacher, ttl time.Duration) *NavigationService {
	s := &NavigationService{
		queries: store.New(db),
	}
	if cacher != nil {
		s.cache = cache.NewTypedCache[[]NavNode](cacher, ttl)
	}
	return s
}

// Tree returns the navigation tree for the public site. The store failure
// path serves a static default so navigation never disappears entirely.
func (s *NavigationService) Tree(ctx context.Context) []NavNode {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, navTreeCacheKey); ok {
			return *cached
		}
	}

	items, err := s.queries.ListActiveNavigationItems(ctx)
	if err != nil {
		slog.Error("loading navigation items", "error", err)
		return FallbackNavTree()
	}

	nodes := buildNavTree(items)
	if s.cache != nil {
		_ = s.cache.Set(ctx, navTreeCacheKey, &nodes)
	}
	return nodes
}

// Invalidate drops the cached tree. Called after any navigation write.
func (s *NavigationService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, navTreeCacheKey)
	}
}

// buildNavTree converts flat navigation rows into nested NavNodes.
func buildNavTree(items []model.NavigationItem) []NavNode {
	built := tree.Build(items,
		func(i model.NavigationItem) int64 { return i.ID },
		func(i model.NavigationItem) sql.NullInt64 { return i.ParentID },
	)
	return convertNavNodes(built)
}

func convertNavNodes(nodes []*tree.Node[model.NavigationItem]) []NavNode {
	out := make([]NavNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, NavNode{
			ID:       n.Item.ID,
			LinkKey:  n.Item.LinkKey,
			TitleBg:  n.Item.TitleBg,
			TitleEn:  n.Item.TitleEn,
			URL:      n.Item.URL,
			Target:   n.Item.Target,
			Children: convertNavNodes(n.Children),
		})
	}
	return out
}

// FallbackNavTree is the minimal navigation served when the store is
// unavailable.
func FallbackNavTree() []NavNode {
	return []NavNode{
		{LinkKey: "home", TitleBg: "Начало", TitleEn: "Home", URL: "/", Target: model.TargetSelf},
		{LinkKey: "school", TitleBg: "Училището", TitleEn: "The School", URL: "/school", Target: model.TargetSelf},
		{LinkKey: "contacts", TitleBg: "Контакти", TitleEn: "Contacts", URL: "/contacts", Target: model.TargetSelf},
	}
}
