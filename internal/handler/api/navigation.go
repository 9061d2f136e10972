// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"schoolsite/internal/model"
	"schoolsite/internal/store"
	"schoolsite/internal/tree"
	"schoolsite/internal/util"
)

// NavigationItemResponse is the API representation of a navigation item.
type NavigationItemResponse struct {
	ID        int64     `json:"id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	LinkKey   string    `json:"link_key"`
	TitleBg   string    `json:"title_bg"`
	TitleEn   string    `json:"title_en"`
	URL       string    `json:"url"`
	PageID    *int64    `json:"page_id,omitempty"`
	Target    string    `json:"target"`
	Position  int64     `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminNavNode is one node of the admin navigation tree. It includes
// inactive items and always serializes children.
type AdminNavNode struct {
	ID       int64          `json:"id"`
	LinkKey  string         `json:"link_key"`
	TitleBg  string         `json:"title_bg"`
	TitleEn  string         `json:"title_en"`
	URL      string         `json:"url"`
	Target   string         `json:"target"`
	IsActive bool           `json:"is_active"`
	Children []AdminNavNode `json:"children"`
}

// CreateNavigationItemRequest is the request body for creating an item.
type CreateNavigationItemRequest struct {
	ParentID *int64 `json:"parent_id"`
	LinkKey  string `json:"link_key"`
	TitleBg  string `json:"title_bg"`
	TitleEn  string `json:"title_en"`
	URL      string `json:"url"`
	PageID   *int64 `json:"page_id"`
	Target   string `json:"target"`
	Position *int64 `json:"position"`
	IsActive *bool  `json:"is_active"`
}

// UpdateNavigationItemRequest is the request body for updating an item.
// Omitted fields keep their stored values.
type UpdateNavigationItemRequest struct {
	ParentID *int64  `json:"parent_id"`
	LinkKey  *string `json:"link_key"`
	TitleBg  *string `json:"title_bg"`
	TitleEn  *string `json:"title_en"`
	URL      *string `json:"url"`
	PageID   *int64  `json:"page_id"`
	Target   *string `json:"target"`
	Position *int64  `json:"position"`
	IsActive *bool   `json:"is_active"`
}

func navigationItemToResponse(n model.NavigationItem) NavigationItemResponse {
	return NavigationItemResponse{
		ID:        n.ID,
		ParentID:  util.PtrFromNullInt64(n.ParentID),
		LinkKey:   n.LinkKey,
		TitleBg:   n.TitleBg,
		TitleEn:   n.TitleEn,
		URL:       n.URL,
		PageID:    util.PtrFromNullInt64(n.PageID),
		Target:    n.Target,
		Position:  n.Position,
		IsActive:  n.IsActive,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NavigationTree handles GET /api/v1/navigation/tree. The service caches the
// assembled tree and falls back to a static default when the store fails, so
// the public menu never errors out.
func (h *Handler) NavigationTree(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.nav.Tree(r.Context()), nil)
}

// AdminNavigationTree handles GET /api/v1/navigation/tree/all.
func (h *Handler) AdminNavigationTree(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListAllNavigationItems(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load navigation tree")
		return
	}

	roots := tree.Build(items, navItemID, navItemParentID)
	WriteSuccess(w, convertAdminNavNodes(roots), nil)
}

func navItemID(n model.NavigationItem) int64 { return n.ID }

func navItemParentID(n model.NavigationItem) sql.NullInt64 { return n.ParentID }

func convertAdminNavNodes(nodes []*tree.Node[model.NavigationItem]) []AdminNavNode {
	result := make([]AdminNavNode, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, AdminNavNode{
			ID:       n.Item.ID,
			LinkKey:  n.Item.LinkKey,
			TitleBg:  n.Item.TitleBg,
			TitleEn:  n.Item.TitleEn,
			URL:      n.Item.URL,
			Target:   n.Item.Target,
			IsActive: n.Item.IsActive,
			Children: convertAdminNavNodes(n.Children),
		})
	}
	return result
}

// ListNavigationItems handles GET /api/v1/navigation. Flat active list.
func (h *Handler) ListNavigationItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListActiveNavigationItems(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list navigation items")
		return
	}
	WriteSuccess(w, navItemsToResponses(items), nil)
}

// ListAllNavigationItems handles GET /api/v1/navigation/all.
func (h *Handler) ListAllNavigationItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListAllNavigationItems(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list navigation items")
		return
	}
	WriteSuccess(w, navItemsToResponses(items), nil)
}

func navItemsToResponses(items []model.NavigationItem) []NavigationItemResponse {
	responses := make([]NavigationItemResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, navigationItemToResponse(n))
	}
	return responses
}

// GetNavigationItem handles GET /api/v1/navigation/{id}.
func (h *Handler) GetNavigationItem(w http.ResponseWriter, r *http.Request) {
	item, ok := requireEntityByID(w, r, "navigation item", func(id int64) (model.NavigationItem, error) {
		return h.queries.GetNavigationItemByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, navigationItemToResponse(item), nil)
}

// CreateNavigationItem handles POST /api/v1/navigation.
func (h *Handler) CreateNavigationItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateNavigationItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.LinkKey == "" {
		validationErrors["link_key"] = "Link key is required"
	}
	if req.TitleBg == "" {
		validationErrors["title_bg"] = "Bulgarian title is required"
	}
	if req.Target == "" {
		req.Target = model.TargetSelf
	}
	if !model.IsValidTarget(req.Target) {
		validationErrors["target"] = "Target must be '_self' or '_blank'"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	if !checkUnique(w, "link_key", func() (bool, error) {
		return h.queries.NavigationLinkKeyExists(ctx, req.LinkKey, 0)
	}) {
		return
	}

	now := time.Now()
	params := store.CreateNavigationItemParams{
		ParentID:  util.NullInt64FromPtr(req.ParentID),
		LinkKey:   req.LinkKey,
		TitleBg:   req.TitleBg,
		TitleEn:   req.TitleEn,
		URL:       req.URL,
		PageID:    util.NullInt64FromPtr(req.PageID),
		Target:    req.Target,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	item, err := h.queries.CreateNavigationItem(ctx, params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteConflict(w, "Navigation link key already exists")
			return
		}
		WriteInternalError(w, "Failed to create navigation item")
		return
	}

	h.nav.Invalidate(ctx)
	WriteCreated(w, navigationItemToResponse(item))
}

// UpdateNavigationItem handles PUT /api/v1/navigation/{id}.
func (h *Handler) UpdateNavigationItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "navigation item", func(id int64) (model.NavigationItem, error) {
		return h.queries.GetNavigationItemByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateNavigationItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateNavigationItemParams{
		ID:        existing.ID,
		ParentID:  existing.ParentID,
		LinkKey:   existing.LinkKey,
		TitleBg:   existing.TitleBg,
		TitleEn:   existing.TitleEn,
		URL:       existing.URL,
		PageID:    existing.PageID,
		Target:    existing.Target,
		Position:  existing.Position,
		IsActive:  existing.IsActive,
		UpdatedAt: time.Now(),
	}

	if req.ParentID != nil {
		if *req.ParentID == existing.ID {
			WriteValidationError(w, map[string]string{"parent_id": "Item cannot be its own parent"})
			return
		}
		if *req.ParentID == 0 {
			params.ParentID = sql.NullInt64{}
		} else {
			if !checkParentChain(w, "navigation_item", existing.ID, *req.ParentID, func(id int64) (sql.NullInt64, error) {
				item, err := h.queries.GetNavigationItemByID(ctx, id)
				if err != nil {
					return sql.NullInt64{}, err
				}
				return item.ParentID, nil
			}) {
				return
			}
			params.ParentID = sql.NullInt64{Int64: *req.ParentID, Valid: true}
		}
	}
	if req.LinkKey != nil {
		if !checkUnique(w, "link_key", func() (bool, error) {
			return h.queries.NavigationLinkKeyExists(ctx, *req.LinkKey, existing.ID)
		}) {
			return
		}
		params.LinkKey = *req.LinkKey
	}
	if req.Target != nil {
		if !model.IsValidTarget(*req.Target) {
			WriteValidationError(w, map[string]string{"target": "Target must be '_self' or '_blank'"})
			return
		}
		params.Target = *req.Target
	}
	if req.TitleBg != nil {
		params.TitleBg = *req.TitleBg
	}
	if req.TitleEn != nil {
		params.TitleEn = *req.TitleEn
	}
	if req.URL != nil {
		params.URL = *req.URL
	}
	if req.PageID != nil {
		if *req.PageID == 0 {
			params.PageID = sql.NullInt64{}
		} else {
			params.PageID = sql.NullInt64{Int64: *req.PageID, Valid: true}
		}
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	item, err := h.queries.UpdateNavigationItem(ctx, params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteConflict(w, "Navigation link key already exists")
			return
		}
		WriteInternalError(w, "Failed to update navigation item")
		return
	}

	h.nav.Invalidate(ctx)
	WriteSuccess(w, navigationItemToResponse(item), nil)
}

// DeleteNavigationItem handles DELETE /api/v1/navigation/{id}. Permanent
// deletion cascades to child items.
func (h *Handler) DeleteNavigationItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	deleteEntity(w, r, model.EntityNavigationItem,
		func(id int64) error { return h.queries.SoftDeleteNavigationItem(ctx, id, now) },
		func(id int64) error { return h.queries.HardDeleteNavigationItem(ctx, id) })
	h.nav.Invalidate(ctx)
}

// ReorderNavigationItems handles POST /api/v1/navigation/reorder.
func (h *Handler) ReorderNavigationItems(w http.ResponseWriter, r *http.Request) {
	h.applyReorder(w, r, model.EntityNavigationItem,
		func(q *store.Queries, id, position int64, now time.Time) error {
			return q.UpdateNavigationItemPosition(r.Context(), id, position, now)
		})
	h.nav.Invalidate(r.Context())
}
