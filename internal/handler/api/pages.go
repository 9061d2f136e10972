// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"schoolsite/internal/model"
	"schoolsite/internal/store"
	"schoolsite/internal/tree"
	"schoolsite/internal/util"
)

// PageResponse is the API representation of a page.
type PageResponse struct {
	ID         int64     `json:"id"`
	ParentID   *int64    `json:"parent_id,omitempty"`
	Slug       string    `json:"slug"`
	TitleBg    string    `json:"title_bg"`
	TitleEn    string    `json:"title_en"`
	BodyBg     string    `json:"body_bg"`
	BodyEn     string    `json:"body_en"`
	BodyFormat string    `json:"body_format"`
	Position   int64     `json:"position"`
	ShowInMenu bool      `json:"show_in_menu"`
	IsActive   bool      `json:"is_active"`
	RenderedBg string    `json:"rendered_bg,omitempty"`
	RenderedEn string    `json:"rendered_en,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PageNode is one node of the public page tree. Leaves omit the empty
// children array.
type PageNode struct {
	ID       int64      `json:"id"`
	Slug     string     `json:"slug"`
	TitleBg  string     `json:"title_bg"`
	TitleEn  string     `json:"title_en"`
	Position int64      `json:"position"`
	Children []PageNode `json:"children,omitempty"`
}

// AdminPageNode is one node of the admin page tree. Unlike the public tree
// it includes inactive pages and always serializes children, so tree editors
// can distinguish a leaf from a missing subtree.
type AdminPageNode struct {
	ID       int64           `json:"id"`
	Slug     string          `json:"slug"`
	TitleBg  string          `json:"title_bg"`
	TitleEn  string          `json:"title_en"`
	Position int64           `json:"position"`
	IsActive bool            `json:"is_active"`
	Children []AdminPageNode `json:"children"`
}

// CreatePageRequest is the request body for creating a page. A missing slug
// is derived from the Bulgarian title.
type CreatePageRequest struct {
	ParentID   *int64 `json:"parent_id"`
	Slug       string `json:"slug"`
	TitleBg    string `json:"title_bg"`
	TitleEn    string `json:"title_en"`
	BodyBg     string `json:"body_bg"`
	BodyEn     string `json:"body_en"`
	BodyFormat string `json:"body_format"`
	Position   *int64 `json:"position"`
	ShowInMenu *bool  `json:"show_in_menu"`
	IsActive   *bool  `json:"is_active"`
}

// UpdatePageRequest is the request body for updating a page.
// All fields are optional; omitted fields keep their stored values.
type UpdatePageRequest struct {
	ParentID   *int64  `json:"parent_id"`
	Slug       *string `json:"slug"`
	TitleBg    *string `json:"title_bg"`
	TitleEn    *string `json:"title_en"`
	BodyBg     *string `json:"body_bg"`
	BodyEn     *string `json:"body_en"`
	BodyFormat *string `json:"body_format"`
	Position   *int64  `json:"position"`
	ShowInMenu *bool   `json:"show_in_menu"`
	IsActive   *bool   `json:"is_active"`
}

func pageToResponse(p model.Page) PageResponse {
	return PageResponse{
		ID:         p.ID,
		ParentID:   util.PtrFromNullInt64(p.ParentID),
		Slug:       p.Slug,
		TitleBg:    p.TitleBg,
		TitleEn:    p.TitleEn,
		BodyBg:     p.BodyBg,
		BodyEn:     p.BodyEn,
		BodyFormat: p.BodyFormat,
		Position:   p.Position,
		ShowInMenu: p.ShowInMenu,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func pagesToResponses(pages []model.Page) []PageResponse {
	responses := make([]PageResponse, 0, len(pages))
	for _, p := range pages {
		responses = append(responses, pageToResponse(p))
	}
	return responses
}

// renderPageBodies fills the rendered HTML fields when ?render=true.
func renderPageBodies(w http.ResponseWriter, r *http.Request, resp *PageResponse) bool {
	if r.URL.Query().Get("render") != "true" {
		return true
	}
	bg, err := renderBody(resp.BodyFormat, resp.BodyBg)
	if err != nil {
		WriteInternalError(w, "Failed to render page body")
		return false
	}
	en, err := renderBody(resp.BodyFormat, resp.BodyEn)
	if err != nil {
		WriteInternalError(w, "Failed to render page body")
		return false
	}
	resp.RenderedBg = bg
	resp.RenderedEn = en
	return true
}

// ListPages handles GET /api/v1/pages. Public: active pages in position order.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListActivePages(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list pages")
		return
	}
	WriteSuccess(w, pagesToResponses(pages), nil)
}

// ListAllPages handles GET /api/v1/pages/all. Admin: includes inactive pages.
func (h *Handler) ListAllPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListAllPages(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list pages")
		return
	}
	WriteSuccess(w, pagesToResponses(pages), nil)
}

// PageTree handles GET /api/v1/pages/tree. Returns the assembled tree of
// active pages. Sibling order follows the stored position order; rows whose
// parent is missing from the active set are dropped rather than promoted.
// With ?menu=true only pages flagged for the site menu are included.
func (h *Handler) PageTree(w http.ResponseWriter, r *http.Request) {
	var (
		pages []model.Page
		err   error
	)
	if r.URL.Query().Get("menu") == "true" {
		pages, err = h.queries.ListMenuPages(r.Context())
	} else {
		pages, err = h.queries.ListActivePages(r.Context())
	}
	if err != nil {
		WriteInternalError(w, "Failed to load page tree")
		return
	}

	roots := tree.Build(pages, pageID, pageParentID)
	WriteSuccess(w, convertPageNodes(roots), nil)
}

// AdminPageTree handles GET /api/v1/pages/tree/all. Includes inactive pages
// and keeps empty children arrays.
func (h *Handler) AdminPageTree(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListAllPages(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load page tree")
		return
	}

	roots := tree.Build(pages, pageID, pageParentID)
	WriteSuccess(w, convertAdminPageNodes(roots), nil)
}

func pageID(p model.Page) int64 { return p.ID }

func pageParentID(p model.Page) sql.NullInt64 { return p.ParentID }

func convertPageNodes(nodes []*tree.Node[model.Page]) []PageNode {
	if len(nodes) == 0 {
		return nil
	}
	result := make([]PageNode, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, PageNode{
			ID:       n.Item.ID,
			Slug:     n.Item.Slug,
			TitleBg:  n.Item.TitleBg,
			TitleEn:  n.Item.TitleEn,
			Position: n.Item.Position,
			Children: convertPageNodes(n.Children),
		})
	}
	return result
}

func convertAdminPageNodes(nodes []*tree.Node[model.Page]) []AdminPageNode {
	result := make([]AdminPageNode, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, AdminPageNode{
			ID:       n.Item.ID,
			Slug:     n.Item.Slug,
			TitleBg:  n.Item.TitleBg,
			TitleEn:  n.Item.TitleEn,
			Position: n.Item.Position,
			IsActive: n.Item.IsActive,
			Children: convertAdminPageNodes(n.Children),
		})
	}
	return result
}

// GetPage handles GET /api/v1/pages/{id}. Inactive pages stay reachable by
// id so admin previews work before publishing.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, ok := requireEntityByID(w, r, "page", func(id int64) (model.Page, error) {
		return h.queries.GetPageByID(r.Context(), id)
	})
	if !ok {
		return
	}

	resp := pageToResponse(page)
	if !renderPageBodies(w, r, &resp) {
		return
	}
	WriteSuccess(w, resp, nil)
}

// GetPageBySlug handles GET /api/v1/pages/slug/{slug}.
func (h *Handler) GetPageBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		WriteBadRequest(w, "Slug is required", nil)
		return
	}

	page, err := h.queries.GetPageBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Page not found")
		} else {
			WriteInternalError(w, "Failed to retrieve page")
		}
		return
	}

	resp := pageToResponse(page)
	if !renderPageBodies(w, r, &resp) {
		return
	}
	WriteSuccess(w, resp, nil)
}

// CreatePage handles POST /api/v1/pages.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.TitleBg == "" {
		validationErrors["title_bg"] = "Bulgarian title is required"
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.TitleBg)
	}
	if req.Slug != "" && !util.IsValidSlug(req.Slug) {
		validationErrors["slug"] = "Slug may contain lowercase letters, digits and single hyphens"
	}

	format, fieldErrs := validateBodyFormat(req.BodyFormat)
	for k, v := range fieldErrs {
		validationErrors[k] = v
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	if !checkUnique(w, "slug", func() (bool, error) {
		return h.queries.PageSlugExists(ctx, req.Slug, 0)
	}) {
		return
	}

	now := time.Now()
	params := store.CreatePageParams{
		ParentID:   util.NullInt64FromPtr(req.ParentID),
		Slug:       req.Slug,
		TitleBg:    req.TitleBg,
		TitleEn:    req.TitleEn,
		BodyBg:     sanitizeBody(format, req.BodyBg),
		BodyEn:     sanitizeBody(format, req.BodyEn),
		BodyFormat: format,
		ShowInMenu: true,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.ShowInMenu != nil {
		params.ShowInMenu = *req.ShowInMenu
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	page, err := h.queries.CreatePage(ctx, params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteConflict(w, "Page slug already exists")
			return
		}
		WriteInternalError(w, "Failed to create page")
		return
	}

	WriteCreated(w, pageToResponse(page))
}

// UpdatePage handles PUT /api/v1/pages/{id}. Starts from the stored row and
// overlays only the submitted fields.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "page", func(id int64) (model.Page, error) {
		return h.queries.GetPageByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdatePageParams{
		ID:         existing.ID,
		ParentID:   existing.ParentID,
		Slug:       existing.Slug,
		TitleBg:    existing.TitleBg,
		TitleEn:    existing.TitleEn,
		BodyBg:     existing.BodyBg,
		BodyEn:     existing.BodyEn,
		BodyFormat: existing.BodyFormat,
		Position:   existing.Position,
		ShowInMenu: existing.ShowInMenu,
		IsActive:   existing.IsActive,
		UpdatedAt:  time.Now(),
	}

	if req.ParentID != nil {
		if *req.ParentID == existing.ID {
			WriteValidationError(w, map[string]string{"parent_id": "Page cannot be its own parent"})
			return
		}
		if *req.ParentID == 0 {
			params.ParentID = sql.NullInt64{}
		} else {
			if !checkParentChain(w, "page", existing.ID, *req.ParentID, func(id int64) (sql.NullInt64, error) {
				p, err := h.queries.GetPageByID(ctx, id)
				if err != nil {
					return sql.NullInt64{}, err
				}
				return p.ParentID, nil
			}) {
				return
			}
			params.ParentID = sql.NullInt64{Int64: *req.ParentID, Valid: true}
		}
	}
	if req.Slug != nil {
		if !util.IsValidSlug(*req.Slug) {
			WriteValidationError(w, map[string]string{"slug": "Slug may contain lowercase letters, digits and single hyphens"})
			return
		}
		if !checkUnique(w, "slug", func() (bool, error) {
			return h.queries.PageSlugExists(ctx, *req.Slug, existing.ID)
		}) {
			return
		}
		params.Slug = *req.Slug
	}
	if req.BodyFormat != nil {
		format, fieldErrs := validateBodyFormat(*req.BodyFormat)
		if fieldErrs != nil {
			WriteValidationError(w, fieldErrs)
			return
		}
		params.BodyFormat = format
	}
	if req.TitleBg != nil {
		params.TitleBg = *req.TitleBg
	}
	if req.TitleEn != nil {
		params.TitleEn = *req.TitleEn
	}
	if req.BodyBg != nil {
		params.BodyBg = sanitizeBody(params.BodyFormat, *req.BodyBg)
	}
	if req.BodyEn != nil {
		params.BodyEn = sanitizeBody(params.BodyFormat, *req.BodyEn)
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.ShowInMenu != nil {
		params.ShowInMenu = *req.ShowInMenu
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	page, err := h.queries.UpdatePage(ctx, params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteConflict(w, "Page slug already exists")
			return
		}
		WriteInternalError(w, "Failed to update page")
		return
	}

	WriteSuccess(w, pageToResponse(page), nil)
}

// DeletePage handles DELETE /api/v1/pages/{id}. permanent=true removes the
// page together with its children; the default soft delete hides it.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	deleteEntity(w, r, model.EntityPage,
		func(id int64) error { return h.queries.SoftDeletePage(ctx, id, now) },
		func(id int64) error { return h.queries.HardDeletePage(ctx, id) })
}

// ReorderPages handles POST /api/v1/pages/reorder.
func (h *Handler) ReorderPages(w http.ResponseWriter, r *http.Request) {
	h.applyReorder(w, r, model.EntityPage,
		func(q *store.Queries, id, position int64, now time.Time) error {
			return q.UpdatePagePosition(r.Context(), id, position, now)
		})
}
