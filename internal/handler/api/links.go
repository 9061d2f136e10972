// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"schoolsite/internal/model"
	"schoolsite/internal/store"
)

// UsefulLinkResponse is the API representation of a useful link. Content
// rows are included on the single-link endpoints.
type UsefulLinkResponse struct {
	ID        int64                       `json:"id"`
	TitleBg   string                      `json:"title_bg"`
	TitleEn   string                      `json:"title_en"`
	URL       string                      `json:"url"`
	Position  int64                       `json:"position"`
	IsActive  bool                        `json:"is_active"`
	Content   []UsefulLinkContentResponse `json:"content,omitempty"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// UsefulLinkContentResponse is the API representation of a link content row.
type UsefulLinkContentResponse struct {
	ID        int64     `json:"id"`
	LinkID    int64     `json:"link_id"`
	BodyBg    string    `json:"body_bg"`
	BodyEn    string    `json:"body_en"`
	Position  int64     `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUsefulLinkRequest is the request body for creating a useful link.
type CreateUsefulLinkRequest struct {
	TitleBg  string `json:"title_bg"`
	TitleEn  string `json:"title_en"`
	URL      string `json:"url"`
	Position *int64 `json:"position"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUsefulLinkRequest is the request body for updating a useful link.
type UpdateUsefulLinkRequest struct {
	TitleBg  *string `json:"title_bg"`
	TitleEn  *string `json:"title_en"`
	URL      *string `json:"url"`
	Position *int64  `json:"position"`
	IsActive *bool   `json:"is_active"`
}

// CreateUsefulLinkContentRequest is the request body for adding a content
// row under a link.
type CreateUsefulLinkContentRequest struct {
	BodyBg   string `json:"body_bg"`
	BodyEn   string `json:"body_en"`
	Position *int64 `json:"position"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUsefulLinkContentRequest is the request body for updating a content row.
type UpdateUsefulLinkContentRequest struct {
	BodyBg   *string `json:"body_bg"`
	BodyEn   *string `json:"body_en"`
	Position *int64  `json:"position"`
	IsActive *bool   `json:"is_active"`
}

func usefulLinkToResponse(l model.UsefulLink) UsefulLinkResponse {
	return UsefulLinkResponse{
		ID:        l.ID,
		TitleBg:   l.TitleBg,
		TitleEn:   l.TitleEn,
		URL:       l.URL,
		Position:  l.Position,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func linkContentToResponse(c model.UsefulLinkContent) UsefulLinkContentResponse {
	return UsefulLinkContentResponse{
		ID:        c.ID,
		LinkID:    c.LinkID,
		BodyBg:    c.BodyBg,
		BodyEn:    c.BodyEn,
		Position:  c.Position,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func linkContentToResponses(rows []model.UsefulLinkContent) []UsefulLinkContentResponse {
	responses := make([]UsefulLinkContentResponse, 0, len(rows))
	for _, c := range rows {
		responses = append(responses, linkContentToResponse(c))
	}
	return responses
}

func validateLinkURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ListUsefulLinks handles GET /api/v1/useful-links. Each link carries its
// active content rows.
func (h *Handler) ListUsefulLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	links, err := h.queries.ListActiveUsefulLinks(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to list useful links")
		return
	}

	responses := make([]UsefulLinkResponse, 0, len(links))
	for _, l := range links {
		resp := usefulLinkToResponse(l)
		rows, err := h.queries.ListActiveUsefulLinkContent(ctx, l.ID)
		if err != nil {
			WriteInternalError(w, "Failed to list useful links")
			return
		}
		resp.Content = linkContentToResponses(rows)
		responses = append(responses, resp)
	}
	WriteSuccess(w, responses, nil)
}

// ListAllUsefulLinks handles GET /api/v1/useful-links/all. Flat admin list
// without content rows.
func (h *Handler) ListAllUsefulLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.queries.ListAllUsefulLinks(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list useful links")
		return
	}

	responses := make([]UsefulLinkResponse, 0, len(links))
	for _, l := range links {
		responses = append(responses, usefulLinkToResponse(l))
	}
	WriteSuccess(w, responses, nil)
}

// GetUsefulLink handles GET /api/v1/useful-links/{id}.
func (h *Handler) GetUsefulLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	link, ok := requireEntityByID(w, r, "useful link", func(id int64) (model.UsefulLink, error) {
		return h.queries.GetUsefulLinkByID(ctx, id)
	})
	if !ok {
		return
	}

	resp := usefulLinkToResponse(link)
	rows, err := h.queries.ListActiveUsefulLinkContent(ctx, link.ID)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve useful link")
		return
	}
	resp.Content = linkContentToResponses(rows)
	WriteSuccess(w, resp, nil)
}

// CreateUsefulLink handles POST /api/v1/useful-links.
func (h *Handler) CreateUsefulLink(w http.ResponseWriter, r *http.Request) {
	var req CreateUsefulLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.TitleBg == "" {
		validationErrors["title_bg"] = "Bulgarian title is required"
	}
	if !validateLinkURL(req.URL) {
		validationErrors["url"] = "A valid http or https URL is required"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	now := time.Now()
	params := store.CreateUsefulLinkParams{
		TitleBg:   req.TitleBg,
		TitleEn:   req.TitleEn,
		URL:       req.URL,
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

	link, err := h.queries.CreateUsefulLink(r.Context(), params)
	if err != nil {
		WriteInternalError(w, "Failed to create useful link")
		return
	}
	WriteCreated(w, usefulLinkToResponse(link))
}

// UpdateUsefulLink handles PUT /api/v1/useful-links/{id}.
func (h *Handler) UpdateUsefulLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "useful link", func(id int64) (model.UsefulLink, error) {
		return h.queries.GetUsefulLinkByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateUsefulLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateUsefulLinkParams{
		ID:        existing.ID,
		TitleBg:   existing.TitleBg,
		TitleEn:   existing.TitleEn,
		URL:       existing.URL,
		Position:  existing.Position,
		IsActive:  existing.IsActive,
		UpdatedAt: time.Now(),
	}

	if req.URL != nil {
		if !validateLinkURL(*req.URL) {
			WriteValidationError(w, map[string]string{"url": "A valid http or https URL is required"})
			return
		}
		params.URL = *req.URL
	}
	if req.TitleBg != nil {
		params.TitleBg = *req.TitleBg
	}
	if req.TitleEn != nil {
		params.TitleEn = *req.TitleEn
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	link, err := h.queries.UpdateUsefulLink(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update useful link")
		return
	}
	WriteSuccess(w, usefulLinkToResponse(link), nil)
}

// DeleteUsefulLink handles DELETE /api/v1/useful-links/{id}. Permanent
// deletion removes the content rows through the cascading foreign key.
func (h *Handler) DeleteUsefulLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	deleteEntity(w, r, model.EntityUsefulLink,
		func(id int64) error { return h.queries.SoftDeleteUsefulLink(ctx, id, now) },
		func(id int64) error { return h.queries.HardDeleteUsefulLink(ctx, id) })
}

// ReorderUsefulLinks handles POST /api/v1/useful-links/reorder.
func (h *Handler) ReorderUsefulLinks(w http.ResponseWriter, r *http.Request) {
	h.applyReorder(w, r, model.EntityUsefulLink,
		func(q *store.Queries, id, position int64, now time.Time) error {
			return q.UpdateUsefulLinkPosition(r.Context(), id, position, now)
		})
}

// CreateUsefulLinkContent handles POST /api/v1/useful-links/{id}/content.
func (h *Handler) CreateUsefulLinkContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	link, ok := requireEntityByID(w, r, "useful link", func(id int64) (model.UsefulLink, error) {
		return h.queries.GetUsefulLinkByID(ctx, id)
	})
	if !ok {
		return
	}

	var req CreateUsefulLinkContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if req.BodyBg == "" && req.BodyEn == "" {
		WriteValidationError(w, map[string]string{"body_bg": "A body in at least one language is required"})
		return
	}

	now := time.Now()
	params := store.CreateUsefulLinkContentParams{
		LinkID:    link.ID,
		BodyBg:    req.BodyBg,
		BodyEn:    req.BodyEn,
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

	row, err := h.queries.CreateUsefulLinkContent(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to create link content")
		return
	}
	WriteCreated(w, linkContentToResponse(row))
}

// UpdateUsefulLinkContent handles PUT /api/v1/useful-links/content/{id}.
func (h *Handler) UpdateUsefulLinkContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "link content", func(id int64) (model.UsefulLinkContent, error) {
		return h.queries.GetUsefulLinkContentByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateUsefulLinkContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateUsefulLinkContentParams{
		ID:        existing.ID,
		LinkID:    existing.LinkID,
		BodyBg:    existing.BodyBg,
		BodyEn:    existing.BodyEn,
		Position:  existing.Position,
		IsActive:  existing.IsActive,
		UpdatedAt: time.Now(),
	}

	if req.BodyBg != nil {
		params.BodyBg = *req.BodyBg
	}
	if req.BodyEn != nil {
		params.BodyEn = *req.BodyEn
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	row, err := h.queries.UpdateUsefulLinkContent(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update link content")
		return
	}
	WriteSuccess(w, linkContentToResponse(row), nil)
}

// DeleteUsefulLinkContent handles DELETE /api/v1/useful-links/content/{id}.
func (h *Handler) DeleteUsefulLinkContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	deleteEntity(w, r, "link_content",
		func(id int64) error { return h.queries.SoftDeleteUsefulLinkContent(ctx, id, now) },
		func(id int64) error { return h.queries.HardDeleteUsefulLinkContent(ctx, id) })
}

// ReorderUsefulLinkContent handles POST /api/v1/useful-links/content/reorder.
func (h *Handler) ReorderUsefulLinkContent(w http.ResponseWriter, r *http.Request) {
	h.applyReorder(w, r, "link_content",
		func(q *store.Queries, id, position int64, now time.Time) error {
			return q.UpdateUsefulLinkContentPosition(r.Context(), id, position, now)
		})
}
