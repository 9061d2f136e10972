// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"schoolsite/internal/model"
	"schoolsite/internal/store"
)

// SectionResponse is the API representation of a content section.
type SectionResponse struct {
	ID           int64     `json:"id"`
	SectionKey   string    `json:"section_key"`
	SectionGroup string    `json:"section_group"`
	HeadingBg    string    `json:"heading_bg"`
	HeadingEn    string    `json:"heading_en"`
	BodyBg       string    `json:"body_bg"`
	BodyEn       string    `json:"body_en"`
	BodyFormat   string    `json:"body_format"`
	Position     int64     `json:"position"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSectionRequest is the request body for creating a content section.
type CreateSectionRequest struct {
	SectionKey   string `json:"section_key"`
	SectionGroup string `json:"section_group"`
	HeadingBg    string `json:"heading_bg"`
	HeadingEn    string `json:"heading_en"`
	BodyBg       string `json:"body_bg"`
	BodyEn       string `json:"body_en"`
	BodyFormat   string `json:"body_format"`
	Position     *int64 `json:"position"`
	IsActive     *bool  `json:"is_active"`
}

// UpdateSectionRequest is the request body for updating a content section.
type UpdateSectionRequest struct {
	SectionKey   *string `json:"section_key"`
	SectionGroup *string `json:"section_group"`
	HeadingBg    *string `json:"heading_bg"`
	HeadingEn    *string `json:"heading_en"`
	BodyBg       *string `json:"body_bg"`
	BodyEn       *string `json:"body_en"`
	BodyFormat   *string `json:"body_format"`
	Position     *int64  `json:"position"`
	IsActive     *bool   `json:"is_active"`
}

// BulkSectionItem is one entry of a bulk section edit. ID is required;
// every other field is optional and merges over the stored row.
type BulkSectionItem struct {
	ID        int64   `json:"id"`
	HeadingBg *string `json:"heading_bg"`
	HeadingEn *string `json:"heading_en"`
	BodyBg    *string `json:"body_bg"`
	BodyEn    *string `json:"body_en"`
	Position  *int64  `json:"position"`
	IsActive  *bool   `json:"is_active"`
}

// BulkSectionRequest is the request body for PUT /content-sections/bulk.
type BulkSectionRequest struct {
	Items []BulkSectionItem `json:"items"`
}

func sectionToResponse(s model.ContentSection) SectionResponse {
	return SectionResponse{
		ID:           s.ID,
		SectionKey:   s.SectionKey,
		SectionGroup: s.SectionGroup,
		HeadingBg:    s.HeadingBg,
		HeadingEn:    s.HeadingEn,
		BodyBg:       s.BodyBg,
		BodyEn:       s.BodyEn,
		BodyFormat:   s.BodyFormat,
		Position:     s.Position,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func sectionsToResponses(sections []model.ContentSection) []SectionResponse {
	responses := make([]SectionResponse, 0, len(sections))
	for _, s := range sections {
		responses = append(responses, sectionToResponse(s))
	}
	return responses
}

// ListSections handles GET /api/v1/content-sections. An optional ?group=
// filter limits the result to one section group.
func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.queries.ListActiveSections(r.Context(), r.URL.Query().Get("group"))
	if err != nil {
		WriteInternalError(w, "Failed to list content sections")
		return
	}
	WriteSuccess(w, sectionsToResponses(sections), nil)
}

// ListAllSections handles GET /api/v1/content-sections/all.
func (h *Handler) ListAllSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.queries.ListAllSections(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list content sections")
		return
	}
	WriteSuccess(w, sectionsToResponses(sections), nil)
}

// GetSection handles GET /api/v1/content-sections/{id}.
func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request) {
	section, ok := requireEntityByID(w, r, "content section", func(id int64) (model.ContentSection, error) {
		return h.queries.GetSectionByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, sectionToResponse(section), nil)
}

// GetSectionByKey handles GET /api/v1/content-sections/key/{key}.
func (h *Handler) GetSectionByKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		WriteBadRequest(w, "Section key is required", nil)
		return
	}

	section, err := h.queries.GetSectionByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content section not found")
		} else {
			WriteInternalError(w, "Failed to retrieve content section")
		}
		return
	}
	WriteSuccess(w, sectionToResponse(section), nil)
}

// CreateSection handles POST /api/v1/content-sections.
func (h *Handler) CreateSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.SectionKey == "" {
		validationErrors["section_key"] = "Section key is required"
	}
	if req.SectionGroup == "" {
		req.SectionGroup = model.SectionGroupGeneral
	}
	format, fieldErrs := validateBodyFormat(req.BodyFormat)
	for k, v := range fieldErrs {
		validationErrors[k] = v
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	if !checkUnique(w, "section_key", func() (bool, error) {
		return h.queries.SectionKeyExists(ctx, req.SectionKey, 0)
	}) {
		return
	}

	now := time.Now()
	params := store.CreateSectionParams{
		SectionKey:   req.SectionKey,
		SectionGroup: req.SectionGroup,
		HeadingBg:    req.HeadingBg,
		HeadingEn:    req.HeadingEn,
		BodyBg:       sanitizeBody(format, req.BodyBg),
		BodyEn:       sanitizeBody(format, req.BodyEn),
		BodyFormat:   format,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	section, err := h.queries.CreateSection(ctx, params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteConflict(w, "Section key already exists")
			return
		}
		WriteInternalError(w, "Failed to create content section")
		return
	}
	WriteCreated(w, sectionToResponse(section))
}

// UpdateSection handles PUT /api/v1/content-sections/{id}.
func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "content section", func(id int64) (model.ContentSection, error) {
		return h.queries.GetSectionByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := sectionUpdateParams(existing)

	if req.SectionKey != nil {
		if !checkUnique(w, "section_key", func() (bool, error) {
			return h.queries.SectionKeyExists(ctx, *req.SectionKey, existing.ID)
		}) {
			return
		}
		params.SectionKey = *req.SectionKey
	}
	if req.SectionGroup != nil {
		params.SectionGroup = *req.SectionGroup
	}
	if req.BodyFormat != nil {
		format, fieldErrs := validateBodyFormat(*req.BodyFormat)
		if fieldErrs != nil {
			WriteValidationError(w, fieldErrs)
			return
		}
		params.BodyFormat = format
	}
	if req.HeadingBg != nil {
		params.HeadingBg = *req.HeadingBg
	}
	if req.HeadingEn != nil {
		params.HeadingEn = *req.HeadingEn
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
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	section, err := h.queries.UpdateSection(ctx, params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteConflict(w, "Section key already exists")
			return
		}
		WriteInternalError(w, "Failed to update content section")
		return
	}
	WriteSuccess(w, sectionToResponse(section), nil)
}

// BulkUpdateSections handles PUT /api/v1/content-sections/bulk. All edits
// apply in a single transaction; if any row is missing or fails, no row
// changes.
func (h *Handler) BulkUpdateSections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BulkSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if len(req.Items) == 0 {
		WriteBadRequest(w, "Items must not be empty", nil)
		return
	}
	for i, item := range req.Items {
		if item.ID <= 0 {
			WriteBadRequest(w, fmt.Sprintf("Item %d: missing id", i), nil)
			return
		}
	}

	now := time.Now()
	updated := make([]SectionResponse, 0, len(req.Items))
	err := store.RunBatch(ctx, h.db, func(q *store.Queries) error {
		for _, item := range req.Items {
			existing, err := q.GetSectionByID(ctx, item.ID)
			if err != nil {
				return err
			}

			params := sectionUpdateParams(existing)
			params.UpdatedAt = now
			if item.HeadingBg != nil {
				params.HeadingBg = *item.HeadingBg
			}
			if item.HeadingEn != nil {
				params.HeadingEn = *item.HeadingEn
			}
			if item.BodyBg != nil {
				params.BodyBg = sanitizeBody(params.BodyFormat, *item.BodyBg)
			}
			if item.BodyEn != nil {
				params.BodyEn = sanitizeBody(params.BodyFormat, *item.BodyEn)
			}
			if item.Position != nil {
				params.Position = *item.Position
			}
			if item.IsActive != nil {
				params.IsActive = *item.IsActive
			}

			section, err := q.UpdateSection(ctx, params)
			if err != nil {
				return err
			}
			updated = append(updated, sectionToResponse(section))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content section not found")
		} else {
			WriteInternalError(w, "Failed to update content sections")
		}
		return
	}

	WriteSuccess(w, updated, nil)
}

// sectionUpdateParams seeds update params from the stored row.
func sectionUpdateParams(existing model.ContentSection) store.UpdateSectionParams {
	return store.UpdateSectionParams{
		ID:           existing.ID,
		SectionKey:   existing.SectionKey,
		SectionGroup: existing.SectionGroup,
		HeadingBg:    existing.HeadingBg,
		HeadingEn:    existing.HeadingEn,
		BodyBg:       existing.BodyBg,
		BodyEn:       existing.BodyEn,
		BodyFormat:   existing.BodyFormat,
		Position:     existing.Position,
		IsActive:     existing.IsActive,
		UpdatedAt:    time.Now(),
	}
}

// DeleteSection handles DELETE /api/v1/content-sections/{id}.
func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	deleteEntity(w, r, model.EntityContentSection,
		func(id int64) error { return h.queries.SoftDeleteSection(ctx, id, now) },
		func(id int64) error { return h.queries.HardDeleteSection(ctx, id) })
}

// ReorderSections handles POST /api/v1/content-sections/reorder.
func (h *Handler) ReorderSections(w http.ResponseWriter, r *http.Request) {
	h.applyReorder(w, r, model.EntityContentSection,
		func(q *store.Queries, id, position int64, now time.Time) error {
			return q.UpdateSectionPosition(r.Context(), id, position, now)
		})
}
