// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"schoolsite/internal/model"
	"schoolsite/internal/store"
)

// Pagination defaults for the public news listing.
const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// NewsItemResponse is the API representation of a news article.
type NewsItemResponse struct {
	ID          int64     `json:"id"`
	TitleBg     string    `json:"title_bg"`
	TitleEn     string    `json:"title_en"`
	BodyBg      string    `json:"body_bg"`
	BodyEn      string    `json:"body_en"`
	BodyFormat  string    `json:"body_format"`
	PublishedAt time.Time `json:"published_at"`
	IsActive    bool      `json:"is_active"`
	RenderedBg  string    `json:"rendered_bg,omitempty"`
	RenderedEn  string    `json:"rendered_en,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateNewsItemRequest is the request body for creating a news article.
// PublishedAt defaults to now when omitted.
type CreateNewsItemRequest struct {
	TitleBg     string `json:"title_bg"`
	TitleEn     string `json:"title_en"`
	BodyBg      string `json:"body_bg"`
	BodyEn      string `json:"body_en"`
	BodyFormat  string `json:"body_format"`
	PublishedAt string `json:"published_at"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateNewsItemRequest is the request body for updating a news article.
type UpdateNewsItemRequest struct {
	TitleBg     *string `json:"title_bg"`
	TitleEn     *string `json:"title_en"`
	BodyBg      *string `json:"body_bg"`
	BodyEn      *string `json:"body_en"`
	BodyFormat  *string `json:"body_format"`
	PublishedAt *string `json:"published_at"`
	IsActive    *bool   `json:"is_active"`
}

func newsItemToResponse(n model.NewsItem) NewsItemResponse {
	return NewsItemResponse{
		ID:          n.ID,
		TitleBg:     n.TitleBg,
		TitleEn:     n.TitleEn,
		BodyBg:      n.BodyBg,
		BodyEn:      n.BodyEn,
		BodyFormat:  n.BodyFormat,
		PublishedAt: n.PublishedAt,
		IsActive:    n.IsActive,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// parsePagination reads page/per_page query parameters with sane bounds.
func parsePagination(r *http.Request) (page, perPage int) {
	page = 1
	perPage = defaultPerPage
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		perPage = v
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
	}
	return page, perPage
}

// ListNews handles GET /api/v1/news. Public: active articles newest first,
// paginated.
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, perPage := parsePagination(r)
	offset := (page - 1) * perPage

	items, err := h.queries.ListActiveNews(ctx, int64(perPage), int64(offset))
	if err != nil {
		WriteInternalError(w, "Failed to list news")
		return
	}
	total, err := h.queries.CountActiveNews(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to list news")
		return
	}

	responses := make([]NewsItemResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, newsItemToResponse(n))
	}

	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}

	WriteSuccess(w, responses, &Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   totalPages,
	})
}

// ListAllNews handles GET /api/v1/news/all.
func (h *Handler) ListAllNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListAllNews(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list news")
		return
	}

	responses := make([]NewsItemResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, newsItemToResponse(n))
	}
	WriteSuccess(w, responses, nil)
}

// GetNewsItem handles GET /api/v1/news/{id}.
func (h *Handler) GetNewsItem(w http.ResponseWriter, r *http.Request) {
	item, ok := requireEntityByID(w, r, "news item", func(id int64) (model.NewsItem, error) {
		return h.queries.GetNewsItemByID(r.Context(), id)
	})
	if !ok {
		return
	}

	resp := newsItemToResponse(item)
	if r.URL.Query().Get("render") == "true" {
		bg, err := renderBody(resp.BodyFormat, resp.BodyBg)
		if err != nil {
			WriteInternalError(w, "Failed to render news body")
			return
		}
		en, err := renderBody(resp.BodyFormat, resp.BodyEn)
		if err != nil {
			WriteInternalError(w, "Failed to render news body")
			return
		}
		resp.RenderedBg = bg
		resp.RenderedEn = en
	}
	WriteSuccess(w, resp, nil)
}

// CreateNewsItem handles POST /api/v1/news.
func (h *Handler) CreateNewsItem(w http.ResponseWriter, r *http.Request) {
	var req CreateNewsItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.TitleBg == "" {
		validationErrors["title_bg"] = "Bulgarian title is required"
	}
	format, fieldErrs := validateBodyFormat(req.BodyFormat)
	for k, v := range fieldErrs {
		validationErrors[k] = v
	}

	publishedAt := time.Now()
	if req.PublishedAt != "" {
		t, err := time.Parse(time.RFC3339, req.PublishedAt)
		if err != nil {
			validationErrors["published_at"] = "Invalid date format. Use RFC3339 (e.g., 2026-01-01T00:00:00Z)"
		} else {
			publishedAt = t
		}
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	now := time.Now()
	params := store.CreateNewsItemParams{
		TitleBg:     req.TitleBg,
		TitleEn:     req.TitleEn,
		BodyBg:      sanitizeBody(format, req.BodyBg),
		BodyEn:      sanitizeBody(format, req.BodyEn),
		BodyFormat:  format,
		PublishedAt: publishedAt,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	item, err := h.queries.CreateNewsItem(r.Context(), params)
	if err != nil {
		WriteInternalError(w, "Failed to create news item")
		return
	}
	WriteCreated(w, newsItemToResponse(item))
}

// UpdateNewsItem handles PUT /api/v1/news/{id}.
func (h *Handler) UpdateNewsItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "news item", func(id int64) (model.NewsItem, error) {
		return h.queries.GetNewsItemByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateNewsItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateNewsItemParams{
		ID:          existing.ID,
		TitleBg:     existing.TitleBg,
		TitleEn:     existing.TitleEn,
		BodyBg:      existing.BodyBg,
		BodyEn:      existing.BodyEn,
		BodyFormat:  existing.BodyFormat,
		PublishedAt: existing.PublishedAt,
		IsActive:    existing.IsActive,
		UpdatedAt:   time.Now(),
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
	if req.PublishedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.PublishedAt)
		if err != nil {
			WriteValidationError(w, map[string]string{"published_at": "Invalid date format. Use RFC3339"})
			return
		}
		params.PublishedAt = t
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	item, err := h.queries.UpdateNewsItem(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update news item")
		return
	}
	WriteSuccess(w, newsItemToResponse(item), nil)
}

// DeleteNewsItem handles DELETE /api/v1/news/{id}.
func (h *Handler) DeleteNewsItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	deleteEntity(w, r, model.EntityNewsItem,
		func(id int64) error { return h.queries.SoftDeleteNewsItem(ctx, id, now) },
		func(id int64) error { return h.queries.HardDeleteNewsItem(ctx, id) })
}

// EventResponse is the API representation of a calendar event.
type EventResponse struct {
	ID            int64      `json:"id"`
	TitleBg       string     `json:"title_bg"`
	TitleEn       string     `json:"title_en"`
	DescriptionBg string     `json:"description_bg"`
	DescriptionEn string     `json:"description_en"`
	LocationBg    string     `json:"location_bg"`
	LocationEn    string     `json:"location_en"`
	StartsAt      time.Time  `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateEventRequest is the request body for creating an event.
type CreateEventRequest struct {
	TitleBg       string `json:"title_bg"`
	TitleEn       string `json:"title_en"`
	DescriptionBg string `json:"description_bg"`
	DescriptionEn string `json:"description_en"`
	LocationBg    string `json:"location_bg"`
	LocationEn    string `json:"location_en"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	IsActive      *bool  `json:"is_active"`
}

// UpdateEventRequest is the request body for updating an event. An empty
// ends_at string clears the end time.
type UpdateEventRequest struct {
	TitleBg       *string `json:"title_bg"`
	TitleEn       *string `json:"title_en"`
	DescriptionBg *string `json:"description_bg"`
	DescriptionEn *string `json:"description_en"`
	LocationBg    *string `json:"location_bg"`
	LocationEn    *string `json:"location_en"`
	StartsAt      *string `json:"starts_at"`
	EndsAt        *string `json:"ends_at"`
	IsActive      *bool   `json:"is_active"`
}

func eventToResponse(e model.Event) EventResponse {
	resp := EventResponse{
		ID:            e.ID,
		TitleBg:       e.TitleBg,
		TitleEn:       e.TitleEn,
		DescriptionBg: e.DescriptionBg,
		DescriptionEn: e.DescriptionEn,
		LocationBg:    e.LocationBg,
		LocationEn:    e.LocationEn,
		StartsAt:      e.StartsAt,
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.EndsAt.Valid {
		resp.EndsAt = &e.EndsAt.Time
	}
	return resp
}

func eventsToResponses(events []model.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, eventToResponse(e))
	}
	return responses
}

// ListEvents handles GET /api/v1/events. ?upcoming=true limits the list to
// events that have not started yet.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	upcoming := r.URL.Query().Get("upcoming") == "true"
	events, err := h.queries.ListActiveEvents(r.Context(), upcoming, time.Now())
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}
	WriteSuccess(w, eventsToResponses(events), nil)
}

// ListAllEvents handles GET /api/v1/events/all.
func (h *Handler) ListAllEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.queries.ListAllEvents(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}
	WriteSuccess(w, eventsToResponses(events), nil)
}

// GetEvent handles GET /api/v1/events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := requireEntityByID(w, r, "event", func(id int64) (model.Event, error) {
		return h.queries.GetEventByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// CreateEvent handles POST /api/v1/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.TitleBg == "" {
		validationErrors["title_bg"] = "Bulgarian title is required"
	}

	var startsAt time.Time
	if req.StartsAt == "" {
		validationErrors["starts_at"] = "Start time is required"
	} else {
		t, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			validationErrors["starts_at"] = "Invalid date format. Use RFC3339"
		} else {
			startsAt = t
		}
	}

	var endsAt sql.NullTime
	if req.EndsAt != "" {
		t, err := time.Parse(time.RFC3339, req.EndsAt)
		if err != nil {
			validationErrors["ends_at"] = "Invalid date format. Use RFC3339"
		} else if t.Before(startsAt) {
			validationErrors["ends_at"] = "End time cannot precede the start time"
		} else {
			endsAt = sql.NullTime{Time: t, Valid: true}
		}
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	now := time.Now()
	params := store.CreateEventParams{
		TitleBg:       req.TitleBg,
		TitleEn:       req.TitleEn,
		DescriptionBg: req.DescriptionBg,
		DescriptionEn: req.DescriptionEn,
		LocationBg:    req.LocationBg,
		LocationEn:    req.LocationEn,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	event, err := h.queries.CreateEvent(r.Context(), params)
	if err != nil {
		WriteInternalError(w, "Failed to create event")
		return
	}
	WriteCreated(w, eventToResponse(event))
}

// UpdateEvent handles PUT /api/v1/events/{id}.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "event", func(id int64) (model.Event, error) {
		return h.queries.GetEventByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateEventParams{
		ID:            existing.ID,
		TitleBg:       existing.TitleBg,
		TitleEn:       existing.TitleEn,
		DescriptionBg: existing.DescriptionBg,
		DescriptionEn: existing.DescriptionEn,
		LocationBg:    existing.LocationBg,
		LocationEn:    existing.LocationEn,
		StartsAt:      existing.StartsAt,
		EndsAt:        existing.EndsAt,
		IsActive:      existing.IsActive,
		UpdatedAt:     time.Now(),
	}

	if req.TitleBg != nil {
		params.TitleBg = *req.TitleBg
	}
	if req.TitleEn != nil {
		params.TitleEn = *req.TitleEn
	}
	if req.DescriptionBg != nil {
		params.DescriptionBg = *req.DescriptionBg
	}
	if req.DescriptionEn != nil {
		params.DescriptionEn = *req.DescriptionEn
	}
	if req.LocationBg != nil {
		params.LocationBg = *req.LocationBg
	}
	if req.LocationEn != nil {
		params.LocationEn = *req.LocationEn
	}
	if req.StartsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.StartsAt)
		if err != nil {
			WriteValidationError(w, map[string]string{"starts_at": "Invalid date format. Use RFC3339"})
			return
		}
		params.StartsAt = t
	}
	if req.EndsAt != nil {
		if *req.EndsAt == "" {
			params.EndsAt = sql.NullTime{}
		} else {
			t, err := time.Parse(time.RFC3339, *req.EndsAt)
			if err != nil {
				WriteValidationError(w, map[string]string{"ends_at": "Invalid date format. Use RFC3339"})
				return
			}
			params.EndsAt = sql.NullTime{Time: t, Valid: true}
		}
	}
	if params.EndsAt.Valid && params.EndsAt.Time.Before(params.StartsAt) {
		WriteValidationError(w, map[string]string{"ends_at": "End time cannot precede the start time"})
		return
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	event, err := h.queries.UpdateEvent(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update event")
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// DeleteEvent handles DELETE /api/v1/events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	deleteEntity(w, r, model.EntityEvent,
		func(id int64) error { return h.queries.SoftDeleteEvent(ctx, id, now) },
		func(id int64) error { return h.queries.HardDeleteEvent(ctx, id) })
}
