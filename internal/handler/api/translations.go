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

	"schoolsite/internal/store"
)

// TranslationValue holds both language values for one UI string.
type TranslationValue struct {
	ValueBg string `json:"value_bg"`
	ValueEn string `json:"value_en"`
}

// TranslationRow is the admin representation of a translation.
type TranslationRow struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	ValueBg   string    `json:"value_bg"`
	ValueEn   string    `json:"value_en"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListTranslations handles GET /api/v1/translations. Public: a map from key
// to both language values, ready for frontend consumption. A missing value
// is an empty string, never an error.
func (h *Handler) ListTranslations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListTranslations(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list translations")
		return
	}

	result := make(map[string]TranslationValue, len(rows))
	for _, t := range rows {
		result[t.Key] = TranslationValue{ValueBg: t.ValueBg, ValueEn: t.ValueEn}
	}
	WriteSuccess(w, result, nil)
}

// ListAllTranslations handles GET /api/v1/translations/all. Admin: full rows
// sorted by key.
func (h *Handler) ListAllTranslations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListTranslations(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list translations")
		return
	}

	result := make([]TranslationRow, 0, len(rows))
	for _, t := range rows {
		result = append(result, TranslationRow{
			ID:        t.ID,
			Key:       t.Key,
			ValueBg:   t.ValueBg,
			ValueEn:   t.ValueEn,
			UpdatedAt: t.UpdatedAt,
		})
	}
	WriteSuccess(w, result, nil)
}

// UpsertTranslations handles PUT /api/v1/translations. The body maps keys to
// values; every entry upserts inside one transaction so a partial write
// never leaves the UI strings mixed between two revisions.
func (h *Handler) UpsertTranslations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req map[string]TranslationValue
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if len(req) == 0 {
		WriteBadRequest(w, "At least one translation is required", nil)
		return
	}
	for key := range req {
		if key == "" {
			WriteValidationError(w, map[string]string{"key": "Translation keys must not be empty"})
			return
		}
	}

	now := time.Now()
	err := store.RunBatch(ctx, h.db, func(q *store.Queries) error {
		for key, value := range req {
			if _, err := q.UpsertTranslation(ctx, store.UpsertTranslationParams{
				Key:       key,
				ValueBg:   value.ValueBg,
				ValueEn:   value.ValueEn,
				UpdatedAt: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		WriteInternalError(w, "Failed to update translations")
		return
	}

	WriteSuccess(w, map[string]int{"updated": len(req)}, nil)
}

// DeleteTranslation handles DELETE /api/v1/translations/{key}.
func (h *Handler) DeleteTranslation(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		WriteBadRequest(w, "Translation key is required", nil)
		return
	}

	if err := h.queries.DeleteTranslation(r.Context(), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Translation not found")
		} else {
			WriteInternalError(w, "Failed to delete translation")
		}
		return
	}
	WriteSuccess(w, map[string]string{"deleted": key}, nil)
}
