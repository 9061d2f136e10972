// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API handlers for the school site.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"schoolsite/internal/middleware"
	"schoolsite/internal/model"
	"schoolsite/internal/reorder"
	"schoolsite/internal/service"
	"schoolsite/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db      *sql.DB
	queries *store.Queries
	nav     *service.NavigationService
	media   *service.MediaService
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, nav *service.NavigationService, media *service.MediaService) *Handler {
	return &Handler{
		db:      db,
		queries: store.New(db),
		nav:     nav,
		media:   media,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
	Pages   int   `json:"pages,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: "v1",
	}, nil)
}

// AuthInfo returns information about the authenticated token.
func (h *Handler) AuthInfo(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetToken(r)
	if token == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	type AuthInfoResponse struct {
		TokenName string     `json:"token_name"`
		UserID    int64      `json:"user_id"`
		UserEmail string     `json:"user_email,omitempty"`
		ExpiresAt *time.Time `json:"expires_at,omitempty"`
	}

	resp := AuthInfoResponse{
		TokenName: token.Name,
		UserID:    token.UserID,
	}
	if user, err := h.queries.GetUserByID(r.Context(), token.UserID); err == nil {
		resp.UserEmail = user.Email
	}
	if token.ExpiresAt.Valid {
		resp.ExpiresAt = &token.ExpiresAt.Time
	}

	WriteSuccess(w, resp, nil)
}

// ParseIDParam parses the {id} URL parameter as a positive int64.
func ParseIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(id int64) (T, error)

// requireEntityByID parses an ID from the URL and fetches the entity.
// Returns the entity and true on success, or the zero value and false with
// the error response already written. entityName feeds the error messages.
// parentLookup resolves the stored parent of a row by id.
type parentLookup func(id int64) (sql.NullInt64, error)

// wouldCycle reports whether making candidate the parent of id would put id
// on its own ancestor chain. A candidate that does not exist resolves to
// sql.ErrNoRows from the lookup.
func wouldCycle(id, candidate int64, parentOf parentLookup) (bool, error) {
	seen := make(map[int64]struct{})
	for cur := candidate; ; {
		if cur == id {
			return true, nil
		}
		if _, dup := seen[cur]; dup {
			// Stored chain already loops; refuse to attach to it.
			return true, nil
		}
		seen[cur] = struct{}{}

		parent, err := parentOf(cur)
		if err != nil {
			return false, err
		}
		if !parent.Valid {
			return false, nil
		}
		cur = parent.Int64
	}
}

// checkParentChain validates a proposed reparent against the ancestor chain
// and writes the error response on failure.
func checkParentChain(w http.ResponseWriter, entityName string, id, candidate int64, parentOf parentLookup) bool {
	cycle, err := wouldCycle(id, candidate, parentOf)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteValidationError(w, map[string]string{"parent_id": "Parent " + entityLabel(entityName) + " not found"})
		} else {
			WriteInternalError(w, "Failed to update "+entityLabel(entityName))
		}
		return false
	}
	if cycle {
		WriteValidationError(w, map[string]string{"parent_id": "Parent chain may not loop back to this " + entityLabel(entityName)})
		return false
	}
	return true
}

func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		} else {
			WriteInternalError(w, "Failed to retrieve "+entityName)
		}
		return zero, false
	}

	return entity, true
}

// UniqueChecker reports whether a candidate value is already taken.
type UniqueChecker func() (bool, error)

// checkUnique validates a uniqueness constraint before a write. Returns true
// when the value is free; writes the error response otherwise.
func checkUnique(w http.ResponseWriter, field string, taken UniqueChecker) bool {
	exists, err := taken()
	if err != nil {
		WriteInternalError(w, "Failed to check "+field)
		return false
	}
	if exists {
		WriteValidationError(w, map[string]string{field: capitalizeFirst(field) + " already exists"})
		return false
	}
	return true
}

// positionUpdater rewrites a single row's position inside a batch.
type positionUpdater func(q *store.Queries, id, position int64, now time.Time) error

// applyReorder parses a reorder request body and applies every move inside
// one transaction. Any row failure rolls the whole submission back, so a
// partial reorder never reaches the table.
func (h *Handler) applyReorder(w http.ResponseWriter, r *http.Request, entityName string, update positionUpdater) {
	moves, err := reorder.Parse(r.Body)
	if err != nil {
		WriteBadRequest(w, "Invalid reorder request: "+err.Error(), nil)
		return
	}

	now := time.Now()
	err = store.RunBatch(r.Context(), h.db, func(q *store.Queries) error {
		for _, m := range moves {
			if err := update(q, m.ID, m.Position, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(entityLabel(entityName))+" not found")
		} else {
			WriteInternalError(w, "Failed to reorder "+entityLabel(entityName)+"s")
		}
		return
	}

	WriteSuccess(w, map[string]int{"updated": len(moves)}, nil)
}

// rowDeleter performs one flavor of delete for an entity.
type rowDeleter func(id int64) error

// deleteEntity handles DELETE for an entity honoring its delete policy.
// permanent=true (or an entity without soft delete) removes the row;
// otherwise the row is marked inactive and stays recoverable.
func deleteEntity(w http.ResponseWriter, r *http.Request, entityName string, soft, hard rowDeleter) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityLabel(entityName)+" ID", nil)
		return
	}

	policy := model.DeletePolicyFor(entityName)
	permanent := r.URL.Query().Get("permanent") == "true" || !policy.SupportsSoftDelete

	if permanent {
		err = hard(id)
	} else {
		err = soft(id)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(entityLabel(entityName))+" not found")
		} else {
			WriteInternalError(w, "Failed to delete "+entityLabel(entityName))
		}
		return
	}

	WriteSuccess(w, map[string]any{"deleted": id, "permanent": permanent}, nil)
}

// entityLabel turns a policy entity name into a human-readable label.
func entityLabel(entity string) string {
	return strings.ReplaceAll(entity, "_", " ")
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-32) + s[1:]
}
