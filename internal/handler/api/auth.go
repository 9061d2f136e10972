// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"schoolsite/internal/auth"
	"schoolsite/internal/middleware"
	"schoolsite/internal/model"
	"schoolsite/internal/store"
)

// IssueTokenRequest is the request body for POST /auth/token.
type IssueTokenRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	TokenName string `json:"token_name"`
	// ExpiresInDays of 0 issues a non-expiring token.
	ExpiresInDays int `json:"expires_in_days"`
}

// IssueTokenResponse carries the raw token. It is shown exactly once; only
// its hash is stored.
type IssueTokenResponse struct {
	Token     string     `json:"token"`
	TokenName string     `json:"token_name"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// APITokenResponse is the listing representation of a stored token.
type APITokenResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IssueToken handles POST /api/v1/auth/token. Authenticates with email and
// password and returns a fresh bearer token. Invalid credentials always get
// the same 401 regardless of which check failed.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req IssueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.Email == "" {
		validationErrors["email"] = "Email is required"
	}
	if req.Password == "" {
		validationErrors["password"] = "Password is required"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	user, err := h.queries.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteUnauthorized(w, "Invalid credentials")
		} else {
			WriteInternalError(w, "Failed to authenticate")
		}
		return
	}
	if !user.IsActive {
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	match, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		WriteInternalError(w, "Failed to authenticate")
		return
	}
	if !match {
		slog.Warn("failed token issuance", "category", "auth", "email", req.Email)
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	raw, err := auth.GenerateToken()
	if err != nil {
		WriteInternalError(w, "Failed to issue token")
		return
	}

	name := req.TokenName
	if name == "" {
		name = "api"
	}
	var expiresAt sql.NullTime
	if req.ExpiresInDays > 0 {
		expiresAt = sql.NullTime{
			Time:  time.Now().AddDate(0, 0, req.ExpiresInDays),
			Valid: true,
		}
	}

	token, err := h.queries.CreateAPIToken(ctx, store.CreateAPITokenParams{
		UserID:    user.ID,
		Name:      name,
		TokenHash: model.HashAPIToken(raw),
		IsActive:  true,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to issue token")
		return
	}

	slog.Info("issued API token", "category", "auth", "user_id", user.ID, "token_name", token.Name)

	resp := IssueTokenResponse{
		Token:     raw,
		TokenName: token.Name,
	}
	if token.ExpiresAt.Valid {
		resp.ExpiresAt = &token.ExpiresAt.Time
	}
	WriteCreated(w, resp)
}

// ListAPITokens handles GET /api/v1/auth/tokens. Lists the tokens of the
// authenticated token's owner; hashes are never returned.
func (h *Handler) ListAPITokens(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetToken(r)
	if current == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	tokens, err := h.queries.ListAPITokensForUser(r.Context(), current.UserID)
	if err != nil {
		WriteInternalError(w, "Failed to list tokens")
		return
	}

	responses := make([]APITokenResponse, 0, len(tokens))
	for _, t := range tokens {
		resp := APITokenResponse{
			ID:        t.ID,
			Name:      t.Name,
			IsActive:  t.IsActive,
			CreatedAt: t.CreatedAt,
		}
		if t.ExpiresAt.Valid {
			resp.ExpiresAt = &t.ExpiresAt.Time
		}
		if t.LastUsedAt.Valid {
			resp.LastUsedAt = &t.LastUsedAt.Time
		}
		responses = append(responses, resp)
	}
	WriteSuccess(w, responses, nil)
}

// RevokeAPIToken handles DELETE /api/v1/auth/tokens/{id}. Revocation is
// immediate; a revoked token no longer resolves on lookup.
func (h *Handler) RevokeAPIToken(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid token ID", nil)
		return
	}

	if err := h.queries.RevokeAPIToken(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Token not found")
		} else {
			WriteInternalError(w, "Failed to revoke token")
		}
		return
	}

	slog.Warn("revoked API token", "category", "auth", "token_id", id)
	WriteSuccess(w, map[string]int64{"revoked": id}, nil)
}

// ChangePasswordRequest is the request body for POST /auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /api/v1/auth/password. Changes the password of
// the authenticated token's owner after verifying the current one. Existing
// tokens stay valid.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current := middleware.GetToken(r)
	if current == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.CurrentPassword == "" {
		validationErrors["current_password"] = "Current password is required"
	}
	if len(req.NewPassword) < 8 {
		validationErrors["new_password"] = "New password must be at least 8 characters"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	user, err := h.queries.GetUserByID(ctx, current.UserID)
	if err != nil {
		WriteInternalError(w, "Failed to change password")
		return
	}

	match, err := auth.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		WriteInternalError(w, "Failed to change password")
		return
	}
	if !match {
		slog.Warn("failed password change", "category", "auth", "user_id", user.ID)
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		WriteInternalError(w, "Failed to change password")
		return
	}
	if err := h.queries.UpdateUserPassword(ctx, user.ID, hash, time.Now()); err != nil {
		WriteInternalError(w, "Failed to change password")
		return
	}

	slog.Info("changed password", "category", "auth", "user_id", user.ID)
	WriteSuccess(w, map[string]bool{"changed": true}, nil)
}
