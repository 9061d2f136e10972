// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication, request
// timeouts, and rate limiting.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"schoolsite/internal/model"
	"schoolsite/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyToken is the context key for the authenticated API token.
const ContextKeyToken ContextKey = "api_token"

// APIError represents a JSON error response for the API.
type APIError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message
	apiErr.Error.Details = details

	_ = json.NewEncoder(w).Encode(apiErr)
}

// validateToken parses the Authorization header and resolves the API token.
// Writes an error response and returns (nil, true) on failure.
func validateToken(w http.ResponseWriter, r *http.Request, queries *store.Queries) (*model.APIToken, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Missing Authorization header", nil)
		return nil, true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid Authorization header format. Use: Bearer <token>", nil)
		return nil, true
	}

	rawToken := parts[1]
	if rawToken == "" {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Token is empty", nil)
		return nil, true
	}

	token, err := queries.GetAPITokenByHash(r.Context(), model.HashAPIToken(rawToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid token", nil)
		} else {
			slog.Error("failed to validate API token", "error", err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to validate token", nil)
		}
		return nil, true
	}

	if token.ExpiresAt.Valid && time.Now().After(token.ExpiresAt.Time) {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Token has expired", nil)
		return nil, true
	}

	return &token, false
}

// TokenAuth creates middleware that requires a valid Bearer token on every
// request. The resolved token is stored in the request context.
func TokenAuth(db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errorWritten := validateToken(w, r, queries)
			if errorWritten {
				return
			}

			touchTokenLastUsed(queries, token.ID)

			ctx := context.WithValue(r.Context(), ContextKeyToken, *token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetToken retrieves the authenticated API token from the request context.
// Returns nil when the request was not token-authenticated.
func GetToken(r *http.Request) *model.APIToken {
	token, ok := r.Context().Value(ContextKeyToken).(model.APIToken)
	if !ok {
		return nil
	}
	return &token
}

// touchTokenLastUsed updates the last used timestamp in the background so it
// never delays the request.
func touchTokenLastUsed(queries *store.Queries, tokenID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queries.UpdateAPITokenLastUsed(ctx, tokenID, time.Now())
	}()
}
