// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"
)

// User represents an admin account able to issue API tokens.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// APIToken represents a bearer credential for the admin API.
// Only the SHA-256 hash of the token is stored.
type APIToken struct {
	ID         int64        `json:"id"`
	UserID     int64        `json:"user_id"`
	Name       string       `json:"name"`
	TokenHash  string       `json:"-"`
	IsActive   bool         `json:"is_active"`
	ExpiresAt  sql.NullTime `json:"-"`
	LastUsedAt sql.NullTime `json:"-"`
	CreatedAt  time.Time    `json:"created_at"`
}

// HashAPIToken returns the hex-encoded SHA-256 hash of a raw token.
// Tokens are hashed before storage so a database leak does not expose them.
func HashAPIToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
