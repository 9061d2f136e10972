// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"log/slog"
	"testing"

	"schoolsite/internal/model"
	"schoolsite/internal/store"
	"schoolsite/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func TestAuditHandlerPersistsErrors(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewAuditHandler(discardHandler{}, db))
	logger.Error("media upload failed", "file", "photo.jpg")

	q := store.New(db)
	entries, err := q.ListAuditEntries(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != model.AuditLevelError {
		t.Errorf("Level = %q, want %q", e.Level, model.AuditLevelError)
	}
	if e.Category != model.AuditCategoryMedia {
		t.Errorf("Category = %q, want %q", e.Category, model.AuditCategoryMedia)
	}
	if e.Message != "media upload failed" {
		t.Errorf("Message = %q", e.Message)
	}
	if e.Metadata != `{"file":"photo.jpg"}` {
		t.Errorf("Metadata = %q", e.Metadata)
	}
}

func TestAuditHandlerSkipsInfo(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewAuditHandler(discardHandler{}, db))
	logger.Info("server started")

	q := store.New(db)
	entries, err := q.ListAuditEntries(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestAuditHandlerExplicitCategory(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewAuditHandler(discardHandler{}, db))
	logger.Warn("suspicious request", "category", model.AuditCategoryAuth, "ip", "10.0.0.1")

	q := store.New(db)
	entries, err := q.ListAuditEntries(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Category != model.AuditCategoryAuth {
		t.Errorf("Category = %q, want %q", entries[0].Category, model.AuditCategoryAuth)
	}
	if entries[0].Metadata != `{"ip":"10.0.0.1"}` {
		t.Errorf("Metadata = %q", entries[0].Metadata)
	}
}
