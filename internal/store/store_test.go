// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"schoolsite/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "schoolsite-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func createTestPage(t *testing.T, q *Queries, slug string, parentID sql.NullInt64, position int64) model.Page {
	t.Helper()
	now := time.Now()
	page, err := q.CreatePage(context.Background(), CreatePageParams{
		ParentID:   parentID,
		Slug:       slug,
		TitleBg:    "Заглавие " + slug,
		TitleEn:    "Title " + slug,
		BodyFormat: model.BodyFormatHTML,
		Position:   position,
		ShowInMenu: true,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("CreatePage(%s): %v", slug, err)
	}
	return page
}

func TestCreateAndGetPage(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	page := createTestPage(t, q, "school", sql.NullInt64{}, 0)
	if page.ID == 0 {
		t.Fatal("page.ID = 0")
	}
	if page.TitleBg != "Заглавие school" {
		t.Errorf("TitleBg = %q", page.TitleBg)
	}

	got, err := q.GetPageBySlug(ctx, "school")
	if err != nil {
		t.Fatalf("GetPageBySlug: %v", err)
	}
	if got.ID != page.ID {
		t.Errorf("GetPageBySlug id = %d, want %d", got.ID, page.ID)
	}

	_, err = q.GetPageByID(ctx, 9999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetPageByID(9999) err = %v, want sql.ErrNoRows", err)
	}
}

func TestPageSlugConflict(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	createTestPage(t, q, "contacts", sql.NullInt64{}, 0)

	now := time.Now()
	_, err := q.CreatePage(context.Background(), CreatePageParams{
		Slug:       "contacts",
		BodyFormat: model.BodyFormatHTML,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err == nil {
		t.Fatal("duplicate slug accepted")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false", err)
	}
}

func TestListActivePagesOrder(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	// Same position for b and c: tie breaks by id.
	a := createTestPage(t, q, "a", sql.NullInt64{}, 2)
	b := createTestPage(t, q, "b", sql.NullInt64{}, 1)
	c := createTestPage(t, q, "c", sql.NullInt64{}, 1)
	if err := q.SoftDeletePage(ctx, a.ID, time.Now()); err != nil {
		t.Fatalf("SoftDeletePage: %v", err)
	}

	pages, err := q.ListActivePages(ctx)
	if err != nil {
		t.Fatalf("ListActivePages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2", len(pages))
	}
	if pages[0].ID != b.ID || pages[1].ID != c.ID {
		t.Errorf("order = %d, %d, want %d, %d", pages[0].ID, pages[1].ID, b.ID, c.ID)
	}

	all, err := q.ListAllPages(ctx)
	if err != nil {
		t.Fatalf("ListAllPages: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestSoftDeleteIsReversible(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	page := createTestPage(t, q, "news", sql.NullInt64{}, 0)
	if err := q.SoftDeletePage(ctx, page.ID, time.Now()); err != nil {
		t.Fatalf("SoftDeletePage: %v", err)
	}

	// Row still fetchable by id, just inactive.
	got, err := q.GetPageByID(ctx, page.ID)
	if err != nil {
		t.Fatalf("GetPageByID after soft delete: %v", err)
	}
	if got.IsActive {
		t.Error("page still active after soft delete")
	}

	// Update with IsActive restores it.
	restored, err := q.UpdatePage(ctx, UpdatePageParams{
		ID:         page.ID,
		ParentID:   got.ParentID,
		Slug:       got.Slug,
		TitleBg:    got.TitleBg,
		TitleEn:    got.TitleEn,
		BodyBg:     got.BodyBg,
		BodyEn:     got.BodyEn,
		BodyFormat: got.BodyFormat,
		Position:   got.Position,
		ShowInMenu: got.ShowInMenu,
		IsActive:   true,
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}
	if !restored.IsActive {
		t.Error("page not reactivated")
	}
}

func TestHardDeletePageCascades(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	parent := createTestPage(t, q, "school", sql.NullInt64{}, 0)
	child := createTestPage(t, q, "school-history",
		sql.NullInt64{Int64: parent.ID, Valid: true}, 0)

	if err := q.HardDeletePage(ctx, parent.ID); err != nil {
		t.Fatalf("HardDeletePage: %v", err)
	}

	if _, err := q.GetPageByID(ctx, child.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("child survived parent hard delete: err = %v", err)
	}
}

func TestHardDeleteUsefulLinkCascades(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	link, err := q.CreateUsefulLink(ctx, CreateUsefulLinkParams{
		TitleBg: "МОН", TitleEn: "Ministry of Education", URL: "https://mon.bg",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUsefulLink: %v", err)
	}
	content, err := q.CreateUsefulLinkContent(ctx, CreateUsefulLinkContentParams{
		LinkID: link.ID, BodyBg: "Описание", BodyEn: "Description",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUsefulLinkContent: %v", err)
	}

	if err := q.HardDeleteUsefulLink(ctx, link.ID); err != nil {
		t.Fatalf("HardDeleteUsefulLink: %v", err)
	}
	if _, err := q.GetUsefulLinkContentByID(ctx, content.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("content survived link hard delete: err = %v", err)
	}
}

func TestDeleteMissingRowIsNoRows(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if err := q.SoftDeletePage(ctx, 4242, time.Now()); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("SoftDeletePage err = %v, want sql.ErrNoRows", err)
	}
	if err := q.HardDeletePage(ctx, 4242); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("HardDeletePage err = %v, want sql.ErrNoRows", err)
	}
}

func TestRunBatchCommits(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	a := createTestPage(t, q, "a", sql.NullInt64{}, 0)
	b := createTestPage(t, q, "b", sql.NullInt64{}, 1)

	err := RunBatch(ctx, db, func(tx *Queries) error {
		now := time.Now()
		if err := tx.UpdatePagePosition(ctx, a.ID, 1, now); err != nil {
			return err
		}
		return tx.UpdatePagePosition(ctx, b.ID, 0, now)
	})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	pages, err := q.ListActivePages(ctx)
	if err != nil {
		t.Fatalf("ListActivePages: %v", err)
	}
	if pages[0].ID != b.ID || pages[1].ID != a.ID {
		t.Errorf("order after batch = %d, %d, want %d, %d",
			pages[0].ID, pages[1].ID, b.ID, a.ID)
	}
}

func TestRunBatchRollsBackOnFailure(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	var ids []int64
	for i, slug := range []string{"p1", "p2", "p3", "p4", "p5"} {
		page := createTestPage(t, q, slug, sql.NullInt64{}, int64(i))
		ids = append(ids, page.ID)
	}

	// Third of five moves targets a missing row; nothing may stick.
	moves := []struct {
		id  int64
		pos int64
	}{
		{ids[0], 4},
		{ids[1], 3},
		{99999, 2},
		{ids[3], 1},
		{ids[4], 0},
	}
	err := RunBatch(ctx, db, func(tx *Queries) error {
		now := time.Now()
		for _, m := range moves {
			if err := tx.UpdatePagePosition(ctx, m.id, m.pos, now); err != nil {
				return err
			}
		}
		return nil
	})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("RunBatch err = %v, want sql.ErrNoRows", err)
	}

	pages, err := q.ListActivePages(ctx)
	if err != nil {
		t.Fatalf("ListActivePages: %v", err)
	}
	for i, page := range pages {
		if page.ID != ids[i] || page.Position != int64(i) {
			t.Errorf("pages[%d] = id %d pos %d, want id %d pos %d",
				i, page.ID, page.Position, ids[i], int64(i))
		}
	}
}

func TestRunBatchRollsBackOnPanic(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	page := createTestPage(t, q, "panicky", sql.NullInt64{}, 0)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic did not propagate")
			}
		}()
		_ = RunBatch(ctx, db, func(tx *Queries) error {
			if err := tx.UpdatePagePosition(ctx, page.ID, 7, time.Now()); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	got, err := q.GetPageByID(ctx, page.ID)
	if err != nil {
		t.Fatalf("GetPageByID: %v", err)
	}
	if got.Position != 0 {
		t.Errorf("position = %d after panic, want 0", got.Position)
	}
}

func TestSectionGroupFilter(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	mk := func(key, group string, position int64) {
		t.Helper()
		_, err := q.CreateSection(ctx, CreateSectionParams{
			SectionKey: key, SectionGroup: group,
			HeadingBg: "Секция", HeadingEn: "Section",
			BodyFormat: model.BodyFormatHTML, Position: position,
			IsActive: true, CreatedAt: now, UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("CreateSection(%s): %v", key, err)
		}
	}
	mk("welcome", model.SectionGroupHeader, 0)
	mk("motto", model.SectionGroupHeader, 1)
	mk("patron-bio", model.SectionGroupPatron, 0)

	header, err := q.ListActiveSections(ctx, model.SectionGroupHeader)
	if err != nil {
		t.Fatalf("ListActiveSections: %v", err)
	}
	if len(header) != 2 {
		t.Fatalf("len(header) = %d, want 2", len(header))
	}
	if header[0].SectionKey != "welcome" || header[1].SectionKey != "motto" {
		t.Errorf("header order = %q, %q", header[0].SectionKey, header[1].SectionKey)
	}

	all, err := q.ListActiveSections(ctx, "")
	if err != nil {
		t.Fatalf("ListActiveSections(all): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestUpsertTranslation(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	first, err := q.UpsertTranslation(ctx, UpsertTranslationParams{
		Key: "nav.home", ValueBg: "Начало", ValueEn: "Home", UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("UpsertTranslation: %v", err)
	}

	second, err := q.UpsertTranslation(ctx, UpsertTranslationParams{
		Key: "nav.home", ValueBg: "Начална страница", ValueEn: "Home", UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("UpsertTranslation(update): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created new row: id %d != %d", second.ID, first.ID)
	}
	if second.ValueBg != "Начална страница" {
		t.Errorf("ValueBg = %q", second.ValueBg)
	}

	list, err := q.ListTranslations(ctx)
	if err != nil {
		t.Fatalf("ListTranslations: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1", len(list))
	}
}

func TestAPITokenLookup(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email: "admin@test.local", Name: "Admin", PasswordHash: "x",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	hash := model.HashAPIToken("sch_raw-token")
	token, err := q.CreateAPIToken(ctx, CreateAPITokenParams{
		UserID: user.ID, Name: "ci", TokenHash: hash,
		IsActive: true, CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateAPIToken: %v", err)
	}

	got, err := q.GetAPITokenByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GetAPITokenByHash: %v", err)
	}
	if got.ID != token.ID || got.UserID != user.ID {
		t.Errorf("token = %+v", got)
	}

	if err := q.RevokeAPIToken(ctx, token.ID); err != nil {
		t.Fatalf("RevokeAPIToken: %v", err)
	}
	if _, err := q.GetAPITokenByHash(ctx, hash); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("revoked token still resolvable: err = %v", err)
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	q := New(db)
	user, err := q.GetUserByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if !user.IsActive {
		t.Error("seeded admin not active")
	}

	items, err := q.ListActiveNavigationItems(ctx)
	if err != nil {
		t.Fatalf("ListActiveNavigationItems: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("no navigation items seeded")
	}
	if items[0].LinkKey != "home" {
		t.Errorf("items[0].LinkKey = %q, want %q", items[0].LinkKey, "home")
	}

	// Second run is a no-op.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed(again): %v", err)
	}
	n, err := q.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if n != 1 {
		t.Errorf("CountUsers = %d, want 1", n)
	}
}

func TestGetTranslationByKey(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if _, err := q.UpsertTranslation(ctx, UpsertTranslationParams{
		Key: "footer.address", ValueBg: "ул. Иван Вазов 1", ValueEn: "1 Ivan Vazov St", UpdatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("UpsertTranslation: %v", err)
	}

	tr, err := q.GetTranslationByKey(ctx, "footer.address")
	if err != nil {
		t.Fatalf("GetTranslationByKey: %v", err)
	}
	if tr.ValueEn != "1 Ivan Vazov St" {
		t.Errorf("ValueEn = %q", tr.ValueEn)
	}

	if _, err := q.GetTranslationByKey(ctx, "missing.key"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("missing key err = %v, want sql.ErrNoRows", err)
	}
}

func TestGetMediaFileByName(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	created, err := q.CreateMediaFile(ctx, CreateMediaFileParams{
		FileName: "abc123.jpg", OriginalName: "building.jpg", MimeType: "image/jpeg",
		SizeBytes: 1024, Kind: model.MediaKindImage, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateMediaFile: %v", err)
	}

	got, err := q.GetMediaFileByName(ctx, "abc123.jpg")
	if err != nil {
		t.Fatalf("GetMediaFileByName: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %d, want %d", got.ID, created.ID)
	}
}

func TestListMenuPagesFiltersFlag(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	createTestPage(t, q, "in-menu", sql.NullInt64{}, 0)
	if _, err := q.CreatePage(ctx, CreatePageParams{
		Slug: "hidden", TitleBg: "Скрита", BodyFormat: model.BodyFormatHTML,
		Position: 1, ShowInMenu: false, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	menu, err := q.ListMenuPages(ctx)
	if err != nil {
		t.Fatalf("ListMenuPages: %v", err)
	}
	if len(menu) != 1 || menu[0].Slug != "in-menu" {
		t.Errorf("ListMenuPages = %d pages, want just in-menu", len(menu))
	}

	active, err := q.ListActivePages(ctx)
	if err != nil {
		t.Fatalf("ListActivePages: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("len(active) = %d, want 2", len(active))
	}
}

func TestListAllUsefulLinkContentIncludesInactive(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	link, err := q.CreateUsefulLink(ctx, CreateUsefulLinkParams{
		TitleBg: "РУО", URL: "https://ruo-sofia.bg",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUsefulLink: %v", err)
	}
	content, err := q.CreateUsefulLinkContent(ctx, CreateUsefulLinkContentParams{
		LinkID: link.ID, BodyBg: "Описание", IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUsefulLinkContent: %v", err)
	}
	if err := q.SoftDeleteUsefulLinkContent(ctx, content.ID, now); err != nil {
		t.Fatalf("SoftDeleteUsefulLinkContent: %v", err)
	}

	visible, err := q.ListActiveUsefulLinkContent(ctx, link.ID)
	if err != nil {
		t.Fatalf("ListActiveUsefulLinkContent: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("len(visible) = %d, want 0", len(visible))
	}

	all, err := q.ListAllUsefulLinkContent(ctx)
	if err != nil {
		t.Fatalf("ListAllUsefulLinkContent: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len(all) = %d, want 1", len(all))
	}
}

func TestForeignKeysSurvivePoolRecycling(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	// Drop every idle connection so the next statement runs on a fresh one.
	db.SetMaxIdleConns(0)
	db.SetMaxIdleConns(10)

	var fk int64
	if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("reading foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d on a fresh pooled connection, want 1", fk)
	}

	ctx := context.Background()
	q := New(db)

	parent := createTestPage(t, q, "parent", sql.NullInt64{}, 0)
	child := createTestPage(t, q, "child", sql.NullInt64{Int64: parent.ID, Valid: true}, 0)

	db.SetMaxIdleConns(0)
	db.SetMaxIdleConns(10)

	if err := q.HardDeletePage(ctx, parent.ID); err != nil {
		t.Fatalf("HardDeletePage: %v", err)
	}
	if _, err := q.GetPageByID(ctx, child.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("child survived permanent delete of parent: err = %v", err)
	}
}
