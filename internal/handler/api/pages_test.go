// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"schoolsite/internal/util"
)

func createPage(t *testing.T, env *testEnv, body map[string]any) PageResponse {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/pages", env.token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var page PageResponse
	decodeData(t, rec, &page)
	return page
}

func TestCreatePageDerivesSlug(t *testing.T) {
	env := newTestEnv(t)

	page := createPage(t, env, map[string]any{
		"title_bg": "История на училището",
		"title_en": "School History",
	})
	// Cyrillic titles transliterate to a Latin slug.
	require.NotEmpty(t, page.Slug)
	require.True(t, util.IsValidSlug(page.Slug), "derived slug %q is not valid", page.Slug)
	require.True(t, page.IsActive)

	rec := env.do(t, http.MethodGet, "/pages/slug/"+page.Slug, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreatePageValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/pages", env.token, map[string]any{
		"title_en": "No Bulgarian title",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	detail := decodeError(t, rec)
	require.Equal(t, "validation_error", detail.Code)
	require.Contains(t, detail.Details, "title_bg")
}

func TestCreatePageDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)

	createPage(t, env, map[string]any{"title_bg": "Контакти", "slug": "contacts"})

	rec := env.do(t, http.MethodPost, "/pages", env.token, map[string]any{
		"title_bg": "Контакти 2",
		"slug":     "contacts",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, decodeError(t, rec).Details, "slug")
}

func TestUpdatePageMergesFields(t *testing.T) {
	env := newTestEnv(t)

	page := createPage(t, env, map[string]any{
		"title_bg": "Училището",
		"title_en": "The School",
		"body_bg":  "<p>Текст</p>",
	})

	rec := env.do(t, http.MethodPut, "/pages/"+itoa(page.ID), env.token, map[string]any{
		"title_en": "About the School",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated PageResponse
	decodeData(t, rec, &updated)
	require.Equal(t, "About the School", updated.TitleEn)
	require.Equal(t, "Училището", updated.TitleBg)
	require.Equal(t, "<p>Текст</p>", updated.BodyBg)
}

func TestUpdatePageSanitizesHTML(t *testing.T) {
	env := newTestEnv(t)

	page := createPage(t, env, map[string]any{"title_bg": "Новини"})

	rec := env.do(t, http.MethodPut, "/pages/"+itoa(page.ID), env.token, map[string]any{
		"body_en": `<p>safe</p><script>alert(1)</script>`,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated PageResponse
	decodeData(t, rec, &updated)
	require.Contains(t, updated.BodyEn, "<p>safe</p>")
	require.NotContains(t, updated.BodyEn, "<script>")
}

func TestUpdatePageRejectsParentCycle(t *testing.T) {
	env := newTestEnv(t)

	a := createPage(t, env, map[string]any{"title_bg": "А", "slug": "a"})
	b := createPage(t, env, map[string]any{"title_bg": "Б", "slug": "b"})

	rec := env.do(t, http.MethodPut, "/pages/"+itoa(a.ID), env.token, map[string]any{
		"parent_id": b.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Attaching b under a would close the loop a -> b -> a.
	rec = env.do(t, http.MethodPut, "/pages/"+itoa(b.ID), env.token, map[string]any{
		"parent_id": a.ID,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	require.Contains(t, decodeError(t, rec).Details, "parent_id")

	// The chain stays intact and both pages remain reachable from the tree.
	rec = env.do(t, http.MethodGet, "/pages/tree", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var roots []PageNode
	decodeData(t, rec, &roots)
	require.Len(t, roots, 1)
	require.Equal(t, "b", roots[0].Slug)
	require.Len(t, roots[0].Children, 1)
	require.Equal(t, "a", roots[0].Children[0].Slug)
}

func TestUpdatePageRejectsDeepParentCycle(t *testing.T) {
	env := newTestEnv(t)

	root := createPage(t, env, map[string]any{"title_bg": "Корен", "slug": "root"})
	mid := createPage(t, env, map[string]any{
		"title_bg": "Среда", "slug": "mid", "parent_id": root.ID,
	})
	leaf := createPage(t, env, map[string]any{
		"title_bg": "Лист", "slug": "leaf", "parent_id": mid.ID,
	})

	// root -> mid -> leaf; moving root under leaf would loop through the grandchild.
	rec := env.do(t, http.MethodPut, "/pages/"+itoa(root.ID), env.token, map[string]any{
		"parent_id": leaf.ID,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	require.Contains(t, decodeError(t, rec).Details, "parent_id")
}

func TestPageTreeNesting(t *testing.T) {
	env := newTestEnv(t)

	root := createPage(t, env, map[string]any{
		"title_bg": "Училището", "slug": "school", "position": 0,
	})
	createPage(t, env, map[string]any{
		"title_bg": "История", "slug": "history", "parent_id": root.ID, "position": 0,
	})
	createPage(t, env, map[string]any{
		"title_bg": "Контакти", "slug": "contacts", "position": 1,
	})

	rec := env.do(t, http.MethodGet, "/pages/tree", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var roots []PageNode
	decodeData(t, rec, &roots)
	require.Len(t, roots, 2)
	require.Equal(t, "school", roots[0].Slug)
	require.Equal(t, "contacts", roots[1].Slug)
	require.Len(t, roots[0].Children, 1)
	require.Equal(t, "history", roots[0].Children[0].Slug)

	// Leaves omit the children key entirely on the public tree.
	require.NotContains(t, rec.Body.String(), `"children":[]`)
	require.Contains(t, strings.ReplaceAll(rec.Body.String(), " ", ""), `"slug":"contacts"`)
}

func TestAdminPageTreeKeepsEmptyChildren(t *testing.T) {
	env := newTestEnv(t)

	createPage(t, env, map[string]any{"title_bg": "Начало", "slug": "home"})

	rec := env.do(t, http.MethodGet, "/pages/tree/all", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"children":[]`)
}

func TestReorderPages(t *testing.T) {
	env := newTestEnv(t)

	a := createPage(t, env, map[string]any{"title_bg": "А", "slug": "a", "position": 0})
	b := createPage(t, env, map[string]any{"title_bg": "Б", "slug": "b", "position": 1})
	c := createPage(t, env, map[string]any{"title_bg": "В", "slug": "c", "position": 2})

	// Positions fall back to array index: c first, a second, b third.
	rec := env.do(t, http.MethodPost, "/pages/reorder", env.token, map[string]any{
		"items": []map[string]any{{"id": c.ID}, {"id": a.ID}, {"id": b.ID}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/pages", "", nil)
	var pages []PageResponse
	decodeData(t, rec, &pages)
	require.Len(t, pages, 3)
	require.Equal(t, "c", pages[0].Slug)
	require.Equal(t, "a", pages[1].Slug)
	require.Equal(t, "b", pages[2].Slug)
}

func TestReorderPagesRollsBackOnMissingRow(t *testing.T) {
	env := newTestEnv(t)

	a := createPage(t, env, map[string]any{"title_bg": "А", "slug": "a", "position": 0})
	b := createPage(t, env, map[string]any{"title_bg": "Б", "slug": "b", "position": 1})

	rec := env.do(t, http.MethodPost, "/pages/reorder", env.token, map[string]any{
		"items": []map[string]any{
			{"id": b.ID, "position": 0},
			{"id": int64(99999), "position": 1},
		},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The valid move must not have been applied.
	rec = env.do(t, http.MethodGet, "/pages", "", nil)
	var pages []PageResponse
	decodeData(t, rec, &pages)
	require.Equal(t, a.ID, pages[0].ID)
	require.Equal(t, b.ID, pages[1].ID)
}

func TestReorderPagesRejectsEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/pages/reorder", env.token, map[string]any{
		"items": []map[string]any{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePageSoftThenPermanent(t *testing.T) {
	env := newTestEnv(t)

	page := createPage(t, env, map[string]any{"title_bg": "Архив", "slug": "archive"})

	rec := env.do(t, http.MethodDelete, "/pages/"+itoa(page.ID), env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Soft-deleted pages leave the public list but stay in the admin list.
	rec = env.do(t, http.MethodGet, "/pages", "", nil)
	var pub []PageResponse
	decodeData(t, rec, &pub)
	require.Empty(t, pub)

	rec = env.do(t, http.MethodGet, "/pages/all", env.token, nil)
	var all []PageResponse
	decodeData(t, rec, &all)
	require.Len(t, all, 1)
	require.False(t, all[0].IsActive)

	rec = env.do(t, http.MethodDelete, "/pages/"+itoa(page.ID)+"?permanent=true", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/pages/"+itoa(page.ID), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenderMarkdownPage(t *testing.T) {
	env := newTestEnv(t)

	page := createPage(t, env, map[string]any{
		"title_bg":    "Markdown",
		"slug":        "markdown",
		"body_format": "markdown",
		"body_en":     "# Heading\n\nParagraph.",
	})

	rec := env.do(t, http.MethodGet, "/pages/"+itoa(page.ID)+"?render=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PageResponse
	decodeData(t, rec, &resp)
	require.Contains(t, resp.RenderedEn, "<h1")
	require.Contains(t, resp.RenderedEn, "Heading")
	require.Equal(t, "# Heading\n\nParagraph.", resp.BodyEn)
}
