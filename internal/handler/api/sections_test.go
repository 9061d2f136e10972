// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func createSection(t *testing.T, env *testEnv, body map[string]any) SectionResponse {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/content-sections", env.token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var section SectionResponse
	decodeData(t, rec, &section)
	return section
}

func TestGetSectionByKey(t *testing.T) {
	env := newTestEnv(t)

	createSection(t, env, map[string]any{
		"section_key": "mission",
		"heading_bg":  "Мисия",
		"body_bg":     "Текст на мисията",
	})

	rec := env.do(t, http.MethodGet, "/content-sections/key/mission", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var section SectionResponse
	decodeData(t, rec, &section)
	require.Equal(t, "mission", section.SectionKey)
	require.Equal(t, "general", section.SectionGroup)

	rec = env.do(t, http.MethodGet, "/content-sections/key/no-such-key", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSectionsByGroup(t *testing.T) {
	env := newTestEnv(t)

	createSection(t, env, map[string]any{"section_key": "mission", "section_group": "about"})
	createSection(t, env, map[string]any{"section_key": "values", "section_group": "about"})
	createSection(t, env, map[string]any{"section_key": "banner", "section_group": "home"})

	rec := env.do(t, http.MethodGet, "/content-sections?group=about", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sections []SectionResponse
	decodeData(t, rec, &sections)
	require.Len(t, sections, 2)
	for _, s := range sections {
		require.Equal(t, "about", s.SectionGroup)
	}
}

func TestBulkUpdateSections(t *testing.T) {
	env := newTestEnv(t)

	first := createSection(t, env, map[string]any{
		"section_key": "mission",
		"heading_bg":  "Мисия",
	})
	second := createSection(t, env, map[string]any{
		"section_key": "vision",
		"heading_bg":  "Визия",
	})

	rec := env.do(t, http.MethodPut, "/content-sections/bulk", env.token, map[string]any{
		"items": []map[string]any{
			{"id": first.ID, "heading_en": "Mission"},
			{"id": second.ID, "heading_en": "Vision", "position": 5},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated []SectionResponse
	decodeData(t, rec, &updated)
	require.Len(t, updated, 2)
	require.Equal(t, "Mission", updated[0].HeadingEn)
	require.Equal(t, "Мисия", updated[0].HeadingBg)
	require.Equal(t, int64(5), updated[1].Position)
}

func TestBulkUpdateSectionsIsAtomic(t *testing.T) {
	env := newTestEnv(t)

	section := createSection(t, env, map[string]any{
		"section_key": "mission",
		"heading_bg":  "Мисия",
	})

	rec := env.do(t, http.MethodPut, "/content-sections/bulk", env.token, map[string]any{
		"items": []map[string]any{
			{"id": section.ID, "heading_bg": "Променена"},
			{"id": int64(99999), "heading_bg": "Няма такава"},
		},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The first edit must have been rolled back with the failed one.
	rec = env.do(t, http.MethodGet, "/content-sections/"+itoa(section.ID), "", nil)
	var got SectionResponse
	decodeData(t, rec, &got)
	require.Equal(t, "Мисия", got.HeadingBg)
}

func TestBulkUpdateSectionsRejectsMissingID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/content-sections/bulk", env.token, map[string]any{
		"items": []map[string]any{{"heading_bg": "Без идентификатор"}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/content-sections/bulk", env.token, map[string]any{
		"items": []map[string]any{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSectionDuplicateKey(t *testing.T) {
	env := newTestEnv(t)

	createSection(t, env, map[string]any{"section_key": "mission"})

	rec := env.do(t, http.MethodPost, "/content-sections", env.token, map[string]any{
		"section_key": "mission",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, decodeError(t, rec).Details, "section_key")
}
