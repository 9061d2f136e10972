// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func createAchievement(t *testing.T, env *testEnv, title string, year, position int64) AchievementResponse {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/achievements", env.token, map[string]any{
		"title_bg": title,
		"year":     year,
		"position": position,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var achievement AchievementResponse
	decodeData(t, rec, &achievement)
	return achievement
}

func listAchievements(t *testing.T, env *testEnv) []AchievementResponse {
	t.Helper()

	rec := env.do(t, http.MethodGet, "/achievements", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var achievements []AchievementResponse
	decodeData(t, rec, &achievements)
	return achievements
}

func TestPartialReorderPreservesOmittedSiblings(t *testing.T) {
	env := newTestEnv(t)

	a := createAchievement(t, env, "Олимпиада по математика", 2023, 0)
	b := createAchievement(t, env, "Национален конкурс", 2024, 1)
	c := createAchievement(t, env, "Спортен турнир", 2025, 2)

	// Only C and A are named; B keeps its stored position.
	rec := env.do(t, http.MethodPost, "/achievements/reorder", env.token, map[string]any{
		"items": []map[string]any{
			{"id": c.ID, "position": 0},
			{"id": a.ID, "position": 1},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := listAchievements(t, env)
	require.Len(t, got, 3)
	require.Equal(t, c.ID, got[0].ID)
	require.Equal(t, int64(0), got[0].Position)
	// A and B both end at position 1; the id tie-break keeps A first.
	require.Equal(t, a.ID, got[1].ID)
	require.Equal(t, int64(1), got[1].Position)
	require.Equal(t, b.ID, got[2].ID)
	require.Equal(t, int64(1), got[2].Position)
}

func TestReorderIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	a := createAchievement(t, env, "Първо", 2023, 0)
	b := createAchievement(t, env, "Второ", 2024, 1)

	body := map[string]any{
		"items": []map[string]any{{"id": b.ID}, {"id": a.ID}},
	}

	for range 2 {
		rec := env.do(t, http.MethodPost, "/achievements/reorder", env.token, body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	got := listAchievements(t, env)
	require.Len(t, got, 2)
	require.Equal(t, b.ID, got[0].ID)
	require.Equal(t, int64(0), got[0].Position)
	require.Equal(t, a.ID, got[1].ID)
	require.Equal(t, int64(1), got[1].Position)
}

func TestCreateDirectorTenureValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/directors", env.token, map[string]any{
		"name_bg":     "Иван Петров",
		"tenure_from": 1995,
		"tenure_to":   1990,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, decodeError(t, rec).Details, "tenure_to")

	rec = env.do(t, http.MethodPost, "/directors", env.token, map[string]any{
		"name_bg":     "Иван Петров",
		"tenure_from": 1990,
		"tenure_to":   1995,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var director DirectorResponse
	decodeData(t, rec, &director)
	require.NotNil(t, director.TenureTo)
	require.Equal(t, int64(1995), *director.TenureTo)
}

func TestUpdateDirectorClearsTenureTo(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/directors", env.token, map[string]any{
		"name_bg":     "Мария Георгиева",
		"tenure_from": 2015,
		"tenure_to":   2020,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var director DirectorResponse
	decodeData(t, rec, &director)

	// tenure_to of 0 marks a sitting director.
	rec = env.do(t, http.MethodPut, "/directors/"+itoa(director.ID), env.token, map[string]any{
		"tenure_to": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated DirectorResponse
	decodeData(t, rec, &updated)
	require.Nil(t, updated.TenureTo)
}

func TestCreateAchievementValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/achievements", env.token, map[string]any{
		"title_bg": "Без година",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, decodeError(t, rec).Details, "year")
}
