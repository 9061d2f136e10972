// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpsertAndListTranslations(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/translations", env.token, map[string]TranslationValue{
		"nav.home":    {ValueBg: "Начало", ValueEn: "Home"},
		"nav.contact": {ValueBg: "Контакти", ValueEn: "Contacts"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		Updated int `json:"updated"`
	}
	decodeData(t, rec, &result)
	require.Equal(t, 2, result.Updated)

	rec = env.do(t, http.MethodGet, "/translations", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var dict map[string]TranslationValue
	decodeData(t, rec, &dict)
	require.Len(t, dict, 2)
	require.Equal(t, "Начало", dict["nav.home"].ValueBg)
	require.Equal(t, "Home", dict["nav.home"].ValueEn)
}

func TestUpsertTranslationsOverwrites(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/translations", env.token, map[string]TranslationValue{
		"footer.note": {ValueBg: "Старо", ValueEn: "Old"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPut, "/translations", env.token, map[string]TranslationValue{
		"footer.note": {ValueBg: "Ново", ValueEn: "New"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/translations", "", nil)
	var dict map[string]TranslationValue
	decodeData(t, rec, &dict)
	require.Len(t, dict, 1)
	require.Equal(t, "Ново", dict["footer.note"].ValueBg)
}

func TestUpsertTranslationsRejectsEmptyKey(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/translations", env.token, map[string]TranslationValue{
		"": {ValueBg: "празен ключ"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteTranslation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/translations", env.token, map[string]TranslationValue{
		"nav.home": {ValueBg: "Начало"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/translations/nav.home", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/translations/nav.home", env.token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/translations", "", nil)
	var dict map[string]TranslationValue
	decodeData(t, rec, &dict)
	require.Empty(t, dict)
}
