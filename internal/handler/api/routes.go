// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"schoolsite/internal/middleware"
)

// Routes builds the /api/v1 router. publicLimiter, when non-nil, rate
// limits the unauthenticated group; everything under the admin group
// requires a bearer token.
func (h *Handler) Routes(publicLimiter func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/status", h.Status)
	r.Post("/auth/token", h.IssueToken)

	// Public read surface.
	r.Group(func(r chi.Router) {
		if publicLimiter != nil {
			r.Use(publicLimiter)
		}

		r.Get("/pages", h.ListPages)
		r.Get("/pages/tree", h.PageTree)
		r.Get("/pages/slug/{slug}", h.GetPageBySlug)
		r.Get("/pages/{id}", h.GetPage)

		r.Get("/navigation", h.ListNavigationItems)
		r.Get("/navigation/tree", h.NavigationTree)
		r.Get("/navigation/{id}", h.GetNavigationItem)

		r.Get("/staff", h.ListStaffMembers)
		r.Get("/staff/{id}", h.GetStaffMember)

		r.Get("/achievements", h.ListAchievements)
		r.Get("/achievements/{id}", h.GetAchievement)

		r.Get("/directors", h.ListDirectors)
		r.Get("/directors/{id}", h.GetDirector)

		r.Get("/content-sections", h.ListSections)
		r.Get("/content-sections/key/{key}", h.GetSectionByKey)
		r.Get("/content-sections/{id}", h.GetSection)

		r.Get("/news", h.ListNews)
		r.Get("/news/{id}", h.GetNewsItem)

		r.Get("/events", h.ListEvents)
		r.Get("/events/{id}", h.GetEvent)

		r.Get("/useful-links", h.ListUsefulLinks)
		r.Get("/useful-links/{id}", h.GetUsefulLink)

		r.Get("/translations", h.ListTranslations)

		r.Get("/media", h.ListMediaFiles)
		r.Get("/media/{id}", h.GetMediaFile)
	})

	// Admin surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(h.db))

		r.Get("/auth/info", h.AuthInfo)
		r.Post("/auth/password", h.ChangePassword)
		r.Get("/auth/tokens", h.ListAPITokens)
		r.Delete("/auth/tokens/{id}", h.RevokeAPIToken)

		r.Get("/pages/all", h.ListAllPages)
		r.Get("/pages/tree/all", h.AdminPageTree)
		r.Post("/pages", h.CreatePage)
		r.Put("/pages/{id}", h.UpdatePage)
		r.Delete("/pages/{id}", h.DeletePage)
		r.Post("/pages/reorder", h.ReorderPages)

		r.Get("/navigation/all", h.ListAllNavigationItems)
		r.Get("/navigation/tree/all", h.AdminNavigationTree)
		r.Post("/navigation", h.CreateNavigationItem)
		r.Put("/navigation/{id}", h.UpdateNavigationItem)
		r.Delete("/navigation/{id}", h.DeleteNavigationItem)
		r.Post("/navigation/reorder", h.ReorderNavigationItems)

		r.Get("/staff/all", h.ListAllStaffMembers)
		r.Post("/staff", h.CreateStaffMember)
		r.Put("/staff/{id}", h.UpdateStaffMember)
		r.Delete("/staff/{id}", h.DeleteStaffMember)
		r.Post("/staff/reorder", h.ReorderStaffMembers)

		r.Get("/achievements/all", h.ListAllAchievements)
		r.Post("/achievements", h.CreateAchievement)
		r.Put("/achievements/{id}", h.UpdateAchievement)
		r.Delete("/achievements/{id}", h.DeleteAchievement)
		r.Post("/achievements/reorder", h.ReorderAchievements)

		r.Get("/directors/all", h.ListAllDirectors)
		r.Post("/directors", h.CreateDirector)
		r.Put("/directors/{id}", h.UpdateDirector)
		r.Delete("/directors/{id}", h.DeleteDirector)
		r.Post("/directors/reorder", h.ReorderDirectors)

		r.Get("/content-sections/all", h.ListAllSections)
		r.Post("/content-sections", h.CreateSection)
		r.Put("/content-sections/bulk", h.BulkUpdateSections)
		r.Put("/content-sections/{id}", h.UpdateSection)
		r.Delete("/content-sections/{id}", h.DeleteSection)
		r.Post("/content-sections/reorder", h.ReorderSections)

		r.Get("/news/all", h.ListAllNews)
		r.Post("/news", h.CreateNewsItem)
		r.Put("/news/{id}", h.UpdateNewsItem)
		r.Delete("/news/{id}", h.DeleteNewsItem)

		r.Get("/events/all", h.ListAllEvents)
		r.Post("/events", h.CreateEvent)
		r.Put("/events/{id}", h.UpdateEvent)
		r.Delete("/events/{id}", h.DeleteEvent)

		r.Get("/useful-links/all", h.ListAllUsefulLinks)
		r.Post("/useful-links", h.CreateUsefulLink)
		r.Put("/useful-links/{id}", h.UpdateUsefulLink)
		r.Delete("/useful-links/{id}", h.DeleteUsefulLink)
		r.Post("/useful-links/reorder", h.ReorderUsefulLinks)
		r.Post("/useful-links/{id}/content", h.CreateUsefulLinkContent)
		r.Put("/useful-links/content/{id}", h.UpdateUsefulLinkContent)
		r.Delete("/useful-links/content/{id}", h.DeleteUsefulLinkContent)
		r.Post("/useful-links/content/reorder", h.ReorderUsefulLinkContent)

		r.Get("/translations/all", h.ListAllTranslations)
		r.Put("/translations", h.UpsertTranslations)
		r.Delete("/translations/{key}", h.DeleteTranslation)

		r.Get("/media/all", h.ListAllMediaFiles)
		r.Post("/media", h.UploadMediaFile)
		r.Put("/media/{id}", h.UpdateMediaFile)
		r.Delete("/media/{id}", h.DeleteMediaFile)
	})

	return r
}
