// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"schoolsite/internal/model"
	"schoolsite/internal/store"
	"schoolsite/internal/util"
)

// StaffMemberResponse is the API representation of a staff member.
type StaffMemberResponse struct {
	ID        int64     `json:"id"`
	NameBg    string    `json:"name_bg"`
	NameEn    string    `json:"name_en"`
	RoleBg    string    `json:"role_bg"`
	RoleEn    string    `json:"role_en"`
	Email     string    `json:"email"`
	ImageID   *int64    `json:"image_id,omitempty"`
	Position  int64     `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateStaffMemberRequest is the request body for creating a staff member.
type CreateStaffMemberRequest struct {
	NameBg   string `json:"name_bg"`
	NameEn   string `json:"name_en"`
	RoleBg   string `json:"role_bg"`
	RoleEn   string `json:"role_en"`
	Email    string `json:"email"`
	ImageID  *int64 `json:"image_id"`
	Position *int64 `json:"position"`
	IsActive *bool  `json:"is_active"`
}

// UpdateStaffMemberRequest is the request body for updating a staff member.
type UpdateStaffMemberRequest struct {
	NameBg   *string `json:"name_bg"`
	NameEn   *string `json:"name_en"`
	RoleBg   *string `json:"role_bg"`
	RoleEn   *string `json:"role_en"`
	Email    *string `json:"email"`
	ImageID  *int64  `json:"image_id"`
	Position *int64  `json:"position"`
	IsActive *bool   `json:"is_active"`
}

func staffMemberToResponse(s model.StaffMember) StaffMemberResponse {
	return StaffMemberResponse{
		ID:        s.ID,
		NameBg:    s.NameBg,
		NameEn:    s.NameEn,
		RoleBg:    s.RoleBg,
		RoleEn:    s.RoleEn,
		Email:     s.Email,
		ImageID:   util.PtrFromNullInt64(s.ImageID),
		Position:  s.Position,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func staffToResponses(members []model.StaffMember) []StaffMemberResponse {
	responses := make([]StaffMemberResponse, 0, len(members))
	for _, s := range members {
		responses = append(responses, staffMemberToResponse(s))
	}
	return responses
}

// ListStaffMembers handles GET /api/v1/staff.
func (h *Handler) ListStaffMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.queries.ListActiveStaffMembers(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list staff members")
		return
	}
	WriteSuccess(w, staffToResponses(members), nil)
}

// ListAllStaffMembers handles GET /api/v1/staff/all.
func (h *Handler) ListAllStaffMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.queries.ListAllStaffMembers(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list staff members")
		return
	}
	WriteSuccess(w, staffToResponses(members), nil)
}

// GetStaffMember handles GET /api/v1/staff/{id}.
func (h *Handler) GetStaffMember(w http.ResponseWriter, r *http.Request) {
	member, ok := requireEntityByID(w, r, "staff member", func(id int64) (model.StaffMember, error) {
		return h.queries.GetStaffMemberByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, staffMemberToResponse(member), nil)
}

// CreateStaffMember handles POST /api/v1/staff.
func (h *Handler) CreateStaffMember(w http.ResponseWriter, r *http.Request) {
	var req CreateStaffMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.NameBg == "" {
		WriteValidationError(w, map[string]string{"name_bg": "Bulgarian name is required"})
		return
	}

	now := time.Now()
	params := store.CreateStaffMemberParams{
		NameBg:    req.NameBg,
		NameEn:    req.NameEn,
		RoleBg:    req.RoleBg,
		RoleEn:    req.RoleEn,
		Email:     req.Email,
		ImageID:   util.NullInt64FromPtr(req.ImageID),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	member, err := h.queries.CreateStaffMember(r.Context(), params)
	if err != nil {
		WriteInternalError(w, "Failed to create staff member")
		return
	}
	WriteCreated(w, staffMemberToResponse(member))
}

// UpdateStaffMember handles PUT /api/v1/staff/{id}.
func (h *Handler) UpdateStaffMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "staff member", func(id int64) (model.StaffMember, error) {
		return h.queries.GetStaffMemberByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateStaffMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateStaffMemberParams{
		ID:        existing.ID,
		NameBg:    existing.NameBg,
		NameEn:    existing.NameEn,
		RoleBg:    existing.RoleBg,
		RoleEn:    existing.RoleEn,
		Email:     existing.Email,
		ImageID:   existing.ImageID,
		Position:  existing.Position,
		IsActive:  existing.IsActive,
		UpdatedAt: time.Now(),
	}

	if req.NameBg != nil {
		params.NameBg = *req.NameBg
	}
	if req.NameEn != nil {
		params.NameEn = *req.NameEn
	}
	if req.RoleBg != nil {
		params.RoleBg = *req.RoleBg
	}
	if req.RoleEn != nil {
		params.RoleEn = *req.RoleEn
	}
	if req.Email != nil {
		params.Email = *req.Email
	}
	if req.ImageID != nil {
		if *req.ImageID == 0 {
			params.ImageID = sql.NullInt64{}
		} else {
			params.ImageID = sql.NullInt64{Int64: *req.ImageID, Valid: true}
		}
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	member, err := h.queries.UpdateStaffMember(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update staff member")
		return
	}
	WriteSuccess(w, staffMemberToResponse(member), nil)
}

// DeleteStaffMember handles DELETE /api/v1/staff/{id}.
func (h *Handler) DeleteStaffMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	deleteEntity(w, r, model.EntityStaffMember,
		func(id int64) error { return h.queries.SoftDeleteStaffMember(ctx, id, now) },
		func(id int64) error { return h.queries.HardDeleteStaffMember(ctx, id) })
}

// ReorderStaffMembers handles POST /api/v1/staff/reorder.
func (h *Handler) ReorderStaffMembers(w http.ResponseWriter, r *http.Request) {
	h.applyReorder(w, r, model.EntityStaffMember,
		func(q *store.Queries, id, position int64, now time.Time) error {
			return q.UpdateStaffMemberPosition(r.Context(), id, position, now)
		})
}

// AchievementResponse is the API representation of a school achievement.
type AchievementResponse struct {
	ID            int64     `json:"id"`
	TitleBg       string    `json:"title_bg"`
	TitleEn       string    `json:"title_en"`
	DescriptionBg string    `json:"description_bg"`
	DescriptionEn string    `json:"description_en"`
	Year          int64     `json:"year"`
	Position      int64     `json:"position"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateAchievementRequest is the request body for creating an achievement.
type CreateAchievementRequest struct {
	TitleBg       string `json:"title_bg"`
	TitleEn       string `json:"title_en"`
	DescriptionBg string `json:"description_bg"`
	DescriptionEn string `json:"description_en"`
	Year          int64  `json:"year"`
	Position      *int64 `json:"position"`
	IsActive      *bool  `json:"is_active"`
}

// UpdateAchievementRequest is the request body for updating an achievement.
type UpdateAchievementRequest struct {
	TitleBg       *string `json:"title_bg"`
	TitleEn       *string `json:"title_en"`
	DescriptionBg *string `json:"description_bg"`
	DescriptionEn *string `json:"description_en"`
	Year          *int64  `json:"year"`
	Position      *int64  `json:"position"`
	IsActive      *bool   `json:"is_active"`
}

func achievementToResponse(a model.Achievement) AchievementResponse {
	return AchievementResponse{
		ID:            a.ID,
		TitleBg:       a.TitleBg,
		TitleEn:       a.TitleEn,
		DescriptionBg: a.DescriptionBg,
		DescriptionEn: a.DescriptionEn,
		Year:          a.Year,
		Position:      a.Position,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func achievementsToResponses(achievements []model.Achievement) []AchievementResponse {
	responses := make([]AchievementResponse, 0, len(achievements))
	for _, a := range achievements {
		responses = append(responses, achievementToResponse(a))
	}
	return responses
}

// ListAchievements handles GET /api/v1/achievements.
func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.queries.ListActiveAchievements(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list achievements")
		return
	}
	WriteSuccess(w, achievementsToResponses(achievements), nil)
}

// ListAllAchievements handles GET /api/v1/achievements/all.
func (h *Handler) ListAllAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.queries.ListAllAchievements(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list achievements")
		return
	}
	WriteSuccess(w, achievementsToResponses(achievements), nil)
}

// GetAchievement handles GET /api/v1/achievements/{id}.
func (h *Handler) GetAchievement(w http.ResponseWriter, r *http.Request) {
	achievement, ok := requireEntityByID(w, r, "achievement", func(id int64) (model.Achievement, error) {
		return h.queries.GetAchievementByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, achievementToResponse(achievement), nil)
}

// CreateAchievement handles POST /api/v1/achievements.
func (h *Handler) CreateAchievement(w http.ResponseWriter, r *http.Request) {
	var req CreateAchievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.TitleBg == "" {
		validationErrors["title_bg"] = "Bulgarian title is required"
	}
	if req.Year <= 0 {
		validationErrors["year"] = "Year is required"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	now := time.Now()
	params := store.CreateAchievementParams{
		TitleBg:       req.TitleBg,
		TitleEn:       req.TitleEn,
		DescriptionBg: req.DescriptionBg,
		DescriptionEn: req.DescriptionEn,
		Year:          req.Year,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	achievement, err := h.queries.CreateAchievement(r.Context(), params)
	if err != nil {
		WriteInternalError(w, "Failed to create achievement")
		return
	}
	WriteCreated(w, achievementToResponse(achievement))
}

// UpdateAchievement handles PUT /api/v1/achievements/{id}.
func (h *Handler) UpdateAchievement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "achievement", func(id int64) (model.Achievement, error) {
		return h.queries.GetAchievementByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateAchievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateAchievementParams{
		ID:            existing.ID,
		TitleBg:       existing.TitleBg,
		TitleEn:       existing.TitleEn,
		DescriptionBg: existing.DescriptionBg,
		DescriptionEn: existing.DescriptionEn,
		Year:          existing.Year,
		Position:      existing.Position,
		IsActive:      existing.IsActive,
		UpdatedAt:     time.Now(),
	}

	if req.TitleBg != nil {
		params.TitleBg = *req.TitleBg
	}
	if req.TitleEn != nil {
		params.TitleEn = *req.TitleEn
	}
	if req.DescriptionBg != nil {
		params.DescriptionBg = *req.DescriptionBg
	}
	if req.DescriptionEn != nil {
		params.DescriptionEn = *req.DescriptionEn
	}
	if req.Year != nil {
		params.Year = *req.Year
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	achievement, err := h.queries.UpdateAchievement(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update achievement")
		return
	}
	WriteSuccess(w, achievementToResponse(achievement), nil)
}

// DeleteAchievement handles DELETE /api/v1/achievements/{id}.
func (h *Handler) DeleteAchievement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	deleteEntity(w, r, model.EntityAchievement,
		func(id int64) error { return h.queries.SoftDeleteAchievement(ctx, id, now) },
		func(id int64) error { return h.queries.HardDeleteAchievement(ctx, id) })
}

// ReorderAchievements handles POST /api/v1/achievements/reorder.
func (h *Handler) ReorderAchievements(w http.ResponseWriter, r *http.Request) {
	h.applyReorder(w, r, model.EntityAchievement,
		func(q *store.Queries, id, position int64, now time.Time) error {
			return q.UpdateAchievementPosition(r.Context(), id, position, now)
		})
}

// DirectorResponse is the API representation of a historical director.
// TenureTo is null for the current director.
type DirectorResponse struct {
	ID          int64     `json:"id"`
	NameBg      string    `json:"name_bg"`
	NameEn      string    `json:"name_en"`
	TenureFrom  int64     `json:"tenure_from"`
	TenureTo    *int64    `json:"tenure_to,omitempty"`
	BiographyBg string    `json:"biography_bg"`
	BiographyEn string    `json:"biography_en"`
	Position    int64     `json:"position"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateDirectorRequest is the request body for creating a director.
type CreateDirectorRequest struct {
	NameBg      string `json:"name_bg"`
	NameEn      string `json:"name_en"`
	TenureFrom  int64  `json:"tenure_from"`
	TenureTo    *int64 `json:"tenure_to"`
	BiographyBg string `json:"biography_bg"`
	BiographyEn string `json:"biography_en"`
	Position    *int64 `json:"position"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateDirectorRequest is the request body for updating a director.
type UpdateDirectorRequest struct {
	NameBg      *string `json:"name_bg"`
	NameEn      *string `json:"name_en"`
	TenureFrom  *int64  `json:"tenure_from"`
	TenureTo    *int64  `json:"tenure_to"`
	BiographyBg *string `json:"biography_bg"`
	BiographyEn *string `json:"biography_en"`
	Position    *int64  `json:"position"`
	IsActive    *bool   `json:"is_active"`
}

func directorToResponse(d model.Director) DirectorResponse {
	return DirectorResponse{
		ID:          d.ID,
		NameBg:      d.NameBg,
		NameEn:      d.NameEn,
		TenureFrom:  d.TenureFrom,
		TenureTo:    util.PtrFromNullInt64(d.TenureTo),
		BiographyBg: d.BiographyBg,
		BiographyEn: d.BiographyEn,
		Position:    d.Position,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func directorsToResponses(directors []model.Director) []DirectorResponse {
	responses := make([]DirectorResponse, 0, len(directors))
	for _, d := range directors {
		responses = append(responses, directorToResponse(d))
	}
	return responses
}

// ListDirectors handles GET /api/v1/directors.
func (h *Handler) ListDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := h.queries.ListActiveDirectors(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list directors")
		return
	}
	WriteSuccess(w, directorsToResponses(directors), nil)
}

// ListAllDirectors handles GET /api/v1/directors/all.
func (h *Handler) ListAllDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := h.queries.ListAllDirectors(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list directors")
		return
	}
	WriteSuccess(w, directorsToResponses(directors), nil)
}

// GetDirector handles GET /api/v1/directors/{id}.
func (h *Handler) GetDirector(w http.ResponseWriter, r *http.Request) {
	director, ok := requireEntityByID(w, r, "director", func(id int64) (model.Director, error) {
		return h.queries.GetDirectorByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, directorToResponse(director), nil)
}

// CreateDirector handles POST /api/v1/directors.
func (h *Handler) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var req CreateDirectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.NameBg == "" {
		validationErrors["name_bg"] = "Bulgarian name is required"
	}
	if req.TenureFrom <= 0 {
		validationErrors["tenure_from"] = "Tenure start year is required"
	}
	if req.TenureTo != nil && *req.TenureTo < req.TenureFrom {
		validationErrors["tenure_to"] = "Tenure end year cannot precede the start year"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	now := time.Now()
	params := store.CreateDirectorParams{
		NameBg:      req.NameBg,
		NameEn:      req.NameEn,
		TenureFrom:  req.TenureFrom,
		TenureTo:    util.NullInt64FromPtr(req.TenureTo),
		BiographyBg: req.BiographyBg,
		BiographyEn: req.BiographyEn,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	director, err := h.queries.CreateDirector(r.Context(), params)
	if err != nil {
		WriteInternalError(w, "Failed to create director")
		return
	}
	WriteCreated(w, directorToResponse(director))
}

// UpdateDirector handles PUT /api/v1/directors/{id}.
func (h *Handler) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "director", func(id int64) (model.Director, error) {
		return h.queries.GetDirectorByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateDirectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateDirectorParams{
		ID:          existing.ID,
		NameBg:      existing.NameBg,
		NameEn:      existing.NameEn,
		TenureFrom:  existing.TenureFrom,
		TenureTo:    existing.TenureTo,
		BiographyBg: existing.BiographyBg,
		BiographyEn: existing.BiographyEn,
		Position:    existing.Position,
		IsActive:    existing.IsActive,
		UpdatedAt:   time.Now(),
	}

	if req.NameBg != nil {
		params.NameBg = *req.NameBg
	}
	if req.NameEn != nil {
		params.NameEn = *req.NameEn
	}
	if req.TenureFrom != nil {
		params.TenureFrom = *req.TenureFrom
	}
	if req.TenureTo != nil {
		if *req.TenureTo == 0 {
			params.TenureTo = sql.NullInt64{}
		} else {
			params.TenureTo = sql.NullInt64{Int64: *req.TenureTo, Valid: true}
		}
	}
	if params.TenureTo.Valid && params.TenureTo.Int64 < params.TenureFrom {
		WriteValidationError(w, map[string]string{"tenure_to": "Tenure end year cannot precede the start year"})
		return
	}
	if req.BiographyBg != nil {
		params.BiographyBg = *req.BiographyBg
	}
	if req.BiographyEn != nil {
		params.BiographyEn = *req.BiographyEn
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	director, err := h.queries.UpdateDirector(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update director")
		return
	}
	WriteSuccess(w, directorToResponse(director), nil)
}

// DeleteDirector handles DELETE /api/v1/directors/{id}.
func (h *Handler) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	deleteEntity(w, r, model.EntityDirector,
		func(id int64) error { return h.queries.SoftDeleteDirector(ctx, id, now) },
		func(id int64) error { return h.queries.HardDeleteDirector(ctx, id) })
}

// ReorderDirectors handles POST /api/v1/directors/reorder.
func (h *Handler) ReorderDirectors(w http.ResponseWriter, r *http.Request) {
	h.applyReorder(w, r, model.EntityDirector,
		func(q *store.Queries, id, position int64, now time.Time) error {
			return q.UpdateDirectorPosition(r.Context(), id, position, now)
		})
}
