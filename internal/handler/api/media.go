// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"schoolsite/internal/model"
	"schoolsite/internal/service"
	"schoolsite/internal/store"
)

// MediaFileResponse is the API representation of an uploaded file.
type MediaFileResponse struct {
	ID           int64     `json:"id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Kind         string    `json:"kind"`
	AltBg        string    `json:"alt_bg"`
	AltEn        string    `json:"alt_en"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateMediaFileRequest is the request body for editing media metadata.
// Only the alt texts and active flag are editable; the stored file is
// immutable after upload.
type UpdateMediaFileRequest struct {
	AltBg    *string `json:"alt_bg"`
	AltEn    *string `json:"alt_en"`
	IsActive *bool   `json:"is_active"`
}

func mediaFileToResponse(m model.MediaFile) MediaFileResponse {
	resp := MediaFileResponse{
		ID:           m.ID,
		FileName:     m.FileName,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		SizeBytes:    m.SizeBytes,
		Kind:         m.Kind,
		AltBg:        m.AltBg,
		AltEn:        m.AltEn,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	switch m.Kind {
	case model.MediaKindImage:
		resp.URL = "/uploads/originals/" + m.FileName
		resp.ThumbnailURL = "/uploads/thumbnails/" + m.FileName
	case model.MediaKindDocument:
		resp.URL = "/uploads/documents/" + m.FileName
	}
	return resp
}

// ListMediaFiles handles GET /api/v1/media. An optional ?kind= filter limits
// the result to images or documents.
func (h *Handler) ListMediaFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.queries.ListActiveMediaFiles(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		WriteInternalError(w, "Failed to list media files")
		return
	}

	responses := make([]MediaFileResponse, 0, len(files))
	for _, m := range files {
		responses = append(responses, mediaFileToResponse(m))
	}
	WriteSuccess(w, responses, nil)
}

// ListAllMediaFiles handles GET /api/v1/media/all.
func (h *Handler) ListAllMediaFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.queries.ListAllMediaFiles(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list media files")
		return
	}

	responses := make([]MediaFileResponse, 0, len(files))
	for _, m := range files {
		responses = append(responses, mediaFileToResponse(m))
	}
	WriteSuccess(w, responses, nil)
}

// GetMediaFile handles GET /api/v1/media/{id}.
func (h *Handler) GetMediaFile(w http.ResponseWriter, r *http.Request) {
	media, ok := requireEntityByID(w, r, "media file", func(id int64) (model.MediaFile, error) {
		return h.queries.GetMediaFileByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, mediaFileToResponse(media), nil)
}

// UploadMediaFile handles POST /api/v1/media. Expects a multipart form with
// a "file" part and optional alt_bg/alt_en fields. The real content type is
// sniffed from the file bytes; an unsupported or oversized file gets a 422.
func (h *Handler) UploadMediaFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Multipart form with a 'file' part is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	media, err := h.media.Upload(r.Context(), file, header,
		r.FormValue("alt_bg"), r.FormValue("alt_en"))
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			WriteValidationError(w, map[string]string{"file": vErr.Reason})
			return
		}
		WriteInternalError(w, "Failed to store uploaded file")
		return
	}

	WriteCreated(w, mediaFileToResponse(media))
}

// UpdateMediaFile handles PUT /api/v1/media/{id}.
func (h *Handler) UpdateMediaFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "media file", func(id int64) (model.MediaFile, error) {
		return h.queries.GetMediaFileByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateMediaFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateMediaFileParams{
		ID:        existing.ID,
		AltBg:     existing.AltBg,
		AltEn:     existing.AltEn,
		IsActive:  existing.IsActive,
		UpdatedAt: time.Now(),
	}
	if req.AltBg != nil {
		params.AltBg = *req.AltBg
	}
	if req.AltEn != nil {
		params.AltEn = *req.AltEn
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	media, err := h.queries.UpdateMediaFile(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update media file")
		return
	}
	WriteSuccess(w, mediaFileToResponse(media), nil)
}

// DeleteMediaFile handles DELETE /api/v1/media/{id}. Permanent deletion
// also removes the stored files from disk; the default soft delete keeps
// them so existing page references stay resolvable.
func (h *Handler) DeleteMediaFile(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid media file ID", nil)
		return
	}

	permanent := r.URL.Query().Get("permanent") == "true"
	if err := h.media.Delete(r.Context(), id, permanent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Media file not found")
		} else {
			WriteInternalError(w, "Failed to delete media file")
		}
		return
	}

	WriteSuccess(w, map[string]any{"deleted": id, "permanent": permanent}, nil)
}
