// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the business layer between HTTP handlers and the
// store: media uploads and the cached navigation tree.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolsite/internal/imaging"
	"schoolsite/internal/model"
	"schoolsite/internal/store"
)

// DefaultUploadDir is used when no uploads directory is configured.
const DefaultUploadDir = "./uploads"

// MediaService handles media file uploads and removal.
type MediaService struct {
	db        *sql.DB
	processor *imaging.Processor
	uploadDir string
	maxBytes  int64
}

// NewMediaService creates a new media service.
func NewMediaService(db *sql.DB, uploadDir string, maxBytes int64) *MediaService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &MediaService{
		db:        db,
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
	}
}

// ValidationError marks upload failures caused by the submitted file rather
// than the server.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Upload validates, stores, and records an uploaded file. Images are
// re-encoded and get a thumbnail; documents are stored as-is.
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, altBg, altEn string) (model.MediaFile, error) {
	if header.Size > s.maxBytes {
		return model.MediaFile{}, &ValidationError{
			Reason: fmt.Sprintf("file size exceeds maximum allowed (%d bytes)", s.maxBytes),
		}
	}

	// Sniff the real content type instead of trusting the submitted header.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return model.MediaFile{}, fmt.Errorf("reading upload: %w", err)
	}
	head = head[:n]
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return model.MediaFile{}, fmt.Errorf("rewinding upload: %w", err)
	}

	mimeType := s.processor.DetectMimeType(head)
	if mimeType == "application/octet-stream" {
		// Sniffing cannot identify office documents; fall back to the
		// declared type for the document whitelist only.
		if declared := header.Header.Get("Content-Type"); declared != "" {
			if _, ok := model.AllowedDocumentTypes[declared]; ok {
				mimeType = declared
			}
		}
	}

	kind := model.KindForMimeType(mimeType)
	if kind == "" {
		return model.MediaFile{}, &ValidationError{
			Reason: fmt.Sprintf("file type %s is not allowed", mimeType),
		}
	}

	fileName := generatedFileName(mimeType, kind)

	var size int64
	if kind == model.MediaKindImage {
		result, err := s.processor.ProcessImage(file, fileName)
		if err != nil {
			return model.MediaFile{}, &ValidationError{Reason: err.Error()}
		}
		size = result.Size
		mimeType = result.MimeType

		if _, err := s.processor.CreateThumbnail(result.FilePath, fileName); err != nil {
			// A missing thumbnail degrades listings, not the upload.
			slog.Warn("thumbnail generation failed", "file", fileName, "error", err)
		}
	} else {
		size, err = s.saveDocument(file, fileName)
		if err != nil {
			return model.MediaFile{}, err
		}
	}

	now := time.Now()
	media, err := store.New(s.db).CreateMediaFile(ctx, store.CreateMediaFileParams{
		FileName:     fileName,
		OriginalName: filepath.Base(header.Filename),
		MimeType:     mimeType,
		SizeBytes:    size,
		Kind:         kind,
		AltBg:        altBg,
		AltEn:        altEn,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		_ = s.removeStoredFiles(fileName, kind)
		return model.MediaFile{}, fmt.Errorf("recording upload: %w", err)
	}
	return media, nil
}

// Delete removes a media record. Permanent deletion also removes the files
// from disk; soft deletion leaves them for possible reactivation.
func (s *MediaService) Delete(ctx context.Context, id int64, permanent bool) error {
	queries := store.New(s.db)
	media, err := queries.GetMediaFileByID(ctx, id)
	if err != nil {
		return err
	}

	if !permanent {
		return queries.SoftDeleteMediaFile(ctx, id, time.Now())
	}

	if err := queries.HardDeleteMediaFile(ctx, id); err != nil {
		return err
	}
	if err := s.removeStoredFiles(media.FileName, media.Kind); err != nil {
		slog.Warn("removing media files", "file", media.FileName, "error", err)
	}
	return nil
}

// FilePath returns the on-disk path for a stored media file.
func (s *MediaService) FilePath(media model.MediaFile) string {
	sub := "documents"
	if media.Kind == model.MediaKindImage {
		sub = "originals"
	}
	return filepath.Join(s.uploadDir, sub, media.FileName)
}

// ThumbnailPath returns the on-disk thumbnail path for an image. The file
// may be absent when the source was smaller than the thumbnail box.
func (s *MediaService) ThumbnailPath(media model.MediaFile) string {
	return filepath.Join(s.uploadDir, "thumbnails", media.FileName)
}

func (s *MediaService) saveDocument(file multipart.File, fileName string) (int64, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return 0, fmt.Errorf("reading document: %w", err)
	}
	if _, err := imaging.SaveFile(s.uploadDir, "documents", fileName, data); err != nil {
		return 0, fmt.Errorf("saving document: %w", err)
	}
	return int64(len(data)), nil
}

func (s *MediaService) removeStoredFiles(fileName, kind string) error {
	if kind == model.MediaKindImage {
		return s.processor.DeleteImageFiles(fileName)
	}
	return imaging.RemoveFile(s.uploadDir, "documents", fileName)
}

// generatedFileName builds a collision-free server-side file name with the
// canonical extension for the type.
func generatedFileName(mimeType, kind string) string {
	ext := model.AllowedImageTypes[mimeType]
	if kind == model.MediaKindDocument {
		ext = model.AllowedDocumentTypes[mimeType]
	}
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(mimeType))
	}
	return uuid.New().String() + ext
}
