package model

import "time"

// Media kinds
const (
	MediaKindImage    = "image"
	MediaKindDocument = "document"
)

// AllowedImageTypes maps image MIME types to their canonical extension.
var AllowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AllowedDocumentTypes maps document MIME types to their canonical extension.
var AllowedDocumentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
}

// MediaFile represents an uploaded image or document stored on disk.
// FileName is the server-generated name under the uploads directory;
// OriginalName is what the admin uploaded.
type MediaFile struct {
	ID           int64     `json:"id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Kind         string    `json:"kind"`
	AltBg        string    `json:"alt_bg"`
	AltEn        string    `json:"alt_en"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// KindForMimeType returns the media kind for a MIME type, or "" if the
// type is not allowed.
func KindForMimeType(mimeType string) string {
	if _, ok := AllowedImageTypes[mimeType]; ok {
		return MediaKindImage
	}
	if _, ok := AllowedDocumentTypes[mimeType]; ok {
		return MediaKindDocument
	}
	return ""
}
