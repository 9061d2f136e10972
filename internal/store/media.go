package store

import (
	"context"
	"time"

	"schoolsite/internal/model"
)

const mediaColumns = `id, file_name, original_name, mime_type, size_bytes, kind,
	alt_bg, alt_en, is_active, created_at, updated_at`

func scanMediaFile(row interface{ Scan(dest ...any) error }) (model.MediaFile, error) {
	var m model.MediaFile
	err := row.Scan(&m.ID, &m.FileName, &m.OriginalName, &m.MimeType, &m.SizeBytes,
		&m.Kind, &m.AltBg, &m.AltEn, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (q *Queries) listMediaFiles(ctx context.Context, query string, args ...any) ([]model.MediaFile, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var files []model.MediaFile
	for rows.Next() {
		m, err := scanMediaFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, m)
	}
	return files, rows.Err()
}

// GetMediaFileByID fetches a media record regardless of active state.
func (q *Queries) GetMediaFileByID(ctx context.Context, id int64) (model.MediaFile, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media_files WHERE id = ?`, id)
	return scanMediaFile(row)
}

// GetMediaFileByName fetches a media record by its stored file name.
func (q *Queries) GetMediaFileByName(ctx context.Context, fileName string) (model.MediaFile, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM media_files WHERE file_name = ?`, fileName)
	return scanMediaFile(row)
}

// ListActiveMediaFiles returns active media, optionally filtered by kind,
// newest first.
func (q *Queries) ListActiveMediaFiles(ctx context.Context, kind string) ([]model.MediaFile, error) {
	if kind != "" {
		return q.listMediaFiles(ctx,
			`SELECT `+mediaColumns+` FROM media_files WHERE is_active = 1 AND kind = ? ORDER BY created_at DESC, id DESC`,
			kind)
	}
	return q.listMediaFiles(ctx,
		`SELECT `+mediaColumns+` FROM media_files WHERE is_active = 1 ORDER BY created_at DESC, id DESC`)
}

// ListAllMediaFiles returns every media record including inactive ones.
func (q *Queries) ListAllMediaFiles(ctx context.Context) ([]model.MediaFile, error) {
	return q.listMediaFiles(ctx,
		`SELECT `+mediaColumns+` FROM media_files ORDER BY created_at DESC, id DESC`)
}

// CreateMediaFileParams holds the fields for recording an upload.
type CreateMediaFileParams struct {
	FileName     string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Kind         string
	AltBg        string
	AltEn        string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateMediaFile inserts a media record and returns the stored row.
func (q *Queries) CreateMediaFile(ctx context.Context, arg CreateMediaFileParams) (model.MediaFile, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO media_files (file_name, original_name, mime_type, size_bytes,
			kind, alt_bg, alt_en, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.FileName, arg.OriginalName, arg.MimeType, arg.SizeBytes,
		arg.Kind, arg.AltBg, arg.AltEn, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.MediaFile{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.MediaFile{}, err
	}
	return q.GetMediaFileByID(ctx, id)
}

// UpdateMediaFileParams holds the editable fields of a media record. The
// stored file itself is immutable.
type UpdateMediaFileParams struct {
	ID        int64
	AltBg     string
	AltEn     string
	IsActive  bool
	UpdatedAt time.Time
}

// UpdateMediaFile writes the editable fields and returns the stored row.
func (q *Queries) UpdateMediaFile(ctx context.Context, arg UpdateMediaFileParams) (model.MediaFile, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE media_files SET alt_bg = ?, alt_en = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.AltBg, arg.AltEn, arg.IsActive, arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.MediaFile{}, err
	}
	return q.GetMediaFileByID(ctx, arg.ID)
}

// SoftDeleteMediaFile marks a media record inactive. The file stays on disk.
func (q *Queries) SoftDeleteMediaFile(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE media_files SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeleteMediaFile removes a media record permanently. Callers remove the
// file from disk after the row is gone.
func (q *Queries) HardDeleteMediaFile(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM media_files WHERE id = ?`, id))
}
