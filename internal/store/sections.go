package store

import (
	"context"
	"time"

	"schoolsite/internal/model"
)

const sectionColumns = `id, section_key, section_group, heading_bg, heading_en,
	body_bg, body_en, body_format, position, is_active, created_at, updated_at`

func scanSection(row interface{ Scan(dest ...any) error }) (model.ContentSection, error) {
	var s model.ContentSection
	err := row.Scan(&s.ID, &s.SectionKey, &s.SectionGroup, &s.HeadingBg, &s.HeadingEn,
		&s.BodyBg, &s.BodyEn, &s.BodyFormat, &s.Position, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (q *Queries) listSections(ctx context.Context, query string, args ...any) ([]model.ContentSection, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sections []model.ContentSection
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// GetSectionByID fetches a content section regardless of active state.
func (q *Queries) GetSectionByID(ctx context.Context, id int64) (model.ContentSection, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+sectionColumns+` FROM content_sections WHERE id = ?`, id)
	return scanSection(row)
}

// GetSectionByKey fetches a content section by its unique key.
func (q *Queries) GetSectionByKey(ctx context.Context, key string) (model.ContentSection, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+sectionColumns+` FROM content_sections WHERE section_key = ?`, key)
	return scanSection(row)
}

// ListActiveSections returns active sections, optionally filtered by group.
func (q *Queries) ListActiveSections(ctx context.Context, group string) ([]model.ContentSection, error) {
	if group != "" {
		return q.listSections(ctx,
			`SELECT `+sectionColumns+` FROM content_sections WHERE is_active = 1 AND section_group = ? ORDER BY position ASC, id ASC`, group)
	}
	return q.listSections(ctx,
		`SELECT `+sectionColumns+` FROM content_sections WHERE is_active = 1 ORDER BY position ASC, id ASC`)
}

// ListAllSections returns every section including inactive ones.
func (q *Queries) ListAllSections(ctx context.Context) ([]model.ContentSection, error) {
	return q.listSections(ctx,
		`SELECT `+sectionColumns+` FROM content_sections ORDER BY section_group ASC, position ASC, id ASC`)
}

// CreateSectionParams holds the fields for creating a content section.
type CreateSectionParams struct {
	SectionKey   string
	SectionGroup string
	HeadingBg    string
	HeadingEn    string
	BodyBg       string
	BodyEn       string
	BodyFormat   string
	Position     int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateSection inserts a content section and returns the stored row.
func (q *Queries) CreateSection(ctx context.Context, arg CreateSectionParams) (model.ContentSection, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO content_sections (section_key, section_group, heading_bg,
			heading_en, body_bg, body_en, body_format, position, is_active,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.SectionKey, arg.SectionGroup, arg.HeadingBg, arg.HeadingEn,
		arg.BodyBg, arg.BodyEn, arg.BodyFormat, arg.Position, arg.IsActive,
		arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.ContentSection{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContentSection{}, err
	}
	return q.GetSectionByID(ctx, id)
}

// UpdateSectionParams holds the merged field set for an update.
type UpdateSectionParams struct {
	ID           int64
	SectionKey   string
	SectionGroup string
	HeadingBg    string
	HeadingEn    string
	BodyBg       string
	BodyEn       string
	BodyFormat   string
	Position     int64
	IsActive     bool
	UpdatedAt    time.Time
}

// UpdateSection writes the merged field set and returns the stored row.
func (q *Queries) UpdateSection(ctx context.Context, arg UpdateSectionParams) (model.ContentSection, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE content_sections SET section_key = ?, section_group = ?,
			heading_bg = ?, heading_en = ?, body_bg = ?, body_en = ?,
			body_format = ?, position = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.SectionKey, arg.SectionGroup, arg.HeadingBg, arg.HeadingEn,
		arg.BodyBg, arg.BodyEn, arg.BodyFormat, arg.Position, arg.IsActive,
		arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.ContentSection{}, err
	}
	return q.GetSectionByID(ctx, arg.ID)
}

// UpdateSectionPosition rewrites a single section's position.
func (q *Queries) UpdateSectionPosition(ctx context.Context, id, position int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE content_sections SET position = ?, updated_at = ? WHERE id = ?`, position, now, id))
}

// SoftDeleteSection marks a content section inactive.
func (q *Queries) SoftDeleteSection(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE content_sections SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeleteSection removes a content section permanently.
func (q *Queries) HardDeleteSection(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM content_sections WHERE id = ?`, id))
}

// SectionKeyExists reports whether any section uses the given key, excluding
// the section with excludeID (pass 0 when creating).
func (q *Queries) SectionKeyExists(ctx context.Context, key string, excludeID int64) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content_sections WHERE section_key = ? AND id != ?`, key, excludeID).Scan(&n)
	return n > 0, err
}
