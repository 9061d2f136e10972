package store

import (
	"context"
	"database/sql"
	"time"

	"schoolsite/internal/model"
)

const pageColumns = `id, parent_id, slug, title_bg, title_en, body_bg, body_en,
	body_format, position, show_in_menu, is_active, created_at, updated_at`

func scanPage(row interface{ Scan(dest ...any) error }) (model.Page, error) {
	var p model.Page
	err := row.Scan(&p.ID, &p.ParentID, &p.Slug, &p.TitleBg, &p.TitleEn,
		&p.BodyBg, &p.BodyEn, &p.BodyFormat, &p.Position, &p.ShowInMenu,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (q *Queries) scanPages(rows *sql.Rows) ([]model.Page, error) {
	defer rows.Close()
	var pages []model.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetPageByID fetches a page regardless of its active state.
func (q *Queries) GetPageByID(ctx context.Context, id int64) (model.Page, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	return scanPage(row)
}

// GetPageBySlug fetches a page by its unique slug.
func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (model.Page, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE slug = ?`, slug)
	return scanPage(row)
}

// ListActivePages returns active pages in a single global position order.
// The tree assembler partitions this order by parent without re-sorting.
func (q *Queries) ListActivePages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE is_active = 1 ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return q.scanPages(rows)
}

// ListMenuPages returns active pages flagged for menu rendering.
func (q *Queries) ListMenuPages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE is_active = 1 AND show_in_menu = 1 ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return q.scanPages(rows)
}

// ListAllPages returns every page including inactive ones, for admin listings.
func (q *Queries) ListAllPages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return q.scanPages(rows)
}

// CreatePageParams holds the fields for creating a page.
type CreatePageParams struct {
	ParentID   sql.NullInt64
	Slug       string
	TitleBg    string
	TitleEn    string
	BodyBg     string
	BodyEn     string
	BodyFormat string
	Position   int64
	ShowInMenu bool
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreatePage inserts a page and returns the stored row.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (model.Page, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO pages (parent_id, slug, title_bg, title_en, body_bg, body_en,
			body_format, position, show_in_menu, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ParentID, arg.Slug, arg.TitleBg, arg.TitleEn, arg.BodyBg, arg.BodyEn,
		arg.BodyFormat, arg.Position, arg.ShowInMenu, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Page{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Page{}, err
	}
	return q.GetPageByID(ctx, id)
}

// UpdatePageParams holds the full field set for updating a page. Handlers
// start from the existing row, apply only the submitted fields, and pass the
// merged result here.
type UpdatePageParams struct {
	ID         int64
	ParentID   sql.NullInt64
	Slug       string
	TitleBg    string
	TitleEn    string
	BodyBg     string
	BodyEn     string
	BodyFormat string
	Position   int64
	ShowInMenu bool
	IsActive   bool
	UpdatedAt  time.Time
}

// UpdatePage writes the merged field set and returns the stored row.
func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) (model.Page, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE pages SET parent_id = ?, slug = ?, title_bg = ?, title_en = ?,
			body_bg = ?, body_en = ?, body_format = ?, position = ?,
			show_in_menu = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.ParentID, arg.Slug, arg.TitleBg, arg.TitleEn, arg.BodyBg, arg.BodyEn,
		arg.BodyFormat, arg.Position, arg.ShowInMenu, arg.IsActive, arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.Page{}, err
	}
	return q.GetPageByID(ctx, arg.ID)
}

// UpdatePagePosition rewrites a single page's position.
func (q *Queries) UpdatePagePosition(ctx context.Context, id, position int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE pages SET position = ?, updated_at = ? WHERE id = ?`, position, now, id))
}

// SoftDeletePage marks a page inactive without removing it.
func (q *Queries) SoftDeletePage(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE pages SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeletePage removes a page permanently. Child pages go with it via the
// ON DELETE CASCADE foreign key.
func (q *Queries) HardDeletePage(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id))
}

// PageSlugExists reports whether any page uses the given slug, excluding the
// page with excludeID (pass 0 when creating).
func (q *Queries) PageSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pages WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}
