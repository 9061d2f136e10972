package store

import (
	"context"
	"time"

	"schoolsite/internal/model"
)

const linkColumns = `id, title_bg, title_en, url, position, is_active, created_at, updated_at`

func scanLink(row interface{ Scan(dest ...any) error }) (model.UsefulLink, error) {
	var l model.UsefulLink
	err := row.Scan(&l.ID, &l.TitleBg, &l.TitleEn, &l.URL, &l.Position,
		&l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (q *Queries) listLinks(ctx context.Context, query string, args ...any) ([]model.UsefulLink, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var links []model.UsefulLink
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// GetUsefulLinkByID fetches a useful link regardless of active state.
func (q *Queries) GetUsefulLinkByID(ctx context.Context, id int64) (model.UsefulLink, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+linkColumns+` FROM useful_links WHERE id = ?`, id)
	return scanLink(row)
}

// ListActiveUsefulLinks returns active links in display order.
func (q *Queries) ListActiveUsefulLinks(ctx context.Context) ([]model.UsefulLink, error) {
	return q.listLinks(ctx,
		`SELECT `+linkColumns+` FROM useful_links WHERE is_active = 1 ORDER BY position ASC, id ASC`)
}

// ListAllUsefulLinks returns every link including inactive ones.
func (q *Queries) ListAllUsefulLinks(ctx context.Context) ([]model.UsefulLink, error) {
	return q.listLinks(ctx,
		`SELECT `+linkColumns+` FROM useful_links ORDER BY position ASC, id ASC`)
}

// CreateUsefulLinkParams holds the fields for creating a useful link.
type CreateUsefulLinkParams struct {
	TitleBg   string
	TitleEn   string
	URL       string
	Position  int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUsefulLink inserts a useful link and returns the stored row.
func (q *Queries) CreateUsefulLink(ctx context.Context, arg CreateUsefulLinkParams) (model.UsefulLink, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO useful_links (title_bg, title_en, url, position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.TitleBg, arg.TitleEn, arg.URL, arg.Position, arg.IsActive,
		arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.UsefulLink{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.UsefulLink{}, err
	}
	return q.GetUsefulLinkByID(ctx, id)
}

// UpdateUsefulLinkParams holds the merged field set for an update.
type UpdateUsefulLinkParams struct {
	ID        int64
	TitleBg   string
	TitleEn   string
	URL       string
	Position  int64
	IsActive  bool
	UpdatedAt time.Time
}

// UpdateUsefulLink writes the merged field set and returns the stored row.
func (q *Queries) UpdateUsefulLink(ctx context.Context, arg UpdateUsefulLinkParams) (model.UsefulLink, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE useful_links SET title_bg = ?, title_en = ?, url = ?, position = ?,
			is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.TitleBg, arg.TitleEn, arg.URL, arg.Position, arg.IsActive,
		arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.UsefulLink{}, err
	}
	return q.GetUsefulLinkByID(ctx, arg.ID)
}

// UpdateUsefulLinkPosition moves a link within the list.
func (q *Queries) UpdateUsefulLinkPosition(ctx context.Context, id, position int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE useful_links SET position = ?, updated_at = ? WHERE id = ?`, position, now, id))
}

// SoftDeleteUsefulLink marks a link inactive. Its content rows stay untouched
// and reappear if the link is reactivated.
func (q *Queries) SoftDeleteUsefulLink(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE useful_links SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeleteUsefulLink removes a link permanently. Content rows cascade.
func (q *Queries) HardDeleteUsefulLink(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM useful_links WHERE id = ?`, id))
}

const linkContentColumns = `id, link_id, body_bg, body_en, position, is_active, created_at, updated_at`

func scanLinkContent(row interface{ Scan(dest ...any) error }) (model.UsefulLinkContent, error) {
	var c model.UsefulLinkContent
	err := row.Scan(&c.ID, &c.LinkID, &c.BodyBg, &c.BodyEn, &c.Position,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (q *Queries) listLinkContent(ctx context.Context, query string, args ...any) ([]model.UsefulLinkContent, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.UsefulLinkContent
	for rows.Next() {
		c, err := scanLinkContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// GetUsefulLinkContentByID fetches a content row regardless of active state.
func (q *Queries) GetUsefulLinkContentByID(ctx context.Context, id int64) (model.UsefulLinkContent, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+linkContentColumns+` FROM useful_links_content WHERE id = ?`, id)
	return scanLinkContent(row)
}

// ListActiveUsefulLinkContent returns active content rows for one link in
// display order.
func (q *Queries) ListActiveUsefulLinkContent(ctx context.Context, linkID int64) ([]model.UsefulLinkContent, error) {
	return q.listLinkContent(ctx,
		`SELECT `+linkContentColumns+` FROM useful_links_content WHERE link_id = ? AND is_active = 1 ORDER BY position ASC, id ASC`,
		linkID)
}

// ListAllUsefulLinkContent returns every content row across all links.
func (q *Queries) ListAllUsefulLinkContent(ctx context.Context) ([]model.UsefulLinkContent, error) {
	return q.listLinkContent(ctx,
		`SELECT `+linkContentColumns+` FROM useful_links_content ORDER BY link_id ASC, position ASC, id ASC`)
}

// CreateUsefulLinkContentParams holds the fields for creating a content row.
type CreateUsefulLinkContentParams struct {
	LinkID    int64
	BodyBg    string
	BodyEn    string
	Position  int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUsefulLinkContent inserts a content row and returns the stored row.
func (q *Queries) CreateUsefulLinkContent(ctx context.Context, arg CreateUsefulLinkContentParams) (model.UsefulLinkContent, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO useful_links_content (link_id, body_bg, body_en, position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.LinkID, arg.BodyBg, arg.BodyEn, arg.Position, arg.IsActive,
		arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.UsefulLinkContent{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.UsefulLinkContent{}, err
	}
	return q.GetUsefulLinkContentByID(ctx, id)
}

// UpdateUsefulLinkContentParams holds the merged field set for an update.
type UpdateUsefulLinkContentParams struct {
	ID        int64
	LinkID    int64
	BodyBg    string
	BodyEn    string
	Position  int64
	IsActive  bool
	UpdatedAt time.Time
}

// UpdateUsefulLinkContent writes the merged field set and returns the stored row.
func (q *Queries) UpdateUsefulLinkContent(ctx context.Context, arg UpdateUsefulLinkContentParams) (model.UsefulLinkContent, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE useful_links_content SET link_id = ?, body_bg = ?, body_en = ?,
			position = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.LinkID, arg.BodyBg, arg.BodyEn, arg.Position, arg.IsActive,
		arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.UsefulLinkContent{}, err
	}
	return q.GetUsefulLinkContentByID(ctx, arg.ID)
}

// UpdateUsefulLinkContentPosition moves a content row within its link.
func (q *Queries) UpdateUsefulLinkContentPosition(ctx context.Context, id, position int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE useful_links_content SET position = ?, updated_at = ? WHERE id = ?`, position, now, id))
}

// SoftDeleteUsefulLinkContent marks a content row inactive.
func (q *Queries) SoftDeleteUsefulLinkContent(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE useful_links_content SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeleteUsefulLinkContent removes a content row permanently.
func (q *Queries) HardDeleteUsefulLinkContent(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM useful_links_content WHERE id = ?`, id))
}
