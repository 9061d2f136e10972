package store

import (
	"context"
	"database/sql"
	"time"

	"schoolsite/internal/model"
)

const navigationColumns = `id, parent_id, link_key, title_bg, title_en, url,
	page_id, target, position, is_active, created_at, updated_at`

func scanNavigationItem(row interface{ Scan(dest ...any) error }) (model.NavigationItem, error) {
	var n model.NavigationItem
	err := row.Scan(&n.ID, &n.ParentID, &n.LinkKey, &n.TitleBg, &n.TitleEn,
		&n.URL, &n.PageID, &n.Target, &n.Position, &n.IsActive,
		&n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (q *Queries) scanNavigationItems(rows *sql.Rows) ([]model.NavigationItem, error) {
	defer rows.Close()
	var items []model.NavigationItem
	for rows.Next() {
		n, err := scanNavigationItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// GetNavigationItemByID fetches a navigation item regardless of active state.
func (q *Queries) GetNavigationItemByID(ctx context.Context, id int64) (model.NavigationItem, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+navigationColumns+` FROM navigation_items WHERE id = ?`, id)
	return scanNavigationItem(row)
}

// ListActiveNavigationItems returns active items in global position order
// for tree assembly.
func (q *Queries) ListActiveNavigationItems(ctx context.Context) ([]model.NavigationItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+navigationColumns+` FROM navigation_items WHERE is_active = 1 ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return q.scanNavigationItems(rows)
}

// ListAllNavigationItems returns every item including inactive ones.
func (q *Queries) ListAllNavigationItems(ctx context.Context) ([]model.NavigationItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+navigationColumns+` FROM navigation_items ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return q.scanNavigationItems(rows)
}

// CreateNavigationItemParams holds the fields for creating a navigation item.
type CreateNavigationItemParams struct {
	ParentID  sql.NullInt64
	LinkKey   string
	TitleBg   string
	TitleEn   string
	URL       string
	PageID    sql.NullInt64
	Target    string
	Position  int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateNavigationItem inserts a navigation item and returns the stored row.
func (q *Queries) CreateNavigationItem(ctx context.Context, arg CreateNavigationItemParams) (model.NavigationItem, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO navigation_items (parent_id, link_key, title_bg, title_en, url,
			page_id, target, position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ParentID, arg.LinkKey, arg.TitleBg, arg.TitleEn, arg.URL,
		arg.PageID, arg.Target, arg.Position, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.NavigationItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.NavigationItem{}, err
	}
	return q.GetNavigationItemByID(ctx, id)
}

// UpdateNavigationItemParams holds the merged field set for an update.
type UpdateNavigationItemParams struct {
	ID        int64
	ParentID  sql.NullInt64
	LinkKey   string
	TitleBg   string
	TitleEn   string
	URL       string
	PageID    sql.NullInt64
	Target    string
	Position  int64
	IsActive  bool
	UpdatedAt time.Time
}

// UpdateNavigationItem writes the merged field set and returns the stored row.
func (q *Queries) UpdateNavigationItem(ctx context.Context, arg UpdateNavigationItemParams) (model.NavigationItem, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE navigation_items SET parent_id = ?, link_key = ?, title_bg = ?,
			title_en = ?, url = ?, page_id = ?, target = ?, position = ?,
			is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.ParentID, arg.LinkKey, arg.TitleBg, arg.TitleEn, arg.URL, arg.PageID,
		arg.Target, arg.Position, arg.IsActive, arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.NavigationItem{}, err
	}
	return q.GetNavigationItemByID(ctx, arg.ID)
}

// UpdateNavigationItemPosition rewrites a single item's position.
func (q *Queries) UpdateNavigationItemPosition(ctx context.Context, id, position int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE navigation_items SET position = ?, updated_at = ? WHERE id = ?`, position, now, id))
}

// SoftDeleteNavigationItem marks a navigation item inactive.
func (q *Queries) SoftDeleteNavigationItem(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE navigation_items SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeleteNavigationItem removes an item permanently, cascading to children.
func (q *Queries) HardDeleteNavigationItem(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM navigation_items WHERE id = ?`, id))
}

// NavigationLinkKeyExists reports whether any item uses the given link key,
// excluding the item with excludeID (pass 0 when creating).
func (q *Queries) NavigationLinkKeyExists(ctx context.Context, linkKey string, excludeID int64) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM navigation_items WHERE link_key = ? AND id != ?`, linkKey, excludeID).Scan(&n)
	return n > 0, err
}
