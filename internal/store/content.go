package store

import (
	"context"
	"database/sql"
	"time"

	"schoolsite/internal/model"
)

const newsColumns = `id, title_bg, title_en, body_bg, body_en, body_format,
	published_at, is_active, created_at, updated_at`

func scanNewsItem(row interface{ Scan(dest ...any) error }) (model.NewsItem, error) {
	var n model.NewsItem
	err := row.Scan(&n.ID, &n.TitleBg, &n.TitleEn, &n.BodyBg, &n.BodyEn,
		&n.BodyFormat, &n.PublishedAt, &n.IsActive, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (q *Queries) listNews(ctx context.Context, query string, args ...any) ([]model.NewsItem, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.NewsItem
	for rows.Next() {
		n, err := scanNewsItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// GetNewsItemByID fetches a news item regardless of active state.
func (q *Queries) GetNewsItemByID(ctx context.Context, id int64) (model.NewsItem, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+newsColumns+` FROM news WHERE id = ?`, id)
	return scanNewsItem(row)
}

// ListActiveNews returns active news, newest first.
func (q *Queries) ListActiveNews(ctx context.Context, limit, offset int64) ([]model.NewsItem, error) {
	return q.listNews(ctx,
		`SELECT `+newsColumns+` FROM news WHERE is_active = 1 ORDER BY published_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
}

// CountActiveNews returns the number of active news items.
func (q *Queries) CountActiveNews(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news WHERE is_active = 1`).Scan(&n)
	return n, err
}

// ListAllNews returns every news item including inactive ones, newest first.
func (q *Queries) ListAllNews(ctx context.Context) ([]model.NewsItem, error) {
	return q.listNews(ctx, `SELECT `+newsColumns+` FROM news ORDER BY published_at DESC, id DESC`)
}

// CreateNewsItemParams holds the fields for creating a news item.
type CreateNewsItemParams struct {
	TitleBg     string
	TitleEn     string
	BodyBg      string
	BodyEn      string
	BodyFormat  string
	PublishedAt time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateNewsItem inserts a news item and returns the stored row.
func (q *Queries) CreateNewsItem(ctx context.Context, arg CreateNewsItemParams) (model.NewsItem, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO news (title_bg, title_en, body_bg, body_en, body_format,
			published_at, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.TitleBg, arg.TitleEn, arg.BodyBg, arg.BodyEn, arg.BodyFormat,
		arg.PublishedAt, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.NewsItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.NewsItem{}, err
	}
	return q.GetNewsItemByID(ctx, id)
}

// UpdateNewsItemParams holds the merged field set for an update.
type UpdateNewsItemParams struct {
	ID          int64
	TitleBg     string
	TitleEn     string
	BodyBg      string
	BodyEn      string
	BodyFormat  string
	PublishedAt time.Time
	IsActive    bool
	UpdatedAt   time.Time
}

// UpdateNewsItem writes the merged field set and returns the stored row.
func (q *Queries) UpdateNewsItem(ctx context.Context, arg UpdateNewsItemParams) (model.NewsItem, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE news SET title_bg = ?, title_en = ?, body_bg = ?, body_en = ?,
			body_format = ?, published_at = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.TitleBg, arg.TitleEn, arg.BodyBg, arg.BodyEn, arg.BodyFormat,
		arg.PublishedAt, arg.IsActive, arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.NewsItem{}, err
	}
	return q.GetNewsItemByID(ctx, arg.ID)
}

// SoftDeleteNewsItem marks a news item inactive.
func (q *Queries) SoftDeleteNewsItem(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE news SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeleteNewsItem removes a news item permanently.
func (q *Queries) HardDeleteNewsItem(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id))
}

const eventColumns = `id, title_bg, title_en, description_bg, description_en,
	location_bg, location_en, starts_at, ends_at, is_active, created_at, updated_at`

func scanEvent(row interface{ Scan(dest ...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.TitleBg, &e.TitleEn, &e.DescriptionBg, &e.DescriptionEn,
		&e.LocationBg, &e.LocationEn, &e.StartsAt, &e.EndsAt, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (q *Queries) listEvents(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEventByID fetches an event regardless of active state.
func (q *Queries) GetEventByID(ctx context.Context, id int64) (model.Event, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

// ListActiveEvents returns active events in chronological order. When
// upcomingOnly is set, past events are excluded.
func (q *Queries) ListActiveEvents(ctx context.Context, upcomingOnly bool, now time.Time) ([]model.Event, error) {
	if upcomingOnly {
		return q.listEvents(ctx,
			`SELECT `+eventColumns+` FROM events WHERE is_active = 1 AND starts_at >= ? ORDER BY starts_at ASC, id ASC`, now)
	}
	return q.listEvents(ctx,
		`SELECT `+eventColumns+` FROM events WHERE is_active = 1 ORDER BY starts_at ASC, id ASC`)
}

// ListAllEvents returns every event including inactive ones.
func (q *Queries) ListAllEvents(ctx context.Context) ([]model.Event, error) {
	return q.listEvents(ctx, `SELECT `+eventColumns+` FROM events ORDER BY starts_at ASC, id ASC`)
}

// CreateEventParams holds the fields for creating an event.
type CreateEventParams struct {
	TitleBg       string
	TitleEn       string
	DescriptionBg string
	DescriptionEn string
	LocationBg    string
	LocationEn    string
	StartsAt      time.Time
	EndsAt        sql.NullTime
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateEvent inserts an event and returns the stored row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO events (title_bg, title_en, description_bg, description_en,
			location_bg, location_en, starts_at, ends_at, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.TitleBg, arg.TitleEn, arg.DescriptionBg, arg.DescriptionEn,
		arg.LocationBg, arg.LocationEn, arg.StartsAt, arg.EndsAt, arg.IsActive,
		arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Event{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, err
	}
	return q.GetEventByID(ctx, id)
}

// UpdateEventParams holds the merged field set for an update.
type UpdateEventParams struct {
	ID            int64
	TitleBg       string
	TitleEn       string
	DescriptionBg string
	DescriptionEn string
	LocationBg    string
	LocationEn    string
	StartsAt      time.Time
	EndsAt        sql.NullTime
	IsActive      bool
	UpdatedAt     time.Time
}

// UpdateEvent writes the merged field set and returns the stored row.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (model.Event, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE events SET title_bg = ?, title_en = ?, description_bg = ?,
			description_en = ?, location_bg = ?, location_en = ?, starts_at = ?,
			ends_at = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.TitleBg, arg.TitleEn, arg.DescriptionBg, arg.DescriptionEn,
		arg.LocationBg, arg.LocationEn, arg.StartsAt, arg.EndsAt, arg.IsActive,
		arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.Event{}, err
	}
	return q.GetEventByID(ctx, arg.ID)
}

// SoftDeleteEvent marks an event inactive.
func (q *Queries) SoftDeleteEvent(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE events SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeleteEvent removes an event permanently.
func (q *Queries) HardDeleteEvent(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id))
}
