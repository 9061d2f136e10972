package store

import (
	"context"
	"time"

	"schoolsite/internal/model"
)

const translationColumns = `id, key, value_bg, value_en, updated_at`

func scanTranslation(row interface{ Scan(dest ...any) error }) (model.Translation, error) {
	var t model.Translation
	err := row.Scan(&t.ID, &t.Key, &t.ValueBg, &t.ValueEn, &t.UpdatedAt)
	return t, err
}

// GetTranslationByKey fetches a single translation row.
func (q *Queries) GetTranslationByKey(ctx context.Context, key string) (model.Translation, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+translationColumns+` FROM translations WHERE key = ?`, key)
	return scanTranslation(row)
}

// ListTranslations returns every translation row ordered by key.
func (q *Queries) ListTranslations(ctx context.Context) ([]model.Translation, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+translationColumns+` FROM translations ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// UpsertTranslationParams holds the fields for an upsert.
type UpsertTranslationParams struct {
	Key       string
	ValueBg   string
	ValueEn   string
	UpdatedAt time.Time
}

// UpsertTranslation inserts or replaces the values for a key.
func (q *Queries) UpsertTranslation(ctx context.Context, arg UpsertTranslationParams) (model.Translation, error) {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO translations (key, value_bg, value_en, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value_bg = excluded.value_bg,
			value_en = excluded.value_en,
			updated_at = excluded.updated_at`,
		arg.Key, arg.ValueBg, arg.ValueEn, arg.UpdatedAt)
	if err != nil {
		return model.Translation{}, err
	}
	return q.GetTranslationByKey(ctx, arg.Key)
}

// DeleteTranslation removes a translation key permanently.
func (q *Queries) DeleteTranslation(ctx context.Context, key string) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM translations WHERE key = ?`, key))
}
