package store

import (
	"context"
	"database/sql"
	"time"

	"schoolsite/internal/model"
)

const userColumns = `id, email, name, password_hash, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetUserByID fetches a user regardless of active state.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail fetches a user by email for credential checks.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// CountUsers returns the total number of user accounts.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// CreateUserParams holds the fields for creating an admin account.
type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a user and returns the stored row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Email, arg.Name, arg.PasswordHash, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, id)
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, now, id))
}

const tokenColumns = `id, user_id, name, token_hash, is_active, expires_at, last_used_at, created_at`

func scanAPIToken(row interface{ Scan(dest ...any) error }) (model.APIToken, error) {
	var t model.APIToken
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.TokenHash, &t.IsActive,
		&t.ExpiresAt, &t.LastUsedAt, &t.CreatedAt)
	return t, err
}

// GetAPITokenByHash looks up an active token by the hash of its raw value.
func (q *Queries) GetAPITokenByHash(ctx context.Context, tokenHash string) (model.APIToken, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM api_tokens WHERE token_hash = ? AND is_active = 1`, tokenHash)
	return scanAPIToken(row)
}

// ListAPITokensForUser returns a user's tokens, newest first.
func (q *Queries) ListAPITokensForUser(ctx context.Context, userID int64) ([]model.APIToken, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+tokenColumns+` FROM api_tokens WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tokens []model.APIToken
	for rows.Next() {
		t, err := scanAPIToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// CreateAPITokenParams holds the fields for issuing a token.
type CreateAPITokenParams struct {
	UserID    int64
	Name      string
	TokenHash string
	IsActive  bool
	ExpiresAt sql.NullTime
	CreatedAt time.Time
}

// CreateAPIToken stores the hash of a newly issued token.
func (q *Queries) CreateAPIToken(ctx context.Context, arg CreateAPITokenParams) (model.APIToken, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO api_tokens (user_id, name, token_hash, is_active, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		arg.UserID, arg.Name, arg.TokenHash, arg.IsActive, arg.ExpiresAt, arg.CreatedAt)
	if err != nil {
		return model.APIToken{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.APIToken{}, err
	}
	row := q.db.QueryRowContext(ctx, `SELECT `+tokenColumns+` FROM api_tokens WHERE id = ?`, id)
	return scanAPIToken(row)
}

// UpdateAPITokenLastUsed stamps the token's last use time.
func (q *Queries) UpdateAPITokenLastUsed(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE api_tokens SET last_used_at = ? WHERE id = ?`, now, id))
}

// RevokeAPIToken deactivates a token without deleting its record.
func (q *Queries) RevokeAPIToken(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE api_tokens SET is_active = 0 WHERE id = ?`, id))
}
