package store

import (
	"context"
	"database/sql"
	"time"

	"schoolsite/internal/model"
)

const staffColumns = `id, name_bg, name_en, role_bg, role_en, email, image_id,
	position, is_active, created_at, updated_at`

func scanStaffMember(row interface{ Scan(dest ...any) error }) (model.StaffMember, error) {
	var s model.StaffMember
	err := row.Scan(&s.ID, &s.NameBg, &s.NameEn, &s.RoleBg, &s.RoleEn,
		&s.Email, &s.ImageID, &s.Position, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetStaffMemberByID fetches a staff member regardless of active state.
func (q *Queries) GetStaffMemberByID(ctx context.Context, id int64) (model.StaffMember, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff_members WHERE id = ?`, id)
	return scanStaffMember(row)
}

func (q *Queries) listStaff(ctx context.Context, query string) ([]model.StaffMember, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var members []model.StaffMember
	for rows.Next() {
		s, err := scanStaffMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, s)
	}
	return members, rows.Err()
}

// ListActiveStaffMembers returns active staff in position order.
func (q *Queries) ListActiveStaffMembers(ctx context.Context) ([]model.StaffMember, error) {
	return q.listStaff(ctx,
		`SELECT `+staffColumns+` FROM staff_members WHERE is_active = 1 ORDER BY position ASC, id ASC`)
}

// ListAllStaffMembers returns every staff member including inactive ones.
func (q *Queries) ListAllStaffMembers(ctx context.Context) ([]model.StaffMember, error) {
	return q.listStaff(ctx,
		`SELECT `+staffColumns+` FROM staff_members ORDER BY position ASC, id ASC`)
}

// CreateStaffMemberParams holds the fields for creating a staff member.
type CreateStaffMemberParams struct {
	NameBg    string
	NameEn    string
	RoleBg    string
	RoleEn    string
	Email     string
	ImageID   sql.NullInt64
	Position  int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateStaffMember inserts a staff member and returns the stored row.
func (q *Queries) CreateStaffMember(ctx context.Context, arg CreateStaffMemberParams) (model.StaffMember, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO staff_members (name_bg, name_en, role_bg, role_en, email,
			image_id, position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.NameBg, arg.NameEn, arg.RoleBg, arg.RoleEn, arg.Email,
		arg.ImageID, arg.Position, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.StaffMember{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.StaffMember{}, err
	}
	return q.GetStaffMemberByID(ctx, id)
}

// UpdateStaffMemberParams holds the merged field set for an update.
type UpdateStaffMemberParams struct {
	ID        int64
	NameBg    string
	NameEn    string
	RoleBg    string
	RoleEn    string
	Email     string
	ImageID   sql.NullInt64
	Position  int64
	IsActive  bool
	UpdatedAt time.Time
}

// UpdateStaffMember writes the merged field set and returns the stored row.
func (q *Queries) UpdateStaffMember(ctx context.Context, arg UpdateStaffMemberParams) (model.StaffMember, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE staff_members SET name_bg = ?, name_en = ?, role_bg = ?, role_en = ?,
			email = ?, image_id = ?, position = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.NameBg, arg.NameEn, arg.RoleBg, arg.RoleEn, arg.Email,
		arg.ImageID, arg.Position, arg.IsActive, arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.StaffMember{}, err
	}
	return q.GetStaffMemberByID(ctx, arg.ID)
}

// UpdateStaffMemberPosition rewrites a single staff member's position.
func (q *Queries) UpdateStaffMemberPosition(ctx context.Context, id, position int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE staff_members SET position = ?, updated_at = ? WHERE id = ?`, position, now, id))
}

// SoftDeleteStaffMember marks a staff member inactive.
func (q *Queries) SoftDeleteStaffMember(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE staff_members SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeleteStaffMember removes a staff member permanently.
func (q *Queries) HardDeleteStaffMember(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM staff_members WHERE id = ?`, id))
}

const achievementColumns = `id, title_bg, title_en, description_bg, description_en,
	year, position, is_active, created_at, updated_at`

func scanAchievement(row interface{ Scan(dest ...any) error }) (model.Achievement, error) {
	var a model.Achievement
	err := row.Scan(&a.ID, &a.TitleBg, &a.TitleEn, &a.DescriptionBg, &a.DescriptionEn,
		&a.Year, &a.Position, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// GetAchievementByID fetches an achievement regardless of active state.
func (q *Queries) GetAchievementByID(ctx context.Context, id int64) (model.Achievement, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+achievementColumns+` FROM school_achievements WHERE id = ?`, id)
	return scanAchievement(row)
}

func (q *Queries) listAchievements(ctx context.Context, query string) ([]model.Achievement, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var achievements []model.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// ListActiveAchievements returns active achievements in position order.
func (q *Queries) ListActiveAchievements(ctx context.Context) ([]model.Achievement, error) {
	return q.listAchievements(ctx,
		`SELECT `+achievementColumns+` FROM school_achievements WHERE is_active = 1 ORDER BY position ASC, id ASC`)
}

// ListAllAchievements returns every achievement including inactive ones.
func (q *Queries) ListAllAchievements(ctx context.Context) ([]model.Achievement, error) {
	return q.listAchievements(ctx,
		`SELECT `+achievementColumns+` FROM school_achievements ORDER BY position ASC, id ASC`)
}

// CreateAchievementParams holds the fields for creating an achievement.
type CreateAchievementParams struct {
	TitleBg       string
	TitleEn       string
	DescriptionBg string
	DescriptionEn string
	Year          int64
	Position      int64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateAchievement inserts an achievement and returns the stored row.
func (q *Queries) CreateAchievement(ctx context.Context, arg CreateAchievementParams) (model.Achievement, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO school_achievements (title_bg, title_en, description_bg,
			description_en, year, position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.TitleBg, arg.TitleEn, arg.DescriptionBg, arg.DescriptionEn,
		arg.Year, arg.Position, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Achievement{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Achievement{}, err
	}
	return q.GetAchievementByID(ctx, id)
}

// UpdateAchievementParams holds the merged field set for an update.
type UpdateAchievementParams struct {
	ID            int64
	TitleBg       string
	TitleEn       string
	DescriptionBg string
	DescriptionEn string
	Year          int64
	Position      int64
	IsActive      bool
	UpdatedAt     time.Time
}

// UpdateAchievement writes the merged field set and returns the stored row.
func (q *Queries) UpdateAchievement(ctx context.Context, arg UpdateAchievementParams) (model.Achievement, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE school_achievements SET title_bg = ?, title_en = ?, description_bg = ?,
			description_en = ?, year = ?, position = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.TitleBg, arg.TitleEn, arg.DescriptionBg, arg.DescriptionEn,
		arg.Year, arg.Position, arg.IsActive, arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.Achievement{}, err
	}
	return q.GetAchievementByID(ctx, arg.ID)
}

// UpdateAchievementPosition rewrites a single achievement's position.
func (q *Queries) UpdateAchievementPosition(ctx context.Context, id, position int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE school_achievements SET position = ?, updated_at = ? WHERE id = ?`, position, now, id))
}

// SoftDeleteAchievement marks an achievement inactive.
func (q *Queries) SoftDeleteAchievement(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE school_achievements SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeleteAchievement removes an achievement permanently.
func (q *Queries) HardDeleteAchievement(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM school_achievements WHERE id = ?`, id))
}

const directorColumns = `id, name_bg, name_en, tenure_from, tenure_to,
	biography_bg, biography_en, position, is_active, created_at, updated_at`

func scanDirector(row interface{ Scan(dest ...any) error }) (model.Director, error) {
	var d model.Director
	err := row.Scan(&d.ID, &d.NameBg, &d.NameEn, &d.TenureFrom, &d.TenureTo,
		&d.BiographyBg, &d.BiographyEn, &d.Position, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// GetDirectorByID fetches a director regardless of active state.
func (q *Queries) GetDirectorByID(ctx context.Context, id int64) (model.Director, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+directorColumns+` FROM school_directors WHERE id = ?`, id)
	return scanDirector(row)
}

func (q *Queries) listDirectors(ctx context.Context, query string) ([]model.Director, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var directors []model.Director
	for rows.Next() {
		d, err := scanDirector(rows)
		if err != nil {
			return nil, err
		}
		directors = append(directors, d)
	}
	return directors, rows.Err()
}

// ListActiveDirectors returns active directors in position order.
func (q *Queries) ListActiveDirectors(ctx context.Context) ([]model.Director, error) {
	return q.listDirectors(ctx,
		`SELECT `+directorColumns+` FROM school_directors WHERE is_active = 1 ORDER BY position ASC, id ASC`)
}

// ListAllDirectors returns every director including inactive ones.
func (q *Queries) ListAllDirectors(ctx context.Context) ([]model.Director, error) {
	return q.listDirectors(ctx,
		`SELECT `+directorColumns+` FROM school_directors ORDER BY position ASC, id ASC`)
}

// CreateDirectorParams holds the fields for creating a director.
type CreateDirectorParams struct {
	NameBg      string
	NameEn      string
	TenureFrom  int64
	TenureTo    sql.NullInt64
	BiographyBg string
	BiographyEn string
	Position    int64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateDirector inserts a director and returns the stored row.
func (q *Queries) CreateDirector(ctx context.Context, arg CreateDirectorParams) (model.Director, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO school_directors (name_bg, name_en, tenure_from, tenure_to,
			biography_bg, biography_en, position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.NameBg, arg.NameEn, arg.TenureFrom, arg.TenureTo,
		arg.BiographyBg, arg.BiographyEn, arg.Position, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Director{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Director{}, err
	}
	return q.GetDirectorByID(ctx, id)
}

// UpdateDirectorParams holds the merged field set for an update.
type UpdateDirectorParams struct {
	ID          int64
	NameBg      string
	NameEn      string
	TenureFrom  int64
	TenureTo    sql.NullInt64
	BiographyBg string
	BiographyEn string
	Position    int64
	IsActive    bool
	UpdatedAt   time.Time
}

// UpdateDirector writes the merged field set and returns the stored row.
func (q *Queries) UpdateDirector(ctx context.Context, arg UpdateDirectorParams) (model.Director, error) {
	err := rowsAffected(q.db.ExecContext(ctx, `
		UPDATE school_directors SET name_bg = ?, name_en = ?, tenure_from = ?,
			tenure_to = ?, biography_bg = ?, biography_en = ?, position = ?,
			is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.NameBg, arg.NameEn, arg.TenureFrom, arg.TenureTo,
		arg.BiographyBg, arg.BiographyEn, arg.Position, arg.IsActive, arg.UpdatedAt, arg.ID))
	if err != nil {
		return model.Director{}, err
	}
	return q.GetDirectorByID(ctx, arg.ID)
}

// UpdateDirectorPosition rewrites a single director's position.
func (q *Queries) UpdateDirectorPosition(ctx context.Context, id, position int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE school_directors SET position = ?, updated_at = ? WHERE id = ?`, position, now, id))
}

// SoftDeleteDirector marks a director inactive.
func (q *Queries) SoftDeleteDirector(ctx context.Context, id int64, now time.Time) error {
	return rowsAffected(q.db.ExecContext(ctx,
		`UPDATE school_directors SET is_active = 0, updated_at = ? WHERE id = ?`, now, id))
}

// HardDeleteDirector removes a director permanently.
func (q *Queries) HardDeleteDirector(ctx context.Context, id int64) error {
	return rowsAffected(q.db.ExecContext(ctx, `DELETE FROM school_directors WHERE id = ?`, id))
}
