package model

import (
	"database/sql"
	"time"
)

// StaffMember represents a teacher or staff member shown on the staff page.
type StaffMember struct {
	ID        int64         `json:"id"`
	NameBg    string        `json:"name_bg"`
	NameEn    string        `json:"name_en"`
	RoleBg    string        `json:"role_bg"`
	RoleEn    string        `json:"role_en"`
	Email     string        `json:"email"`
	ImageID   sql.NullInt64 `json:"-"`
	Position  int64         `json:"position"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Director represents a historical school director.
type Director struct {
	ID          int64         `json:"id"`
	NameBg      string        `json:"name_bg"`
	NameEn      string        `json:"name_en"`
	TenureFrom  int64         `json:"tenure_from"`
	TenureTo    sql.NullInt64 `json:"-"`
	BiographyBg string        `json:"biography_bg"`
	BiographyEn string        `json:"biography_en"`
	Position    int64         `json:"position"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Achievement represents a school achievement or award.
type Achievement struct {
	ID            int64     `json:"id"`
	TitleBg       string    `json:"title_bg"`
	TitleEn       string    `json:"title_en"`
	DescriptionBg string    `json:"description_bg"`
	DescriptionEn string    `json:"description_en"`
	Year          int64     `json:"year"`
	Position      int64     `json:"position"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
