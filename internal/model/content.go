package model

import (
	"database/sql"
	"time"
)

// Well-known section groups. Groups bucket loosely related sections that
// render together (header blocks, patron page, footer blurbs).
const (
	SectionGroupHeader  = "header"
	SectionGroupPatron  = "patron"
	SectionGroupFooter  = "footer"
	SectionGroupGeneral = "general"
)

// ContentSection represents a keyed block of bilingual content rendered
// somewhere on the public site. Sections are grouped by SectionGroup and
// ordered by Position within the group.
type ContentSection struct {
	ID           int64     `json:"id"`
	SectionKey   string    `json:"section_key"`
	SectionGroup string    `json:"section_group"`
	HeadingBg    string    `json:"heading_bg"`
	HeadingEn    string    `json:"heading_en"`
	BodyBg       string    `json:"body_bg"`
	BodyEn       string    `json:"body_en"`
	BodyFormat   string    `json:"body_format"`
	Position     int64     `json:"position"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewsItem represents a news article.
type NewsItem struct {
	ID          int64     `json:"id"`
	TitleBg     string    `json:"title_bg"`
	TitleEn     string    `json:"title_en"`
	BodyBg      string    `json:"body_bg"`
	BodyEn      string    `json:"body_en"`
	BodyFormat  string    `json:"body_format"`
	PublishedAt time.Time `json:"published_at"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Event represents a calendar event (open house, celebration, exam date).
type Event struct {
	ID            int64        `json:"id"`
	TitleBg       string       `json:"title_bg"`
	TitleEn       string       `json:"title_en"`
	DescriptionBg string       `json:"description_bg"`
	DescriptionEn string       `json:"description_en"`
	LocationBg    string       `json:"location_bg"`
	LocationEn    string       `json:"location_en"`
	StartsAt      time.Time    `json:"starts_at"`
	EndsAt        sql.NullTime `json:"-"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// UsefulLink represents an external resource link shown on the links page.
type UsefulLink struct {
	ID        int64     `json:"id"`
	TitleBg   string    `json:"title_bg"`
	TitleEn   string    `json:"title_en"`
	URL       string    `json:"url"`
	Position  int64     `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UsefulLinkContent represents an ordered description row under a useful link.
type UsefulLinkContent struct {
	ID        int64     `json:"id"`
	LinkID    int64     `json:"link_id"`
	BodyBg    string    `json:"body_bg"`
	BodyEn    string    `json:"body_en"`
	Position  int64     `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Translation represents a UI string with values for both site languages.
// Missing values fall back to the empty string, never to an error.
type Translation struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	ValueBg   string    `json:"value_bg"`
	ValueEn   string    `json:"value_en"`
	UpdatedAt time.Time `json:"updated_at"`
}
