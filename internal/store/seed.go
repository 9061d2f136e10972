package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"schoolsite/internal/auth"
	"schoolsite/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates initial data in the database: the default admin account and
// the navigation skeleton the public site expects.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		Name:         DefaultAdminName,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	if err := seedNavigation(ctx, queries, now); err != nil {
		return fmt.Errorf("seeding navigation: %w", err)
	}

	return nil
}

// seedNavigation inserts the top-level menu entries a fresh site starts with.
// Admins reorder or replace them afterwards.
func seedNavigation(ctx context.Context, queries *Queries, now time.Time) error {
	items := []CreateNavigationItemParams{
		{LinkKey: "home", TitleBg: "Начало", TitleEn: "Home", URL: "/", Position: 0},
		{LinkKey: "school", TitleBg: "Училището", TitleEn: "The School", URL: "/school", Position: 1},
		{LinkKey: "news", TitleBg: "Новини", TitleEn: "News", URL: "/news", Position: 2},
		{LinkKey: "events", TitleBg: "Събития", TitleEn: "Events", URL: "/events", Position: 3},
		{LinkKey: "useful-links", TitleBg: "Полезни връзки", TitleEn: "Useful Links", URL: "/useful-links", Position: 4},
		{LinkKey: "contacts", TitleBg: "Контакти", TitleEn: "Contacts", URL: "/contacts", Position: 5},
	}
	for _, item := range items {
		item.Target = model.TargetSelf
		item.IsActive = true
		item.CreatedAt = now
		item.UpdatedAt = now
		if _, err := queries.CreateNavigationItem(ctx, item); err != nil {
			return err
		}
	}
	slog.Info("seeded navigation items", "count", len(items))
	return nil
}
