package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default admin user and a starter category set if none
// exist. The admin will be prompted to set up 2FA on first login
// (totp_enabled = false).
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@newsdesk.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Starter categories. Serial 99 is the reserved value marking the
	// opinion category.
	categories := []struct {
		name, slug string
		serial     int
	}{
		{"National", "national", 1},
		{"International", "international", 2},
		{"Sports", "sports", 3},
		{"Opinion", "opinion", 99},
	}
	for _, c := range categories {
		_, err := db.Exec(`
			INSERT INTO categories (name, slug, serial)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING
		`, c.name, c.slug, c.serial)
		if err != nil {
			return fmt.Errorf("seed insert category %s: %w", c.name, err)
		}
	}

	slog.Info("database seeded with default admin user and categories",
		"email", "admin@newsdesk.local",
		"password", "admin",
	)

	return nil
}
