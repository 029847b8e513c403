package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// preferenceRepo implements the Preference repository on the local state database
type preferenceRepo struct {
	db *sql.DB
}

// NewPreferenceRepo creates a new Preference repository
func NewPreferenceRepo(dbPath string) (repo.PreferenceRepo, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS preferences (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &preferenceRepo{db: db}, nil
}

// Load reads every stored flag into a snapshot
func (r *preferenceRepo) Load(ctx context.Context) (domain.Preferences, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, value FROM preferences`)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	var prefs domain.Preferences
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return domain.Preferences{}, fmt.Errorf("failed to scan preference: %w", err)
		}
		flag, err := domain.ParsePreferenceFlag(name)
		if err != nil {
			// Unknown names come from newer or older builds
			continue
		}
		prefs = prefs.With(flag, value != 0)
	}
	if err := rows.Err(); err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	return prefs, nil
}

// Save persists one flag
func (r *preferenceRepo) Save(ctx context.Context, flag domain.PreferenceFlag, value bool) error {
	v := 0
	if value {
		v = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO preferences (name, value, updated_at)
		VALUES (?, ?, ?)
	`, string(flag), v, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", flag, err)
	}
	return nil
}

// Reset deletes all stored flags
func (r *preferenceRepo) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences`)
	if err != nil {
		return fmt.Errorf("failed to reset preferences: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *preferenceRepo) Close() error {
	return r.db.Close()
}
