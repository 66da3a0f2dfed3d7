// Package storage provides SQLite-based persistence for player progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/pixel-island/internal/progress"
)

// ErrNotFound is returned when a profile has no stored value for a key.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection for progress persistence.
// Values are opaque blobs keyed by (profile, key).
type Store struct {
	db *sql.DB
}

// ProfileInfo describes one profile that has saved progress.
type ProfileInfo struct {
	Name      string
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// SSH sessions write concurrently; SQLite takes one writer at a time.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT NOT NULL,
			key TEXT NOT NULL,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile, key)
		);
		CREATE INDEX IF NOT EXISTS idx_progress_updated ON progress(updated_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored for profile and key.
// Returns ErrNotFound if nothing is stored.
func (s *Store) Get(profile, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(
		"SELECT value FROM progress WHERE profile = ? AND key = ?",
		profile, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s/%s: %w", profile, key, err)
	}
	return value, nil
}

// Set stores value for profile and key, replacing any previous value.
func (s *Store) Set(profile, key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (profile, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile, key) DO UPDATE SET
		   value = excluded.value,
		   updated_at = excluded.updated_at`,
		profile, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s/%s: %w", profile, key, err)
	}
	return nil
}

// DeleteProfile removes every value stored for profile.
func (s *Store) DeleteProfile(profile string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot delete profile %s: %w", profile, err)
	}
	return nil
}

// Profiles lists every profile with stored progress, most recently updated first.
func (s *Store) Profiles() ([]ProfileInfo, error) {
	rows, err := s.db.Query(
		`SELECT profile, MAX(updated_at)
		 FROM progress
		 GROUP BY profile
		 ORDER BY MAX(updated_at) DESC, profile ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []ProfileInfo
	for rows.Next() {
		var p ProfileInfo
		var updatedAt any
		if err := rows.Scan(&p.Name, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTime(updatedAt)
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return profiles, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Backend returns a progress.Backend bound to one profile.
func (s *Store) Backend(profile string) *ProfileBackend {
	return &ProfileBackend{store: s, profile: profile}
}

// ProfileBackend adapts Store to progress.Backend for a single profile.
type ProfileBackend struct {
	store   *Store
	profile string
}

// Get implements progress.Backend.
func (b *ProfileBackend) Get(key string) ([]byte, bool, error) {
	v, err := b.store.Get(b.profile, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Set implements progress.Backend.
func (b *ProfileBackend) Set(key string, value []byte) error {
	return b.store.Set(b.profile, key, value)
}

// Ensure ProfileBackend implements progress.Backend
var _ progress.Backend = (*ProfileBackend)(nil)
