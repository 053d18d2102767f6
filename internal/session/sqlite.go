package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/smartbills/billctl/internal/models"
)

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    display_name TEXT NOT NULL,
    photo_url TEXT NOT NULL,
    refresh_token TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
`

// SQLiteStore implements Store using a local SQLite database. At most one
// session row exists at a time; Save replaces the previous one.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a SQLiteStore at the given database path, creating parent
// directories and the schema as needed.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Current returns the active session, or ErrNoSession if none exists.
func (s *SQLiteStore) Current(ctx context.Context) (*models.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, display_name, photo_url, refresh_token, created_at FROM sessions LIMIT 1",
	)

	var sess models.Session
	var createdAt int64
	err := row.Scan(&sess.ID, &sess.Email, &sess.DisplayName, &sess.PhotoURL, &sess.RefreshToken, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	sess.CreatedAt = time.Unix(createdAt, 0)
	return &sess, nil
}

// Save replaces any existing session with the given one, generating the
// local row ID and timestamp when unset.
func (s *SQLiteStore) Save(ctx context.Context, sess *models.Session) error {
	if sess.Email == "" {
		return fmt.Errorf("session email required")
	}
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear previous session: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sessions (id, email, display_name, photo_url, refresh_token, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		sess.ID, sess.Email, sess.DisplayName, sess.PhotoURL, sess.RefreshToken, sess.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return tx.Commit()
}

// Clear removes all session rows. Safe to call repeatedly.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
