// Package sqlite persists accounts and applications in a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spigell/job-tracker/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id                 TEXT PRIMARY KEY,
	email              TEXT NOT NULL UNIQUE,
	password           TEXT NOT NULL,
	resume_filename    TEXT,
	resume_path        TEXT,
	resume_text        TEXT,
	resume_uploaded_at TEXT
);

CREATE TABLE IF NOT EXISTS sessions (
	token   TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS applications (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	job_id      TEXT NOT NULL,
	job_title   TEXT NOT NULL DEFAULT '',
	company     TEXT NOT NULL DEFAULT '',
	applied_via TEXT NOT NULL,
	status      TEXT NOT NULL,
	applied_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	UNIQUE (user_id, job_id)
);

CREATE TABLE IF NOT EXISTS timeline (
	application_id TEXT NOT NULL REFERENCES applications(id),
	seq            INTEGER NOT NULL,
	status         TEXT NOT NULL,
	date           TEXT NOT NULL,
	note           TEXT NOT NULL,
	PRIMARY KEY (application_id, seq)
);
`

// Store owns the database handle shared by the repositories.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates the database file if needed and applies the schema.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// a single connection serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log = logger.Named(log, "sqlite")
	log.Debug("database opened", zap.String("path", path))

	return &Store{db: db, logger: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{db: s.db}
}

func (s *Store) Applications() *ApplicationRepository {
	return &ApplicationRepository{db: s.db}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
