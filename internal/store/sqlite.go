package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mtse/marketing-engine/internal/utils"
)

const schema = `
CREATE TABLE IF NOT EXISTS users(
	username   TEXT PRIMARY KEY,
	password   TEXT NOT NULL,
	role       TEXT NOT NULL,
	plan       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS usage(
	username TEXT PRIMARY KEY,
	uploads  INTEGER NOT NULL DEFAULT 0,
	analyses INTEGER NOT NULL DEFAULT 0,
	reports  INTEGER NOT NULL DEFAULT 0
);`

// SQLiteStore persists users and usage counters in a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the database at path. The ping
// retries with backoff so a slow filesystem at boot does not kill startup.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer keeps SQLITE_BUSY away

	bo := utils.NewBackoff(100*time.Millisecond, 3)
	if err := bo.Do(func(int) error { return db.Ping() }); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) FindUser(ctx context.Context, name string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT username, password, role, plan, created_at FROM users WHERE username = ?`, name)
	var u User
	err := row.Scan(&u.Name, &u.PasswordHash, &u.Role, &u.Plan, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, name, passwordHash, role, plan string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users(username, password, role, plan, created_at) VALUES(?,?,?,?,?)`,
		name, passwordHash, role, plan, time.Now().UTC())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT username, password, role, plan, created_at FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Name, &u.PasswordHash, &u.Role, &u.Plan, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) AddUsage(ctx context.Context, name, counter string) error {
	var col string
	switch counter {
	case UsageUploads, UsageAnalyses, UsageReports:
		col = counter
	default:
		return fmt.Errorf("unknown usage counter %q", counter)
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO usage(username, %[1]s) VALUES(?, 1)
		 ON CONFLICT(username) DO UPDATE SET %[1]s = %[1]s + 1`, col), name)
	if err != nil {
		return fmt.Errorf("add usage: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetUsage(ctx context.Context, name string) (Usage, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT uploads, analyses, reports FROM usage WHERE username = ?`, name)
	var u Usage
	err := row.Scan(&u.Uploads, &u.Analyses, &u.Reports)
	if errors.Is(err, sql.ErrNoRows) {
		return Usage{}, nil
	}
	if err != nil {
		return Usage{}, fmt.Errorf("get usage: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
