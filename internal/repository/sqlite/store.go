package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cwrk-planet/club-service/internal/domain"
	"github.com/cwrk-planet/club-service/internal/repository"
)

const dbTimeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	name      TEXT,
	text      TEXT,
	timestamp TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS users (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT UNIQUE,
	password TEXT,
	role     TEXT DEFAULT 'member'
);
`

type Store struct {
	db *sql.DB
}

// New открывает (или создаёт) базу SQLite и применяет схему.
func New(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// WAL и busy_timeout — иначе "database is locked" под конкуренцией
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ---- messages ----

func (s *Store) AppendMessage(ctx context.Context, name, text string) (*domain.Message, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (name, text, timestamp) VALUES (?, ?, ?)`,
		name, text, now.Format(dbTimeLayout))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &domain.Message{ID: id, Name: name, Text: text, CreatedAt: now}, nil
}

func (s *Store) ListMessages(ctx context.Context) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, text, timestamp FROM messages ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var (
			m  domain.Message
			ts string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Text, &ts); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = time.ParseInLocation(dbTimeLayout, ts, time.UTC); err != nil {
			return nil, fmt.Errorf("sqlite: parse timestamp: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) ClearMessages(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages`)
	return err
}

// ---- users ----

func (s *Store) GetUser(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT name, password, role FROM users WHERE name = ?`, name).
		Scan(&u.Name, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, password, role) VALUES (?, ?, ?)`,
		u.Name, u.PasswordHash, u.Role)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return repository.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *Store) SetUserRole(ctx context.Context, name string, role domain.Role) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET role = ? WHERE name = ?`, role, name)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) DeleteUser(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE name = ?`, name)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) ListMembers(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, role FROM users
		ORDER BY CASE role
			WHEN 'admin' THEN 0
			WHEN 'co-admin' THEN 1
			ELSE 2
		END, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.Name, &m.Role); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
