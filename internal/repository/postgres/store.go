package postgres

import (
	"context"
	"errors"

	"github.com/cwrk-planet/club-service/internal/domain"
	"github.com/cwrk-planet/club-service/internal/repository"

	"github.com/jackc/pgx/v5"
	pgconn "github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

// New открывает пул и создаёт таблицы, если их ещё нет.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := NewPool(ctx, PoolConfig{DSN: dsn, ApplicationName: "club-service"})
	if err != nil {
		return nil, err
	}

	s := &Store{pool: pool}
	if err := s.bootstrap(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) bootstrap(ctx context.Context) error {
	for _, stmt := range bootstrapStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// ---- messages ----

func (s *Store) AppendMessage(ctx context.Context, name, text string) (*domain.Message, error) {
	var m domain.Message
	err := s.pool.QueryRow(ctx, queryAppendMessage, name, text).
		Scan(&m.ID, &m.Name, &m.Text, &m.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &m, nil
}

func (s *Store) ListMessages(ctx context.Context) ([]domain.Message, error) {
	rows, err := s.pool.Query(ctx, queryListMessages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) ClearMessages(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, queryClearMessages)
	return err
}

// ---- users ----

func (s *Store) GetUser(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	err := s.pool.QueryRow(ctx, queryGetUser, name).
		Scan(&u.Name, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &u, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, queryCountUsers).Scan(&count)
	return count, err
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	if _, err := s.pool.Exec(ctx, queryCreateUser, u.Name, u.PasswordHash, u.Role); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (s *Store) SetUserRole(ctx context.Context, name string, role domain.Role) error {
	tag, err := s.pool.Exec(ctx, querySetUserRole, name, role)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteUser, name)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) ListMembers(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.pool.Query(ctx, queryListMembers)
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

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 - unique violation
		if pgErr.Code == "23505" {
			return repository.ErrAlreadyExists
		}
	}

	return err
}
