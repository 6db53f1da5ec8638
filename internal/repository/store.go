package repository

import (
	"context"

	"github.com/cwrk-planet/club-service/internal/domain"
)

// Store — единый интерфейс хранилища; адаптеры postgres и sqlite
// взаимозаменяемы и выбираются конфигом.
type Store interface {
	// Сообщения: только append и полная очистка, правки отдельных
	// сообщений не поддерживаются.
	AppendMessage(ctx context.Context, name, text string) (*domain.Message, error)
	ListMessages(ctx context.Context) ([]domain.Message, error)
	ClearMessages(ctx context.Context) error

	// Пользователи
	GetUser(ctx context.Context, name string) (*domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, u *domain.User) error
	SetUserRole(ctx context.Context, name string, role domain.Role) error
	DeleteUser(ctx context.Context, name string) error
	ListMembers(ctx context.Context) ([]domain.Member, error)

	Close() error
}
