package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwrk-planet/club-service/internal/domain"
	"github.com/cwrk-planet/club-service/internal/repository"
	"github.com/cwrk-planet/club-service/internal/security"
)

type LoginResult struct {
	Message   string
	Role      domain.Role
	IsNewUser bool
}

type AuthService struct {
	store      repository.Store
	passPolicy security.BcryptConfig
}

func NewAuthService(store repository.Store, passPolicy security.BcryptConfig) *AuthService {
	return &AuthService{store: store, passPolicy: passPolicy}
}

// Login — вход по имени и паролю. Неизвестное имя создаёт аккаунт:
// самый первый аккаунт получает роль admin, остальные member.
// Известное имя пускает только при совпадении пароля.
func (s *AuthService) Login(ctx context.Context, name, password string) (*LoginResult, error) {
	if name == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	u, err := s.store.GetUser(ctx, name)
	switch {
	case err == nil:
		if err := security.ComparePassword(u.PasswordHash, password); err != nil {
			return nil, domain.ErrInvalidCredentials
		}
		return &LoginResult{
			Message:   fmt.Sprintf("logged in, hello %s", u.Name),
			Role:      u.Role,
			IsNewUser: false,
		}, nil
	case errors.Is(err, repository.ErrNotFound):
		return s.register(ctx, name, password)
	default:
		slog.Error("auth.login.getUser failed", slog.Any("err", err))
		return nil, err
	}
}

func (s *AuthService) register(ctx context.Context, name, password string) (*LoginResult, error) {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		slog.Error("auth.register.countUsers failed", slog.Any("err", err))
		return nil, err
	}

	role := domain.RoleMember
	if count == 0 {
		role = domain.RoleAdmin
	}

	hash, err := security.HashPassword(password, &s.passPolicy)
	if err != nil {
		slog.Error("auth.register.hashPassword failed", slog.Any("err", err))
		return nil, err
	}

	u := &domain.User{Name: name, PasswordHash: hash, Role: role}
	if err := s.store.CreateUser(ctx, u); err != nil {
		// имя успели занять между GetUser и CreateUser
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, domain.ErrInvalidCredentials
		}
		slog.Error("auth.register.createUser failed", slog.Any("err", err))
		return nil, err
	}

	return &LoginResult{
		Message:   fmt.Sprintf("logged in and account created with role %s", role),
		Role:      role,
		IsNewUser: true,
	}, nil
}
