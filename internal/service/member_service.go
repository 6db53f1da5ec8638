package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cwrk-planet/club-service/internal/domain"
	"github.com/cwrk-planet/club-service/internal/repository"
)

// MemberService — модерация: все проверки выполняются до любой мутации,
// частичного применения не бывает.
type MemberService struct {
	store repository.Store
}

func NewMemberService(store repository.Store) *MemberService {
	return &MemberService{store: store}
}

// List возвращает участников: admin первым, дальше по рангу и алфавиту.
func (s *MemberService) List(ctx context.Context) ([]domain.Member, error) {
	return s.store.ListMembers(ctx)
}

// ClearMessages — только admin.
func (s *MemberService) ClearMessages(ctx context.Context, actor string) error {
	if err := s.requireRole(ctx, actor, domain.RoleAdmin); err != nil {
		return err
	}
	return s.store.ClearMessages(ctx)
}

// ChangeRole переводит участника между co-admin и member. Роль admin
// не выдаётся и не снимается.
func (s *MemberService) ChangeRole(ctx context.Context, actor, target, newRole string) (domain.Role, error) {
	role, err := domain.ParseAssignableRole(newRole)
	if err != nil {
		return "", err
	}
	if err := s.requireRole(ctx, actor, domain.RoleAdmin); err != nil {
		return "", err
	}
	if target == actor {
		return "", domain.ErrSelfTarget
	}
	if err := s.requireMutableTarget(ctx, target); err != nil {
		return "", err
	}

	if err := s.store.SetUserRole(ctx, target, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", domain.ErrMemberNotFound
		}
		slog.Error("member.changeRole.setUserRole failed", slog.Any("err", err))
		return "", err
	}
	return role, nil
}

// DeleteMember — admin или co-admin; admin удалить нельзя.
func (s *MemberService) DeleteMember(ctx context.Context, actor, target string) error {
	if err := s.requireRole(ctx, actor, domain.RoleAdmin, domain.RoleCoAdmin); err != nil {
		return err
	}
	if target == actor {
		return domain.ErrSelfTarget
	}
	if err := s.requireMutableTarget(ctx, target); err != nil {
		return err
	}

	if err := s.store.DeleteUser(ctx, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrMemberNotFound
		}
		slog.Error("member.deleteMember.deleteUser failed", slog.Any("err", err))
		return err
	}
	return nil
}

// requireRole: неизвестный актор и недостаточная роль неразличимы снаружи.
func (s *MemberService) requireRole(ctx context.Context, actor string, allowed ...domain.Role) error {
	u, err := s.store.GetUser(ctx, actor)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrAccessDenied
		}
		slog.Error("member.requireRole.getUser failed", slog.Any("err", err))
		return err
	}
	for _, r := range allowed {
		if u.Role == r {
			return nil
		}
	}
	return domain.ErrAccessDenied
}

func (s *MemberService) requireMutableTarget(ctx context.Context, target string) error {
	tu, err := s.store.GetUser(ctx, target)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrMemberNotFound
		}
		slog.Error("member.requireMutableTarget.getUser failed", slog.Any("err", err))
		return err
	}
	if tu.Role == domain.RoleAdmin {
		return domain.ErrAdminImmutable
	}
	return nil
}
