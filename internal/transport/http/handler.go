package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cwrk-planet/club-service/internal/domain"
	"github.com/cwrk-planet/club-service/internal/service"
)

type AuthSvc interface {
	Login(ctx context.Context, name, password string) (*service.LoginResult, error)
}

type MemberSvc interface {
	List(ctx context.Context) ([]domain.Member, error)
	ClearMessages(ctx context.Context, actor string) error
	ChangeRole(ctx context.Context, actor, target, newRole string) (domain.Role, error)
	DeleteMember(ctx context.Context, actor, target string) error
}

// Notifier — явный канал для системных нотисов модерации; их получают
// все соединения, включая инициатора действия.
type Notifier interface {
	Notify(text string)
}

type Handler struct {
	authSvc   AuthSvc
	memberSvc MemberSvc
	notifier  Notifier
}

func NewHandler(auth AuthSvc, member MemberSvc, notifier Notifier) *Handler {
	return &Handler{
		authSvc:   auth,
		memberSvc: member,
		notifier:  notifier,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageResponse{Message: msg})
}

// POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "name and password are required")
		return
	}

	res, err := h.authSvc.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "wrong name or password / name already taken")
			return
		}
		slog.Error("handler.Login:", slog.Any("err", err))
		writeMessage(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message:   res.Message,
		Role:      res.Role,
		IsNewUser: res.IsNewUser,
	})
}

// POST /clear
func (h *Handler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	var req ClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AdminName == "" {
		writeMessage(w, http.StatusBadRequest, "adminName is required")
		return
	}

	if err := h.memberSvc.ClearMessages(r.Context(), req.AdminName); err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			writeMessage(w, http.StatusForbidden, "only admin can clear messages")
			return
		}
		slog.Error("handler.ClearMessages:", slog.Any("err", err))
		writeMessage(w, http.StatusInternalServerError, "failed to clear messages")
		return
	}

	writeMessage(w, http.StatusOK, "all messages cleared")
}

// GET /members
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberSvc.List(r.Context())
	if err != nil {
		slog.Error("handler.ListMembers:", slog.Any("err", err))
		writeMessage(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	writeJSON(w, http.StatusOK, MembersResponse{Members: members})
}

// POST /change-role
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.AdminName == "" || req.TargetName == "" || req.NewRole == "" {
		writeMessage(w, http.StatusBadRequest, "incomplete data")
		return
	}

	role, err := h.memberSvc.ChangeRole(r.Context(), req.AdminName, req.TargetName, req.NewRole)
	if err != nil {
		writeModerationError(w, err, "failed to change role")
		return
	}

	h.notifier.Notify(fmt.Sprintf("%s role changed to %s", req.TargetName, role))
	writeMessage(w, http.StatusOK, "role changed")
}

// POST /delete-member
func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	var req DeleteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.AdminName == "" || req.TargetName == "" {
		writeMessage(w, http.StatusBadRequest, "incomplete data")
		return
	}

	if err := h.memberSvc.DeleteMember(r.Context(), req.AdminName, req.TargetName); err != nil {
		writeModerationError(w, err, "failed to delete member")
		return
	}

	h.notifier.Notify(fmt.Sprintf("%s deleted from the club", req.TargetName))
	writeMessage(w, http.StatusOK, "member deleted")
}

func writeModerationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		writeMessage(w, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrAdminImmutable):
		writeMessage(w, http.StatusForbidden, "admin cannot be modified")
	case errors.Is(err, domain.ErrSelfTarget):
		writeMessage(w, http.StatusBadRequest, "you cannot target yourself")
	case errors.Is(err, domain.ErrInvalidRole):
		writeMessage(w, http.StatusBadRequest, "invalid role")
	case errors.Is(err, domain.ErrMemberNotFound):
		writeMessage(w, http.StatusNotFound, "member not found")
	default:
		slog.Error("handler.moderation:", slog.Any("err", err))
		writeMessage(w, http.StatusInternalServerError, fallback)
	}
}
