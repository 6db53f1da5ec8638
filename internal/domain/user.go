package domain

import "strings"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCoAdmin Role = "co-admin"
	RoleMember  Role = "member"
)

// ParseAssignableRole принимает только роли, которые можно выдать вручную.
// Роль admin не назначается и не снимается.
func ParseAssignableRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case RoleCoAdmin:
		return RoleCoAdmin, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", ErrInvalidRole
	}
}

type User struct {
	Name         string `db:"name"`
	PasswordHash string `db:"password"`
	Role         Role   `db:"role"`
}

// Member — публичная проекция пользователя для GET /members.
type Member struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}
