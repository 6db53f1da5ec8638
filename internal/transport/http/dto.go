package http

import "github.com/cwrk-planet/club-service/internal/domain"

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message   string      `json:"message"`
	Role      domain.Role `json:"role"`
	IsNewUser bool        `json:"isNewUser"`
}

type ClearRequest struct {
	AdminName string `json:"adminName"`
}

type ChangeRoleRequest struct {
	AdminName  string `json:"adminName"`
	TargetName string `json:"targetName"`
	NewRole    string `json:"newRole"`
}

type DeleteMemberRequest struct {
	AdminName  string `json:"adminName"`
	TargetName string `json:"targetName"`
}

type MembersResponse struct {
	Members []domain.Member `json:"members"`
}

// MessageResponse — и успех, и отказ приходят клиенту одной строкой.
type MessageResponse struct {
	Message string `json:"message"`
}
