package service_test

import (
	"context"
	"testing"

	"github.com/cwrk-planet/club-service/internal/domain"
	"github.com/cwrk-planet/club-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededMemberService() (*service.MemberService, *fakeStore) {
	store := newFakeStore()
	store.seedUser("alice", domain.RoleAdmin)
	store.seedUser("bob", domain.RoleCoAdmin)
	store.seedUser("carol", domain.RoleMember)
	return service.NewMemberService(store), store
}

func TestClearMessagesPermissions(t *testing.T) {
	tcases := map[string]struct {
		actor   string
		wantErr error
	}{
		"admin_allowed":   {actor: "alice", wantErr: nil},
		"co_admin_denied": {actor: "bob", wantErr: domain.ErrAccessDenied},
		"member_denied":   {actor: "carol", wantErr: domain.ErrAccessDenied},
		"unknown_denied":  {actor: "mallory", wantErr: domain.ErrAccessDenied},
	}

	for name, tc := range tcases {
		t.Run(name, func(t *testing.T) {
			svc, store := seededMemberService()
			store.messages = []domain.Message{{ID: 1, Name: "carol", Text: "hi"}}

			err := svc.ClearMessages(context.Background(), tc.actor)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Len(t, store.messages, 1)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, store.messages)
		})
	}
}

func TestChangeRolePermissionMatrix(t *testing.T) {
	tcases := map[string]struct {
		actor   string
		target  string
		newRole string
		wantErr error
	}{
		"admin_promotes_member":   {actor: "alice", target: "carol", newRole: "co-admin"},
		"admin_demotes_co_admin":  {actor: "alice", target: "bob", newRole: "member"},
		"co_admin_denied":         {actor: "bob", target: "carol", newRole: "co-admin", wantErr: domain.ErrAccessDenied},
		"member_denied":           {actor: "carol", target: "bob", newRole: "member", wantErr: domain.ErrAccessDenied},
		"unknown_actor_denied":    {actor: "mallory", target: "carol", newRole: "co-admin", wantErr: domain.ErrAccessDenied},
		"self_target_rejected":    {actor: "alice", target: "alice", newRole: "member", wantErr: domain.ErrSelfTarget},
		"unknown_target":          {actor: "alice", target: "mallory", newRole: "member", wantErr: domain.ErrMemberNotFound},
		"admin_role_unassignable": {actor: "alice", target: "carol", newRole: "admin", wantErr: domain.ErrInvalidRole},
		"garbage_role":            {actor: "alice", target: "carol", newRole: "owner", wantErr: domain.ErrInvalidRole},
	}

	for name, tc := range tcases {
		t.Run(name, func(t *testing.T) {
			svc, store := seededMemberService()
			before := store.mutations

			role, err := svc.ChangeRole(context.Background(), tc.actor, tc.target, tc.newRole)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				// валидация полностью отделена от мутации
				assert.Equal(t, before, store.mutations)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.Role(tc.newRole), role)
			assert.Equal(t, domain.Role(tc.newRole), store.users[tc.target].Role)
		})
	}
}

func TestChangeRoleAdminTargetImmutable(t *testing.T) {
	store := newFakeStore()
	store.seedUser("alice", domain.RoleAdmin)
	store.seedUser("root", domain.RoleAdmin)
	svc := service.NewMemberService(store)

	_, err := svc.ChangeRole(context.Background(), "alice", "root", "member")
	require.ErrorIs(t, err, domain.ErrAdminImmutable)
	assert.Equal(t, domain.RoleAdmin, store.users["root"].Role)
}

func TestDeleteMemberPermissionMatrix(t *testing.T) {
	tcases := map[string]struct {
		actor   string
		target  string
		wantErr error
	}{
		"admin_deletes_member":     {actor: "alice", target: "carol"},
		"co_admin_deletes_member":  {actor: "bob", target: "carol"},
		"member_denied":            {actor: "carol", target: "bob", wantErr: domain.ErrAccessDenied},
		"unknown_actor_denied":     {actor: "mallory", target: "carol", wantErr: domain.ErrAccessDenied},
		"self_target_rejected":     {actor: "bob", target: "bob", wantErr: domain.ErrSelfTarget},
		"unknown_target":           {actor: "alice", target: "mallory", wantErr: domain.ErrMemberNotFound},
		"admin_target_undeletable": {actor: "bob", target: "alice", wantErr: domain.ErrAdminImmutable},
	}

	for name, tc := range tcases {
		t.Run(name, func(t *testing.T) {
			svc, store := seededMemberService()
			before := store.mutations

			err := svc.DeleteMember(context.Background(), tc.actor, tc.target)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, before, store.mutations)
				assert.Contains(t, store.users, tc.target)
				return
			}
			require.NoError(t, err)
			assert.NotContains(t, store.users, tc.target)
		})
	}
}

func TestAdminUndeletableEvenByAdmin(t *testing.T) {
	store := newFakeStore()
	store.seedUser("alice", domain.RoleAdmin)
	store.seedUser("root", domain.RoleAdmin)
	svc := service.NewMemberService(store)

	err := svc.DeleteMember(context.Background(), "alice", "root")
	require.ErrorIs(t, err, domain.ErrAdminImmutable)
	assert.Contains(t, store.users, "root")
}

func TestListPassesThroughStoreOrder(t *testing.T) {
	svc, _ := seededMemberService()

	members, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "alice", members[0].Name)
}
