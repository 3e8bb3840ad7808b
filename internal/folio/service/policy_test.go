package service_test

import (
	"testing"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/stretchr/testify/require"
)

func TestPolicyTable(t *testing.T) {
	user := domain.User{ID: "u1", Role: domain.RoleUser}
	other := domain.User{ID: "u2", Role: domain.RoleUser}
	admin := domain.User{ID: "a1", Role: domain.RoleAdmin}
	anon := domain.User{}

	tests := []struct {
		action  service.Action
		actor   domain.User
		owner   string
		wantErr error
	}{
		{service.ActionContentCreate, user, "", service.ErrForbidden},
		{service.ActionContentCreate, admin, "", nil},
		{service.ActionContentUpdate, user, "u1", service.ErrForbidden},
		{service.ActionContentDelete, admin, "someone", nil},
		{service.ActionBlogLike, user, "", nil},
		{service.ActionBlogShare, anon, "", service.ErrMissingToken},
		{service.ActionCommentCreate, user, "", nil},
		{service.ActionCommentUpdate, user, "u1", nil},
		{service.ActionCommentUpdate, other, "u1", service.ErrForbidden},
		{service.ActionCommentDelete, admin, "u1", nil},
		{service.ActionUserList, user, "", service.ErrForbidden},
		{service.ActionUserList, admin, "", nil},
		{service.ActionUserUpdate, user, "u1", nil},
		{service.ActionUserUpdate, other, "u1", service.ErrForbidden},
		{service.ActionUserUpdatePicture, admin, "u1", nil},
		{service.ActionUserDelete, other, "u1", service.ErrForbidden},
		{service.ActionMessageCreate, user, "", nil},
		{service.ActionMessageList, user, "", service.ErrForbidden},
		{service.ActionMessageDelete, admin, "", nil},
		{service.Action("unknown"), admin, "", service.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.action)+"/"+tt.actor.ID, func(t *testing.T) {
			err := service.Authorize(tt.actor, tt.action, tt.owner)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSelfOrAdminRequiresOwner(t *testing.T) {
	u := domain.User{ID: "u1", Role: domain.RoleUser}
	require.ErrorIs(t, service.Check(u, service.SelfOrAdmin, ""), service.ErrForbidden)
}

func TestStrongPassword(t *testing.T) {
	require.True(t, service.StrongPassword("Password1!"))
	require.False(t, service.StrongPassword("Pass1!"), "too short")
	require.False(t, service.StrongPassword("password1!"), "no upper")
	require.False(t, service.StrongPassword("PASSWORD1!"), "no lower")
	require.False(t, service.StrongPassword("Password!!"), "no digit")
	require.False(t, service.StrongPassword("Password12"), "no special")
}
