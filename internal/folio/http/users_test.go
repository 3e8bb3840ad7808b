package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/folio/internal/folio/media/mediatest"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/stretchr/testify/require"
)

func TestUserFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	alice, err := s.client.Register(ctx, foliosdk.RegisterRequest{
		FirstName: "Alice",
		LastName:  "Liddell",
		Username:  "alice",
		Email:     "alice@x.com",
		Phone:     "+61 400 000 000",
		Password:  "Password1!",
	})
	require.NoError(t, err)
	require.Equal(t, "user", alice.Role)
	require.Equal(t, "/default.webp", alice.ProfilePic)

	_, err = s.client.Login(ctx, "alice@x.com", "Wrong1!pass")
	requireAPIError(t, err, http.StatusBadRequest, foliosdk.ErrorCodeInvalidCredentials)

	sess, err := s.client.Login(ctx, "alice@x.com", "Password1!")
	require.NoError(t, err)
	require.False(t, sess.ExpiresAt().IsZero())

	me, err := sess.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, alice.ID, me.ID)

	first := "Alicia"
	updated, err := sess.UpdateUser(ctx, alice.ID, foliosdk.UserUpdateRequest{FirstName: &first}, nil)
	require.NoError(t, err)
	require.Equal(t, "Alicia", updated.FirstName)
	require.Equal(t, "alice@x.com", updated.Email)

	withPic, err := sess.UpdateProfilePicture(ctx, alice.ID, *pngFile())
	require.NoError(t, err)
	require.NotEqual(t, "/default.webp", withPic.ProfilePic)
	require.Equal(t, 1, s.backend.Len())

	require.NoError(t, sess.DeleteUser(ctx, alice.ID))
	require.Equal(t, 0, s.backend.Len())

	_, err = sess.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, foliosdk.ErrorCodeUserNotFound)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	s.user(t, "bob")

	_, err := s.client.Register(ctx, foliosdk.RegisterRequest{Username: "x"})
	requireAPIError(t, err, http.StatusBadRequest, foliosdk.ErrorCodeValidation)

	var apiErr *foliosdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Fields, "password")

	_, err = s.client.Register(ctx, foliosdk.RegisterRequest{
		FirstName: "Bob",
		LastName:  "Again",
		Username:  "bob",
		Email:     "bob2@x.com",
		Phone:     "+61 400 000 000",
		Password:  "Password1!",
	})
	requireAPIError(t, err, http.StatusBadRequest, foliosdk.ErrorCodeConflict)
}

func TestUserAuthorization(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	admin := s.admin(t)
	alice, aliceUser := s.user(t, "alice")
	bob, _ := s.user(t, "bob")

	name := "Mallory"
	_, err := bob.UpdateUser(ctx, aliceUser.ID, foliosdk.UserUpdateRequest{FirstName: &name}, nil)
	requireAPIError(t, err, http.StatusForbidden, foliosdk.ErrorCodeForbidden)

	role := "admin"
	_, err = alice.UpdateUser(ctx, aliceUser.ID, foliosdk.UserUpdateRequest{Role: &role}, nil)
	requireAPIError(t, err, http.StatusForbidden, foliosdk.ErrorCodeForbidden)

	_, err = alice.ListUsers(ctx)
	requireAPIError(t, err, http.StatusForbidden, foliosdk.ErrorCodeForbidden)

	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	promoted, err := admin.UpdateUser(ctx, aliceUser.ID, foliosdk.UserUpdateRequest{Role: &role}, nil)
	require.NoError(t, err)
	require.Equal(t, "admin", promoted.Role)
}

func TestBearerFailures(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	_, u := s.user(t, "carol")

	cases := []struct {
		name  string
		token string
		code  string
	}{
		{"missing", "", foliosdk.ErrorCodeMissingToken},
		{"garbage", "not.a.jwt", foliosdk.ErrorCodeInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.client.NewSession(tc.token).Me(ctx)
			requireAPIError(t, err, http.StatusUnauthorized, tc.code)
		})
	}

	t.Run("challenge header", func(t *testing.T) {
		resp, err := http.Get(s.URL + "/api/user/me")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), `error="invalid_token"`)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := s.tokens.Issue(u.ID)
		require.NoError(t, err)
		me, err := s.client.NewSession(token).Me(ctx)
		require.NoError(t, err)
		require.Equal(t, u.ID, me.ID)
	})
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Post(s.URL+"/api/user/logout", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserUpdateAcceptsMultipart(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	sess, alice := s.user(t, "alice")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("firstName", "Alicia"))
	part, err := mw.CreateFormFile("profilePic", "me.png")
	require.NoError(t, err)
	_, err = part.Write(mediatest.PNG)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPut, s.URL+"/api/user/update/"+alice.ID, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+sess.Token())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first foliosdk.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))
	require.Equal(t, "Alicia", first.FirstName)
	require.NotEqual(t, "/default.webp", first.ProfilePic)
	require.Equal(t, 1, s.backend.Len())

	last := "Liddell"
	second, err := sess.UpdateUser(ctx, alice.ID, foliosdk.UserUpdateRequest{LastName: &last}, pngFile())
	require.NoError(t, err)
	require.Equal(t, "Alicia", second.FirstName)
	require.Equal(t, "Liddell", second.LastName)
	require.NotEqual(t, first.ProfilePic, second.ProfilePic)
	require.Equal(t, 1, s.backend.Len(), "the replaced picture is removed")
}
