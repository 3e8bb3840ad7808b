package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	e := newEnv(t)

	token, exp, err := e.tokens.Issue("user-1")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	sub, err := e.tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", sub)
}

func TestTokenServiceDefaultsToDay(t *testing.T) {
	hs, err := jwtx.NewHS256([]byte(testSecret), jwtx.VerifyOptions{})
	require.NoError(t, err)

	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := &service.TokenService{Signer: hs, Verifier: hs, Now: func() time.Time { return issued }}

	_, exp, err := ts.Issue("u")
	require.NoError(t, err)
	require.Equal(t, issued.Add(24*time.Hour), exp)
}

func TestTokenServiceFailures(t *testing.T) {
	e := newEnv(t)

	_, err := e.tokens.Verify("not.a.token")
	require.ErrorIs(t, err, service.ErrInvalidToken)

	other, err := jwtx.NewHS256([]byte("another-secret-another-secret-xx"), jwtx.VerifyOptions{})
	require.NoError(t, err)
	forged, err := other.Sign(jwtx.NewClaims("u", "folio", time.Hour, time.Now()))
	require.NoError(t, err)
	_, err = e.tokens.Verify(forged)
	require.ErrorIs(t, err, service.ErrInvalidToken)

	hs, err := jwtx.NewHS256([]byte(testSecret), jwtx.VerifyOptions{})
	require.NoError(t, err)
	stale, err := hs.Sign(jwtx.NewClaims("u", "folio", time.Hour, time.Now().Add(-2*time.Hour)))
	require.NoError(t, err)
	_, err = e.tokens.Verify(stale)
	require.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestGuardAuthenticate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.register(t, "alice", domain.RoleUser)

	token, _, err := e.tokens.Issue(alice.ID)
	require.NoError(t, err)

	t.Run("valid bearer", func(t *testing.T) {
		u, err := e.guard.Authenticate(ctx, "Bearer "+token)
		require.NoError(t, err)
		require.Equal(t, alice.ID, u.ID)

		cctx, err := e.guard.AuthenticateContext(ctx, "bearer "+token)
		require.NoError(t, err)
		got, ok := service.UserFromContext(cctx)
		require.True(t, ok)
		require.Equal(t, alice.ID, got.ID)
	})

	t.Run("missing", func(t *testing.T) {
		for _, h := range []string{"", "Bearer", "Basic abc", token} {
			_, err := e.guard.Authenticate(ctx, h)
			require.ErrorIs(t, err, service.ErrMissingToken, h)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := e.guard.Authenticate(ctx, "Bearer garbage")
		require.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("deleted account", func(t *testing.T) {
		bob := e.register(t, "bob", domain.RoleUser)
		bobToken, _, err := e.tokens.Issue(bob.ID)
		require.NoError(t, err)
		require.NoError(t, e.users.Delete(ctx, bob, bob.ID))

		_, err = e.guard.Authenticate(ctx, "Bearer "+bobToken)
		require.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("require admin", func(t *testing.T) {
		require.ErrorIs(t, e.guard.RequireAdmin(alice), service.ErrForbidden)
		require.NoError(t, e.guard.RequireAdmin(domain.User{ID: "x", Role: domain.RoleAdmin}))
	})
}
