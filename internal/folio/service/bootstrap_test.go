package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/stretchr/testify/require"
)

func bootstrapData() domain.BootstrapData {
	return domain.BootstrapData{
		FirstName: "Site",
		LastName:  "Owner",
		Username:  "owner",
		Email:     "owner@x.com",
		Phone:     "+61 400 111 222",
		Password:  "Sup3r$ecret",
	}
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	disabled := &service.BootstrapService{Store: e.store}
	_, err := disabled.Bootstrap(ctx, "", bootstrapData())
	require.ErrorIs(t, err, service.ErrBootstrapDisabled)

	svc := &service.BootstrapService{Store: e.store, Token: "let-me-in"}

	_, err = svc.Bootstrap(ctx, "wrong", bootstrapData())
	require.ErrorIs(t, err, service.ErrBootstrapDenied)

	admin, err := svc.Bootstrap(ctx, "let-me-in", bootstrapData())
	require.NoError(t, err)
	require.True(t, admin.IsAdmin())

	done, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.True(t, done)

	again := bootstrapData()
	again.Username, again.Email = "owner2", "owner2@x.com"
	_, err = svc.Bootstrap(ctx, "let-me-in", again)
	require.ErrorIs(t, err, service.ErrAlreadyBootstrapped)

	_, err = e.users.Login(ctx, service.LoginInput{Email: "owner@x.com", Password: "Sup3r$ecret"})
	require.NoError(t, err)
}
