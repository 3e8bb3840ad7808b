package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// WithUser stores the authenticated caller in ctx.
func WithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

// UserFromContext returns the caller attached by the guard, if any.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}

// Guard resolves bearer tokens to users. It only reads the store.
type Guard struct {
	Store  store.Store
	Tokens *TokenService
}

// Authenticate resolves an Authorization header to the user it names.
func (g *Guard) Authenticate(ctx context.Context, authorization string) (domain.User, error) {
	token, ok := httpx.BearerToken(authorization)
	if !ok {
		return domain.User{}, ErrMissingToken
	}

	userID, err := g.Tokens.Verify(token)
	if err != nil {
		return domain.User{}, err
	}

	u, err := g.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// AuthenticateContext is Authenticate returning a context carrying the user,
// the shape the HTTP authentication middleware expects.
func (g *Guard) AuthenticateContext(ctx context.Context, authorization string) (context.Context, error) {
	u, err := g.Authenticate(ctx, authorization)
	if err != nil {
		return ctx, err
	}
	ctx = slogx.WithUserID(WithUser(ctx, u), u.ID)
	return httpx.WithUserID(ctx, u.ID), nil
}

// RequireAdmin fails with ErrForbidden unless u is an admin.
func (g *Guard) RequireAdmin(u domain.User) error {
	return Check(u, AdminOnly, "")
}

// Authorize applies the policy table to u.
func (g *Guard) Authorize(u domain.User, action Action, ownerID string) error {
	return Authorize(u, action, ownerID)
}
