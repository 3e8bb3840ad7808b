package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/idx"
)

// guardAuthenticator adapts the service guard to httpx.Authenticator.
type guardAuthenticator struct {
	guard *service.Guard
}

func (a guardAuthenticator) Authenticate(ctx context.Context, authorization string) (context.Context, error) {
	return a.guard.AuthenticateContext(ctx, authorization)
}

// authenticated chains h behind bearer authentication and a per-user limit.
func (r *Router) authenticated(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(guardAuthenticator{r.Guard}, writeError),
		httpx.RateLimitByUser(limit),
		checkPathIDs,
	)
}

// public chains h behind a per-IP limit only.
func public(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h, httpx.RateLimitByIP(limit), checkPathIDs)
}

// pathIDs are the route wildcards that name a stored record.
var pathIDs = []string{"id", "blogId"}

// checkPathIDs answers 404 for a malformed record id so it never reaches a
// store lookup.
func checkPathIDs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, name := range pathIDs {
			if v := r.PathValue(name); v != "" && !idx.Valid(v) {
				writeError(w, r, service.ErrNotFound)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// actor returns the caller attached by the authentication middleware. The
// zero user is returned for anonymous requests and fails every policy.
func actor(r *http.Request) domain.User {
	u, _ := service.UserFromContext(r.Context())
	return u
}
